package create_payment_intent

// Request запрос на создание платёжного намерения
type Request struct {
	CustomerID int64
}

// Breakdown разбивка стоимости на момент создания намерения
// Денежные суммы форматируются строками с двумя знаками после запятой
type Breakdown struct {
	ServiceSubtotal     string `json:"service_subtotal"`
	ConvenienceFee      string `json:"convenience_fee"`
	Tax                 string `json:"tax"`
	AmountPayableOnline string `json:"amount_payable_online"`
	AmountPayableSalon  string `json:"amount_payable_at_salon"`
}

// Response ответ с созданным платёжным намерением
// AmountMinorUnits - сумма к онлайн-оплате в пайсах, как её ожидает шлюз
type Response struct {
	IntentID         int64     `json:"intent_id"`
	GatewayOrderID   string    `json:"gateway_order_id"`
	AmountMinorUnits int64     `json:"amount"`
	Currency         string    `json:"currency"`
	Breakdown        Breakdown `json:"breakdown"`
}
