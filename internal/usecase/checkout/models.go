package checkout

import "time"

// Request запрос на завершение checkout
// Три gateway-поля приходят из callback-а платёжного шлюза на клиенте
// и не считаются доверенными до проверки подписи
type Request struct {
	CustomerID       int64
	BookingDate      time.Time
	TimeSlots        []string
	GatewayOrderID   string
	GatewayPaymentID string
	GatewaySignature string
	Notes            *string
}

// Breakdown денежный снимок бронирования
type Breakdown struct {
	ServicePrice   string `json:"service_price"`
	ConvenienceFee string `json:"convenience_fee"`
	Tax            string `json:"tax"`
	TotalAmount    string `json:"total_amount"`
}

// Response ответ успешного checkout
type Response struct {
	Success       bool      `json:"success"`
	BookingID     int64     `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	Status        string    `json:"status"`
	BookingDate   string    `json:"booking_date"`
	TimeSlots     []string  `json:"time_slots"`
	Breakdown     Breakdown `json:"breakdown"`
}
