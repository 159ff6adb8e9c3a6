package paymentgateway

// CreateOrderRequest запрос на создание заказа в шлюзе
// Amount передаётся в минимальных единицах валюты (пайсы)
type CreateOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// Order созданный заказ шлюза
type Order struct {
	GatewayOrderID string `json:"id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	Status         string `json:"status"`
}

// ErrorResponse модель ошибки от шлюза
type ErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}
