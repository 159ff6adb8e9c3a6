package paymentgateway

import "errors"

var (
	// ErrGatewayUnavailable возвращается при сетевых ошибках и 5xx ответах шлюза
	// Order Intent Builder повторяет такой запрос один раз с backoff
	ErrGatewayUnavailable = errors.New("paymentgateway client: gateway unavailable")

	// ErrOrderRejected возвращается, когда шлюз отклонил создание заказа (4xx)
	ErrOrderRejected = errors.New("paymentgateway client: order rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentgateway client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("paymentgateway client: invalid response")
)
