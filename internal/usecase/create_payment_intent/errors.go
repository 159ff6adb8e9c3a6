package create_payment_intent

import "errors"

var (
	// ErrEmptyCart возвращается, когда корзина пуста
	ErrEmptyCart = errors.New("create_payment_intent: cart is empty")

	// ErrSalonInactive возвращается, когда салон деактивирован
	ErrSalonInactive = errors.New("create_payment_intent: salon is inactive")

	// ErrSalonNotAccepting возвращается, когда салон перестал принимать
	// бронирования после добавления услуги в корзину
	ErrSalonNotAccepting = errors.New("create_payment_intent: salon is not accepting bookings")

	// ErrConfiguration возвращается при некорректной тарифной сетке
	ErrConfiguration = errors.New("create_payment_intent: invalid fee schedule configuration")

	// ErrGatewayUnavailable возвращается, когда шлюз недоступен и после повтора
	ErrGatewayUnavailable = errors.New("create_payment_intent: payment gateway unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_payment_intent: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_payment_intent: internal error")
)
