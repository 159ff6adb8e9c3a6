package checkout

import "errors"

var (
	// ErrEmptyCart возвращается, когда корзина пуста на момент checkout
	ErrEmptyCart = errors.New("checkout: cart is empty")

	// ErrSalonInactive возвращается, когда салон деактивирован или перестал
	// принимать бронирования после создания платёжного намерения
	ErrSalonInactive = errors.New("checkout: salon is inactive or not accepting bookings")

	// ErrInvalidTimeSlots возвращается при некорректных слотах времени:
	// их нет, больше трёх, либо слот вне часов работы салона
	ErrInvalidTimeSlots = errors.New("checkout: invalid time slots")

	// ErrInvalidBookingDate возвращается при дате в прошлом или слишком далеко вперёд
	ErrInvalidBookingDate = errors.New("checkout: invalid booking date")

	// ErrPriceMismatch возвращается, когда сумма намерения расходится с
	// пересчитанной по актуальной корзине и тарифной сетке
	ErrPriceMismatch = errors.New("checkout: paid amount does not match current cart price")

	// ErrPaymentVerificationFailed возвращается при невалидной подписи шлюза.
	// Логируется как security-событие; наружу уходит обезличенное сообщение.
	ErrPaymentVerificationFailed = errors.New("checkout: payment verification failed")

	// ErrIntentAlreadyConsumed возвращается, когда платёжное намерение уже
	// использовано другим конкурентным checkout с тем же gateway_order_id
	ErrIntentAlreadyConsumed = errors.New("checkout: payment intent already consumed")

	// ErrConfiguration возвращается при некорректной тарифной сетке
	ErrConfiguration = errors.New("checkout: invalid fee schedule configuration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("checkout: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("checkout: internal error")
)
