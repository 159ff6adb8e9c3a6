package pricing

import "errors"

var (
	// ErrConfiguration возвращается, когда значение процента присутствует в
	// конфигурации, но не парсится как неотрицательное число.
	// Фатальна для checkout: подменять явно (пусть и криво) настроенный
	// процент дефолтом - значит молча брать с клиента не ту сумму.
	ErrConfiguration = errors.New("pricing: invalid fee schedule configuration")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("pricing: internal error")
)
