package feeschedule

import "errors"

var (
	// ErrInvalidValue возвращается при попытке записать некорректное значение
	// процента или лимита
	ErrInvalidValue = errors.New("feeschedule: invalid configuration value")

	// ErrUnknownKey возвращается при попытке изменить неизвестный ключ
	ErrUnknownKey = errors.New("feeschedule: unknown configuration key")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("feeschedule: internal error")
)
