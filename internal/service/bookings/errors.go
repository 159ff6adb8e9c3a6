package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrPaymentNotFound возвращается, когда платёжная запись не найдена
	ErrPaymentNotFound = errors.New("payment record not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	// (уже отменено или завершено - терминальные статусы необратимы)
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCannotComplete возвращается, когда бронирование не может быть завершено
	ErrCannotComplete = errors.New("booking cannot be completed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
