package cart

import "errors"

var (
	// ErrCrossSalonConflict возвращается при попытке добавить услугу другого
	// салона в непустую корзину. Корзина не мутируется - покупатель сначала
	// очищает её или завершает checkout.
	ErrCrossSalonConflict = errors.New("cart: cart already contains services from another salon")

	// ErrSalonNotAccepting возвращается, когда салон не принимает бронирования
	ErrSalonNotAccepting = errors.New("cart: salon is not accepting bookings")

	// ErrSalonNotFound возвращается, когда салон не найден или деактивирован
	ErrSalonNotFound = errors.New("cart: salon not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("cart: service not found")

	// ErrItemNotFound возвращается, когда позиция корзины не найдена
	ErrItemNotFound = errors.New("cart: cart item not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cart: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("cart: internal error")
)
