package intent

import "errors"

var (
	// ErrIntentNotFound возвращается, когда платёжное намерение не найдено
	ErrIntentNotFound = errors.New("intent.repository: payment intent not found")

	// ErrAlreadyConsumed возвращается при попытке повторно использовать
	// уже потреблённое платёжное намерение (replay-защита)
	ErrAlreadyConsumed = errors.New("intent.repository: payment intent already consumed")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("intent.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("intent.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("intent.repository: failed to scan row")
)
