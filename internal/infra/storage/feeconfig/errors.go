package feeconfig

import "errors"

var (
	// ErrKeyNotFound возвращается, когда ключ конфигурации не найден
	ErrKeyNotFound = errors.New("feeconfig.repository: config key not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("feeconfig.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("feeconfig.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("feeconfig.repository: failed to scan row")
)
