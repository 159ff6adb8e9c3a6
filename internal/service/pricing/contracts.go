package pricing

import "context"

// ConfigRepository интерфейс репозитория конфигурации платформы
// Значения читаются заново при каждом расчёте - кэширование между запросами
// сделало бы цену несогласованной с актуальной тарифной сеткой
type ConfigRepository interface {
	Get(ctx context.Context, key string) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
