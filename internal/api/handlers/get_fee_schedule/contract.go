package get_fee_schedule

import (
	"context"

	"github.com/salonbook/SBP-CheckoutService/internal/service/feeschedule"
)

type FeeScheduleService interface {
	Get(ctx context.Context) (*feeschedule.Schedule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
