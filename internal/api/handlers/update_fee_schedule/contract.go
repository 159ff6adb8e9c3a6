package update_fee_schedule

import (
	"context"

	"github.com/salonbook/SBP-CheckoutService/internal/service/feeschedule"
)

type FeeScheduleService interface {
	Update(ctx context.Context, req *feeschedule.UpdateRequest) (*feeschedule.Schedule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
