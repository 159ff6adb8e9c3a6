package checkout

import (
	"context"

	checkoutUC "github.com/salonbook/SBP-CheckoutService/internal/usecase/checkout"
)

type CheckoutUseCase interface {
	Execute(ctx context.Context, req *checkoutUC.Request) (*checkoutUC.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
