package get_cart

import (
	"context"

	"github.com/salonbook/SBP-CheckoutService/internal/domain"
)

type CartService interface {
	Snapshot(ctx context.Context, customerID int64) (*domain.CartView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
