package add_cart_item

import (
	"context"

	"github.com/salonbook/SBP-CheckoutService/internal/domain"
)

type CartService interface {
	Add(ctx context.Context, customerID, serviceID int64, quantity int) (*domain.CartItem, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
