package update_cart_item

import "context"

type CartService interface {
	UpdateQuantity(ctx context.Context, customerID, itemID int64, quantity int) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
