package remove_cart_item

import "context"

type CartService interface {
	Remove(ctx context.Context, customerID, itemID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
