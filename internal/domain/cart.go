package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem represents one (service, quantity) selection in a customer's cart.
// All items of one customer's cart reference the same salon at all times;
// adding a service from another salon is rejected, never merged.
type CartItem struct {
	ID         int64
	CustomerID int64
	SalonID    int64
	ServiceID  int64
	Quantity   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CartLine is a cart item joined with the current service data.
// Prices are always re-read from the salon catalog, never stored in the cart,
// so a snapshot reflects the price at the moment it is taken.
type CartLine struct {
	Item        CartItem
	ServiceName string
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// CartView is a consistent read of a customer's cart used as the pricing basis
type CartView struct {
	CustomerID int64
	SalonID    int64
	Lines      []CartLine
	Subtotal   decimal.Decimal
}

// IsEmpty returns true if the cart has no items
func (v *CartView) IsEmpty() bool {
	return len(v.Lines) == 0
}
