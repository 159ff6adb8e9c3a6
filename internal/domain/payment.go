package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentIntentStatus status of a gateway payment intent
type PaymentIntentStatus string

const (
	IntentStatusCreated  PaymentIntentStatus = "created"
	IntentStatusConsumed PaymentIntentStatus = "consumed"
)

// PaymentIntent is a provisional gateway order created before the customer pays.
// Immutable once created except for the consumed flag; one intent maps to at
// most one successful checkout. Unconsumed intents are inert and are swept by
// a periodic job outside this service.
type PaymentIntent struct {
	ID             int64
	GatewayOrderID string
	CustomerID     int64
	SalonID        int64
	Amount         decimal.Decimal // amount payable online, by value - not a live cart reference
	Currency       string
	Status         PaymentIntentStatus
	CreatedAt      time.Time
	ConsumedAt     *time.Time
}

// IsConsumed returns true if the intent has already produced a booking
func (i *PaymentIntent) IsConsumed() bool {
	return i.Status == IntentStatusConsumed
}

// PaymentRecordStatus status of a payment audit row
type PaymentRecordStatus string

const (
	PaymentStatusSuccess PaymentRecordStatus = "success"
	PaymentStatusFailed  PaymentRecordStatus = "failed"
)

// PaymentRecord is the immutable, append-only audit row of a gateway payment,
// linked 1:1 to the booking it settled
type PaymentRecord struct {
	ID               int64
	BookingID        int64
	GatewayOrderID   string
	GatewayPaymentID string
	GatewaySignature string
	Amount           decimal.Decimal
	Status           PaymentRecordStatus
	PaidAt           time.Time
	CreatedAt        time.Time
}
