package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/salonbook/SBP-CheckoutService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// CancelledBy identifies which side initiated a cancellation
type CancelledBy string

const (
	CancelledByCustomer CancelledBy = "customer"
	CancelledBySalon    CancelledBy = "salon"
)

// Booking represents a confirmed salon booking.
// A booking is only ever created in the confirmed state: checkout does not
// complete until the gateway payment is verified, so there is no pending state.
type Booking struct {
	ID             int64
	BookingNumber  string
	CustomerID     int64
	SalonID        int64
	GatewayOrderID string
	BookingDate    time.Time
	TimeSlots      []types.TimeString // 1..3 requested slots, salon confirms one offline
	Status         BookingStatus

	// Monetary snapshot, copied at checkout time and never re-derived.
	// Later fee-schedule changes must not alter a confirmed booking.
	ServicePrice   decimal.Decimal // subtotal, settled at the salon
	ConvenienceFee decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal

	ConvenienceFeePaid bool // paid online at checkout
	ServicePaid        bool // settled in person after the visit

	Items []BookingItem
	Notes *string

	CancelledBy        *CancelledBy
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingItem is the per-service snapshot of the cart at checkout time
type BookingItem struct {
	ID          int64
	BookingID   int64
	ServiceID   int64
	ServiceName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// IsActive returns true if the booking has not been cancelled
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// CanBeCompleted returns true if the salon can mark the booking completed
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusConfirmed
}

// IsTerminal returns true if no further status transition is allowed
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted
}

// SalonBookingsFilter фильтр для получения бронирований салона
type SalonBookingsFilter struct {
	SalonID         int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые бронирования
}
