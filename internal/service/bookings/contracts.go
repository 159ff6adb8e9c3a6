package bookings

import (
	"context"

	"github.com/salonbook/SBP-CheckoutService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetBySalonWithFilter(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, by domain.CancelledBy, reason string) error
	MarkServicePaid(ctx context.Context, id int64) error
}

// PaymentRepository интерфейс репозитория платёжных записей
type PaymentRepository interface {
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.PaymentRecord, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
