package get_booking_payment

import (
	"context"

	"github.com/salonbook/SBP-CheckoutService/internal/service/bookings/models"
)

type BookingService interface {
	GetPayment(ctx context.Context, bookingID int64, actorID int64) (*models.PaymentRecordResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
