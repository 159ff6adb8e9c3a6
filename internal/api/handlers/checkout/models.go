package checkout

import (
	"time"

	"github.com/salonbook/SBP-CheckoutService/internal/domain"
	checkoutUC "github.com/salonbook/SBP-CheckoutService/internal/usecase/checkout"
)

// CheckoutRequest HTTP request model
type CheckoutRequest struct {
	BookingDate      string   `json:"bookingDate"` // "2025-10-15"
	TimeSlots        []string `json:"timeSlots"`   // ["10:00", "10:30"]
	GatewayOrderID   string   `json:"gatewayOrderId"`
	GatewayPaymentID string   `json:"gatewayPaymentId"`
	GatewaySignature string   `json:"gatewaySignature"`
	Notes            *string  `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckoutRequest) ToUseCaseRequest(customerID int64) (*checkoutUC.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	return &checkoutUC.Request{
		CustomerID:       customerID,
		BookingDate:      bookingDate,
		TimeSlots:        r.TimeSlots,
		GatewayOrderID:   r.GatewayOrderID,
		GatewayPaymentID: r.GatewayPaymentID,
		GatewaySignature: r.GatewaySignature,
		Notes:            r.Notes,
	}, nil
}
