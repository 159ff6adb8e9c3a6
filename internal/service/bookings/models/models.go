package models

import (
	"errors"
	"time"

	"github.com/salonbook/SBP-CheckoutService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	ActorID            int64  `json:"actorId"`
	BySalon            bool   `json:"bySalon"`
	CancellationReason string `json:"cancellationReason"`
}

// GetCustomerBookingsRequest запрос на получение бронирований покупателя
type GetCustomerBookingsRequest struct {
	CustomerID int64   `json:"customerId"`
	Status     *string `json:"status,omitempty"`
}

// GetSalonBookingsRequest запрос на получение бронирований салона
type GetSalonBookingsRequest struct {
	SalonID         int64      `json:"salonId"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetSalonBookingsRequest) ToDomainFilter() (domain.SalonBookingsFilter, error) {
	filter := domain.SalonBookingsFilter{
		SalonID:         r.SalonID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingItemResponse позиция бронирования
type BookingItemResponse struct {
	ServiceID   int64  `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	UnitPrice   string `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
}

// BookingResponse бронирование
type BookingResponse struct {
	ID                 int64                 `json:"id"`
	BookingNumber      string                `json:"bookingNumber"`
	CustomerID         int64                 `json:"customerId"`
	SalonID            int64                 `json:"salonId"`
	BookingDate        string                `json:"bookingDate"`
	TimeSlots          []string              `json:"timeSlots"`
	Status             string                `json:"status"`
	ServicePrice       string                `json:"servicePrice"`
	ConvenienceFee     string                `json:"convenienceFee"`
	TaxAmount          string                `json:"taxAmount"`
	TotalAmount        string                `json:"totalAmount"`
	ConvenienceFeePaid bool                  `json:"convenienceFeePaid"`
	ServicePaid        bool                  `json:"servicePaid"`
	Items              []BookingItemResponse `json:"items,omitempty"`
	Notes              *string               `json:"notes,omitempty"`
	CancelledBy        *string               `json:"cancelledBy,omitempty"`
	CancellationReason *string               `json:"cancellationReason,omitempty"`
	CancelledAt        *string               `json:"cancelledAt,omitempty"`
	CreatedAt          string                `json:"createdAt"`
	UpdatedAt          string                `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// PaymentRecordResponse платёжная запись бронирования
type PaymentRecordResponse struct {
	ID               int64  `json:"id"`
	BookingID        int64  `json:"bookingId"`
	GatewayOrderID   string `json:"gatewayOrderId"`
	GatewayPaymentID string `json:"gatewayPaymentId"`
	Amount           string `json:"amount"`
	Status           string `json:"status"`
	PaidAt           string `json:"paidAt"`
}

// FromDomainBooking конвертирует domain бронирование в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	slots := make([]string, len(b.TimeSlots))
	for i, s := range b.TimeSlots {
		slots[i] = s.String()
	}

	items := make([]BookingItemResponse, len(b.Items))
	for i, item := range b.Items {
		items[i] = BookingItemResponse{
			ServiceID:   item.ServiceID,
			ServiceName: item.ServiceName,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Quantity:    item.Quantity,
		}
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		BookingNumber:      b.BookingNumber,
		CustomerID:         b.CustomerID,
		SalonID:            b.SalonID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		TimeSlots:          slots,
		Status:             string(b.Status),
		ServicePrice:       b.ServicePrice.StringFixed(2),
		ConvenienceFee:     b.ConvenienceFee.StringFixed(2),
		TaxAmount:          b.TaxAmount.StringFixed(2),
		TotalAmount:        b.TotalAmount.StringFixed(2),
		ConvenienceFeePaid: b.ConvenienceFeePaid,
		ServicePaid:        b.ServicePaid,
		Items:              items,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          b.UpdatedAt.Format(time.RFC3339),
	}

	if b.CancelledBy != nil {
		by := string(*b.CancelledBy)
		resp.CancelledBy = &by
	}
	if b.CancelledAt != nil {
		at := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &at
	}

	return resp
}

// FromDomainBookingList конвертирует список domain бронирований в response
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]*BookingResponse, len(bookings))
	for i, b := range bookings {
		result[i] = FromDomainBooking(b)
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}

// FromDomainPaymentRecord конвертирует domain платёжную запись в response
func FromDomainPaymentRecord(p *domain.PaymentRecord) *PaymentRecordResponse {
	return &PaymentRecordResponse{
		ID:               p.ID,
		BookingID:        p.BookingID,
		GatewayOrderID:   p.GatewayOrderID,
		GatewayPaymentID: p.GatewayPaymentID,
		Amount:           p.Amount.StringFixed(2),
		Status:           string(p.Status),
		PaidAt:           p.PaidAt.Format(time.RFC3339),
	}
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(s) {
	case domain.StatusConfirmed, domain.StatusCancelled, domain.StatusCompleted:
		return domain.BookingStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
