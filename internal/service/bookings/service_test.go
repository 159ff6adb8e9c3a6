package bookings

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonbook/SBP-CheckoutService/internal/domain"
	bookingRepository "github.com/salonbook/SBP-CheckoutService/internal/infra/storage/booking"
	paymentRepository "github.com/salonbook/SBP-CheckoutService/internal/infra/storage/payment"
	"github.com/salonbook/SBP-CheckoutService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockBookingRepo struct {
	booking *domain.Booking
	list    []*domain.Booking

	cancelledBy     *domain.CancelledBy
	cancelReason    string
	statusUpdatedTo *domain.BookingStatus
	servicePaid     bool
}

func (m *mockBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if m.booking == nil || m.booking.ID != id {
		return nil, bookingRepository.ErrBookingNotFound
	}
	return m.booking, nil
}

func (m *mockBookingRepo) GetByCustomerID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return m.list, nil
}

func (m *mockBookingRepo) GetBySalonWithFilter(_ context.Context, _ domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	return m.list, nil
}

func (m *mockBookingRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	m.statusUpdatedTo = &status
	return nil
}

func (m *mockBookingRepo) Cancel(_ context.Context, _ int64, by domain.CancelledBy, reason string) error {
	m.cancelledBy = &by
	m.cancelReason = reason
	return nil
}

func (m *mockBookingRepo) MarkServicePaid(_ context.Context, _ int64) error {
	m.servicePaid = true
	return nil
}

type mockPaymentRepo struct {
	record *domain.PaymentRecord
}

func (m *mockPaymentRepo) GetByBookingID(_ context.Context, _ int64) (*domain.PaymentRecord, error) {
	if m.record == nil {
		return nil, paymentRepository.ErrPaymentNotFound
	}
	return m.record, nil
}

const (
	testBookingID = int64(42)
	testCustomer  = int64(7)
	testSalon     = int64(1)
)

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:            testBookingID,
		BookingNumber: "SB-ABCDEF1234",
		CustomerID:    testCustomer,
		SalonID:       testSalon,
		BookingDate:   time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Status:        domain.StatusConfirmed,
	}
}

func newService(repo *mockBookingRepo, payments *mockPaymentRepo) *Service {
	if payments == nil {
		payments = &mockPaymentRepo{}
	}
	return NewService(repo, payments, nopLogger{})
}

func TestGetByID_OwnerAndSalonSeeBooking(t *testing.T) {
	svc := newService(&mockBookingRepo{booking: confirmedBooking()}, nil)

	for _, actor := range []int64{testCustomer, testSalon} {
		resp, err := svc.GetByID(context.Background(), testBookingID, actor)
		require.NoError(t, err)
		assert.Equal(t, testBookingID, resp.ID)
	}
}

func TestGetByID_AccessDenied(t *testing.T) {
	svc := newService(&mockBookingRepo{booking: confirmedBooking()}, nil)

	_, err := svc.GetByID(context.Background(), testBookingID, int64(999))

	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newService(&mockBookingRepo{}, nil)

	_, err := svc.GetByID(context.Background(), testBookingID, testCustomer)

	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_ByCustomer(t *testing.T) {
	repo := &mockBookingRepo{booking: confirmedBooking()}
	svc := newService(repo, nil)

	err := svc.Cancel(context.Background(), testBookingID, &models.CancelBookingRequest{
		ActorID:            testCustomer,
		CancellationReason: "plans changed",
	})

	require.NoError(t, err)
	require.NotNil(t, repo.cancelledBy)
	assert.Equal(t, domain.CancelledByCustomer, *repo.cancelledBy)
	assert.Equal(t, "plans changed", repo.cancelReason)
}

func TestCancel_BySalonRequiresOwnership(t *testing.T) {
	repo := &mockBookingRepo{booking: confirmedBooking()}
	svc := newService(repo, nil)

	err := svc.Cancel(context.Background(), testBookingID, &models.CancelBookingRequest{
		ActorID: int64(999),
		BySalon: true,
	})

	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.cancelledBy)
}

func TestCancel_CustomerCannotCancelForeignBooking(t *testing.T) {
	repo := &mockBookingRepo{booking: confirmedBooking()}
	svc := newService(repo, nil)

	err := svc.Cancel(context.Background(), testBookingID, &models.CancelBookingRequest{
		ActorID: int64(999),
	})

	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_TerminalStatus(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCancelled, domain.StatusCompleted} {
		booking := confirmedBooking()
		booking.Status = status
		repo := &mockBookingRepo{booking: booking}
		svc := newService(repo, nil)

		err := svc.Cancel(context.Background(), testBookingID, &models.CancelBookingRequest{
			ActorID: testCustomer,
		})

		require.ErrorIs(t, err, ErrCannotCancel, "status %s", status)
	}
}

func TestCancel_ReasonTooLong(t *testing.T) {
	svc := newService(&mockBookingRepo{booking: confirmedBooking()}, nil)

	err := svc.Cancel(context.Background(), testBookingID, &models.CancelBookingRequest{
		ActorID:            testCustomer,
		CancellationReason: strings.Repeat("x", domain.MaxCancellationReasonLength+1),
	})

	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestComplete(t *testing.T) {
	repo := &mockBookingRepo{booking: confirmedBooking()}
	svc := newService(repo, nil)

	err := svc.Complete(context.Background(), testBookingID, testSalon)

	require.NoError(t, err)
	require.NotNil(t, repo.statusUpdatedTo)
	assert.Equal(t, domain.StatusCompleted, *repo.statusUpdatedTo)
	// Завершение фиксирует оплату услуги на месте
	assert.True(t, repo.servicePaid)
}

func TestComplete_OnlyOwningSalon(t *testing.T) {
	repo := &mockBookingRepo{booking: confirmedBooking()}
	svc := newService(repo, nil)

	// Покупатель не может завершить бронирование от имени салона
	err := svc.Complete(context.Background(), testBookingID, testCustomer)

	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.statusUpdatedTo)
}

func TestComplete_CancelledBooking(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusCancelled
	svc := newService(&mockBookingRepo{booking: booking}, nil)

	err := svc.Complete(context.Background(), testBookingID, testSalon)

	require.ErrorIs(t, err, ErrCannotComplete)
}

func TestGetPayment(t *testing.T) {
	record := &domain.PaymentRecord{ID: 5, BookingID: testBookingID, Status: domain.PaymentStatusSuccess}
	svc := newService(&mockBookingRepo{booking: confirmedBooking()}, &mockPaymentRepo{record: record})

	resp, err := svc.GetPayment(context.Background(), testBookingID, testCustomer)

	require.NoError(t, err)
	assert.Equal(t, testBookingID, resp.BookingID)
}

func TestGetPayment_NotFound(t *testing.T) {
	svc := newService(&mockBookingRepo{booking: confirmedBooking()}, &mockPaymentRepo{})

	_, err := svc.GetPayment(context.Background(), testBookingID, testCustomer)

	require.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestGetCustomerBookings_InvalidStatus(t *testing.T) {
	svc := newService(&mockBookingRepo{}, nil)
	status := "unknown"

	_, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
		CustomerID: testCustomer,
		Status:     &status,
	})

	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetCustomerBookings(t *testing.T) {
	repo := &mockBookingRepo{list: []*domain.Booking{confirmedBooking()}}
	svc := newService(repo, nil)

	resp, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
		CustomerID: testCustomer,
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "SB-ABCDEF1234", resp.Bookings[0].BookingNumber)
}
