package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonbook/SBP-CheckoutService/internal/domain"
	bookingRepo "github.com/salonbook/SBP-CheckoutService/internal/infra/storage/booking"
	paymentRepo "github.com/salonbook/SBP-CheckoutService/internal/infra/storage/payment"
	"github.com/salonbook/SBP-CheckoutService/internal/service/bookings/models"
)

// Service сервис чтения и жизненного цикла бронирований.
// Создание бронирований здесь намеренно отсутствует - единственный путь
// к созданию лежит через checkout usecase после проверки оплаты.
type Service struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, paymentRepo PaymentRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Покупатель видит только своё бронирование; салон - только свои
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for actor=%d", id, actorID)

	booking, err := s.getOwned(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований покупателя
// Опционально фильтрует по статусу
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%d, status=%v", req.CustomerID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: fetched %d bookings for customer=%d", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetSalonBookings получает бронирования салона с фильтрацией
// по периоду, статусу и включению отменённых
func (s *Service) GetSalonBookings(ctx context.Context, req *models.GetSalonBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetSalonBookings: fetching bookings for salon=%d", req.SalonID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSalonBookings: invalid filter for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetBySalonWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetSalonBookings: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: GetSalonBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSalonBookings: fetched %d bookings for salon=%d", len(bookings), req.SalonID)
	return models.FromDomainBookingList(bookings), nil
}

// GetPayment получает платёжную запись бронирования
func (s *Service) GetPayment(ctx context.Context, bookingID int64, actorID int64) (*models.PaymentRecordResponse, error) {
	s.logger.Info("GetPayment: fetching payment for booking=%d, actor=%d", bookingID, actorID)

	if _, err := s.getOwned(ctx, bookingID, actorID); err != nil {
		return nil, err
	}

	record, err := s.paymentRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("GetPayment: repository error for booking=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetPayment - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPaymentRecord(record), nil
}

// Cancel отменяет бронирование
// Покупатель отменяет только своё; салон - только свои. Возврат сервисного
// сбора определяется внешней refund-политикой и этим сервисом не выполняется.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by actor=%d (bySalon=%t)", bookingID, req.ActorID, req.BySalon)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	by := domain.CancelledByCustomer
	if req.BySalon {
		by = domain.CancelledBySalon
		if booking.SalonID != req.ActorID {
			s.logger.Warn("Cancel: salon actor=%d does not own booking id=%d", req.ActorID, bookingID)
			return ErrAccessDenied
		}
	} else if booking.CustomerID != req.ActorID {
		s.logger.Warn("Cancel: customer actor=%d does not own booking id=%d", req.ActorID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d in status %s cannot be cancelled", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, by, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking id=%d cancelled by %s", bookingID, by)
	return nil
}

// Complete помечает бронирование завершённым после оказания услуги
// Доступно только салону; услуга считается оплаченной на месте
func (s *Service) Complete(ctx context.Context, bookingID int64, salonActorID int64) error {
	s.logger.Info("Complete: completing booking id=%d by salon=%d", bookingID, salonActorID)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.SalonID != salonActorID {
		s.logger.Warn("Complete: salon=%d does not own booking id=%d", salonActorID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanBeCompleted() {
		s.logger.Warn("Complete: booking id=%d in status %s cannot be completed", bookingID, booking.Status)
		return ErrCannotComplete
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusCompleted); err != nil {
		s.logger.Error("Complete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	if err := s.bookingRepo.MarkServicePaid(ctx, bookingID); err != nil {
		s.logger.Error("Complete: failed to mark service paid for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Complete: booking id=%d completed", bookingID)
	return nil
}

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("getBooking: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("getBooking: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getBooking - repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

func (s *Service) getOwned(ctx context.Context, id int64, actorID int64) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.CustomerID != actorID && booking.SalonID != actorID {
		s.logger.Warn("getOwned: access denied for actor=%d to booking id=%d", actorID, id)
		return nil, ErrAccessDenied
	}

	return booking, nil
}
