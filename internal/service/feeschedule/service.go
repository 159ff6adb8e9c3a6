package feeschedule

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/salonbook/SBP-CheckoutService/internal/domain"
)

// Schedule текущая тарифная сетка платформы
type Schedule struct {
	BookingFeePercentage  string `json:"bookingFeePercentage"`
	GSTPercentage         string `json:"gstPercentage"`
	MaxAdvanceBookingDays int    `json:"maxAdvanceBookingDays"`
}

// UpdateRequest запрос на изменение тарифной сетки
// nil поле означает "не менять"
type UpdateRequest struct {
	BookingFeePercentage  *string `json:"bookingFeePercentage,omitempty"`
	GSTPercentage         *string `json:"gstPercentage,omitempty"`
	MaxAdvanceBookingDays *int    `json:"maxAdvanceBookingDays,omitempty"`
}

// Service админский сервис тарифной сетки.
// Пишет те же ключи platform_config, которые pricing.Service читает при
// каждом расчёте; значения валидируются на входе, чтобы расчёт цены никогда
// не наткнулся на непарсящийся процент.
type Service struct {
	configRepo ConfigRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса тарифной сетки
func NewService(configRepo ConfigRepository, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		logger:     logger,
	}
}

// Get возвращает текущую тарифную сетку (с дефолтами для незаданных ключей)
func (s *Service) Get(ctx context.Context) (*Schedule, error) {
	values, err := s.configRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Get: failed to read config: %v", err)
		return nil, fmt.Errorf("%w: failed to read config: %v", ErrInternal, err)
	}

	schedule := &Schedule{
		BookingFeePercentage:  domain.DefaultBookingFeePercentage,
		GSTPercentage:         domain.DefaultGSTPercentage,
		MaxAdvanceBookingDays: domain.DefaultMaxAdvanceDays,
	}

	if v, ok := values[domain.ConfigKeyBookingFeePercentage]; ok {
		schedule.BookingFeePercentage = v
	}
	if v, ok := values[domain.ConfigKeyGSTPercentage]; ok {
		schedule.GSTPercentage = v
	}
	if v, ok := values[domain.ConfigKeyMaxAdvanceDays]; ok {
		if days, err := strconv.Atoi(v); err == nil {
			schedule.MaxAdvanceBookingDays = days
		}
	}

	return schedule, nil
}

// Update изменяет тарифную сетку
func (s *Service) Update(ctx context.Context, req *UpdateRequest) (*Schedule, error) {
	if req.BookingFeePercentage != nil {
		if err := s.setPercentage(ctx, domain.ConfigKeyBookingFeePercentage, *req.BookingFeePercentage); err != nil {
			return nil, err
		}
	}

	if req.GSTPercentage != nil {
		if err := s.setPercentage(ctx, domain.ConfigKeyGSTPercentage, *req.GSTPercentage); err != nil {
			return nil, err
		}
	}

	if req.MaxAdvanceBookingDays != nil {
		if *req.MaxAdvanceBookingDays < 0 {
			return nil, fmt.Errorf("%w: %s must be non-negative", ErrInvalidValue, domain.ConfigKeyMaxAdvanceDays)
		}
		if err := s.configRepo.Set(ctx, domain.ConfigKeyMaxAdvanceDays, strconv.Itoa(*req.MaxAdvanceBookingDays)); err != nil {
			s.logger.Error("Update: failed to set %s: %v", domain.ConfigKeyMaxAdvanceDays, err)
			return nil, fmt.Errorf("%w: failed to set %s: %v", ErrInternal, domain.ConfigKeyMaxAdvanceDays, err)
		}
	}

	s.logger.Info("Update: fee schedule updated")
	return s.Get(ctx)
}

func (s *Service) setPercentage(ctx context.Context, key, value string) error {
	pct, err := decimal.NewFromString(value)
	if err != nil {
		s.logger.Warn("Update: rejected unparseable %s=%q", key, value)
		return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidValue, key, value)
	}
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		s.logger.Warn("Update: rejected out-of-range %s=%s", key, pct)
		return fmt.Errorf("%w: %s must be between 0 and 100", ErrInvalidValue, key)
	}

	if err := s.configRepo.Set(ctx, key, value); err != nil {
		s.logger.Error("Update: failed to set %s: %v", key, err)
		return fmt.Errorf("%w: failed to set %s: %v", ErrInternal, key, err)
	}

	return nil
}
