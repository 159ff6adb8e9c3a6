package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/salonbook/SBP-CheckoutService/internal/domain"
	"github.com/salonbook/SBP-CheckoutService/internal/infra/storage/feeconfig"
)

var hundred = decimal.NewFromInt(100)

// Service расчёт стоимости по актуальной тарифной сетке.
// Вся денежная арифметика на decimal: float здесь - это баг корректности,
// ошибка округления означает пере- или недосписание с клиента.
type Service struct {
	configRepo ConfigRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса расчёта стоимости
func NewService(configRepo ConfigRepository, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		logger:     logger,
	}
}

// Resolve рассчитывает разбивку стоимости для суммы услуг.
// convenience_fee = round(subtotal * fee% / 100, 2)
// tax             = round(convenience_fee * tax% / 100, 2)
// Налог считается от сервисного сбора, а не от суммы услуг: услуги
// оплачиваются в салоне и не проходят через платёжный канал платформы.
func (s *Service) Resolve(ctx context.Context, subtotal decimal.Decimal) (*domain.PriceBreakdown, error) {
	feePct, err := s.percentage(ctx, domain.ConfigKeyBookingFeePercentage, domain.DefaultBookingFeePercentage)
	if err != nil {
		return nil, err
	}

	taxPct, err := s.percentage(ctx, domain.ConfigKeyGSTPercentage, domain.DefaultGSTPercentage)
	if err != nil {
		return nil, err
	}

	convenienceFee := subtotal.Mul(feePct).Div(hundred).Round(2)
	tax := convenienceFee.Mul(taxPct).Div(hundred).Round(2)

	return &domain.PriceBreakdown{
		ServiceSubtotal:     subtotal,
		ConvenienceFee:      convenienceFee,
		Tax:                 tax,
		AmountPayableOnline: convenienceFee.Add(tax),
		AmountPayableSalon:  subtotal,
	}, nil
}

// percentage читает процент из конфигурации
// Отсутствующий ключ заменяется дефолтом; присутствующий, но некорректный -
// это ErrConfiguration, а не повод угадывать
func (s *Service) percentage(ctx context.Context, key, fallback string) (decimal.Decimal, error) {
	raw, err := s.configRepo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, feeconfig.ErrKeyNotFound) {
			s.logger.Info("Resolve: config key %s not set, using default %s", key, fallback)
			raw = fallback
		} else {
			s.logger.Error("Resolve: failed to read config key %s: %v", key, err)
			return decimal.Zero, fmt.Errorf("%w: failed to read %s: %v", ErrInternal, key, err)
		}
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		s.logger.Error("Resolve: config key %s has unparseable value %q", key, raw)
		return decimal.Zero, fmt.Errorf("%w: %s=%q is not a number", ErrConfiguration, key, raw)
	}

	if value.IsNegative() {
		s.logger.Error("Resolve: config key %s has negative value %s", key, value)
		return decimal.Zero, fmt.Errorf("%w: %s=%s must be non-negative", ErrConfiguration, key, value)
	}

	return value, nil
}
