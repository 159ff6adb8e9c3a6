package checkout

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salonbook/SBP-CheckoutService/internal/domain"
	"github.com/salonbook/SBP-CheckoutService/internal/integrations/notifyservice"
	"github.com/salonbook/SBP-CheckoutService/internal/integrations/salonservice"
)

// CartService интерфейс сервиса корзины
type CartService interface {
	Snapshot(ctx context.Context, customerID int64) (*domain.CartView, error)
}

// CartRepository интерфейс репозитория корзины
// Очистка корзины выполняется внутри транзакции checkout
type CartRepository interface {
	ClearByCustomer(ctx context.Context, customerID int64) error
}

// PricingService интерфейс сервиса расчёта стоимости
type PricingService interface {
	Resolve(ctx context.Context, subtotal decimal.Decimal) (*domain.PriceBreakdown, error)
}

// SalonServiceClient интерфейс клиента для SalonService
type SalonServiceClient interface {
	GetSalon(ctx context.Context, salonID int64) (*salonservice.Salon, error)
}

// GatewayVerifier интерфейс проверки подписи платёжного шлюза
type GatewayVerifier interface {
	VerifySignature(orderID, paymentID, signature string) bool
}

// ConfigRepository интерфейс репозитория конфигурации платформы
type ConfigRepository interface {
	Get(ctx context.Context, key string) (string, error)
}

// IntentRepository интерфейс репозитория платёжных намерений
type IntentRepository interface {
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.PaymentIntent, error)
	Consume(ctx context.Context, gatewayOrderID string) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.Booking, error)
}

// PaymentRepository интерфейс репозитория платёжных записей
type PaymentRepository interface {
	Create(ctx context.Context, record *domain.PaymentRecord) (*domain.PaymentRecord, error)
}

// Notifier интерфейс для отправки уведомлений о бронировании
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, confirmation *notifyservice.BookingConfirmation) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
