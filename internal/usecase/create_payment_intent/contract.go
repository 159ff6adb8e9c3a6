package create_payment_intent

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/salonbook/SBP-CheckoutService/internal/domain"
	"github.com/salonbook/SBP-CheckoutService/internal/integrations/paymentgateway"
	"github.com/salonbook/SBP-CheckoutService/internal/integrations/salonservice"
)

// CartService интерфейс сервиса корзины
type CartService interface {
	Snapshot(ctx context.Context, customerID int64) (*domain.CartView, error)
}

// PricingService интерфейс сервиса расчёта стоимости
type PricingService interface {
	Resolve(ctx context.Context, subtotal decimal.Decimal) (*domain.PriceBreakdown, error)
}

// SalonServiceClient интерфейс клиента для SalonService
type SalonServiceClient interface {
	GetSalon(ctx context.Context, salonID int64) (*salonservice.Salon, error)
}

// GatewayClient интерфейс клиента платёжного шлюза
type GatewayClient interface {
	CreateOrder(ctx context.Context, req *paymentgateway.CreateOrderRequest) (*paymentgateway.Order, error)
}

// IntentRepository интерфейс репозитория платёжных намерений
type IntentRepository interface {
	Create(ctx context.Context, intent *domain.PaymentIntent) (*domain.PaymentIntent, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
