package cart

import (
	"context"

	"github.com/salonbook/SBP-CheckoutService/internal/domain"
	"github.com/salonbook/SBP-CheckoutService/internal/integrations/salonservice"
)

// CartRepository интерфейс репозитория корзины
type CartRepository interface {
	GetByCustomer(ctx context.Context, customerID int64) ([]*domain.CartItem, error)
	GetByCustomerAndService(ctx context.Context, customerID, serviceID int64) (*domain.CartItem, error)
	Create(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error)
	UpdateQuantity(ctx context.Context, customerID, itemID int64, quantity int) error
	Delete(ctx context.Context, customerID, itemID int64) error
	ClearByCustomer(ctx context.Context, customerID int64) error
}

// SalonServiceClient интерфейс клиента для SalonService
type SalonServiceClient interface {
	GetSalon(ctx context.Context, salonID int64) (*salonservice.Salon, error)
	GetService(ctx context.Context, serviceID int64) (*salonservice.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
