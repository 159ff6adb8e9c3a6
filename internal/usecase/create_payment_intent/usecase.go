package create_payment_intent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/salonbook/SBP-CheckoutService/internal/domain"
	"github.com/salonbook/SBP-CheckoutService/internal/integrations/paymentgateway"
	"github.com/salonbook/SBP-CheckoutService/internal/integrations/salonservice"
	"github.com/salonbook/SBP-CheckoutService/internal/service/pricing"
)

// gatewayRetryBackoff пауза перед единственным повтором запроса к шлюзу
const gatewayRetryBackoff = 500 * time.Millisecond

// UseCase use case создания платёжного намерения.
// Каждый вызов создаёт новый заказ в шлюзе: цена фиксируется на момент
// вызова, старые неиспользованные намерения остаются инертными.
type UseCase struct {
	cartService    CartService
	pricingService PricingService
	salonClient    SalonServiceClient
	gatewayClient  GatewayClient
	intentRepo     IntentRepository
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	cartService CartService,
	pricingService PricingService,
	salonClient SalonServiceClient,
	gatewayClient GatewayClient,
	intentRepo IntentRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		cartService:    cartService,
		pricingService: pricingService,
		salonClient:    salonClient,
		gatewayClient:  gatewayClient,
		intentRepo:     intentRepo,
		logger:         logger,
	}
}

// Execute выполняет use case создания платёжного намерения
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreatePaymentIntent: customer=%d", req.CustomerID)

	// 1. Валидация входных данных
	if req.CustomerID <= 0 {
		uc.logger.Warn("CreatePaymentIntent: invalid customer id %d", req.CustomerID)
		return nil, fmt.Errorf("%w: customer id must be positive", ErrInvalidInput)
	}

	// 2. Снимок корзины с актуальными ценами из каталога
	view, err := uc.cartService.Snapshot(ctx, req.CustomerID)
	if err != nil {
		uc.logger.Error("CreatePaymentIntent: failed to snapshot cart for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to snapshot cart: %v", ErrInternal, err)
	}
	if view.IsEmpty() {
		uc.logger.Warn("CreatePaymentIntent: cart is empty for customer=%d", req.CustomerID)
		return nil, ErrEmptyCart
	}

	// 3. Проверяем, что салон всё ещё активен и принимает бронирования
	salon, err := uc.salonClient.GetSalon(ctx, view.SalonID)
	if err != nil {
		if errors.Is(err, salonservice.ErrSalonNotFound) {
			uc.logger.Warn("CreatePaymentIntent: salon id=%d not found", view.SalonID)
			return nil, ErrSalonInactive
		}
		uc.logger.Error("CreatePaymentIntent: failed to get salon id=%d: %v", view.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}
	if !salon.IsActive {
		uc.logger.Warn("CreatePaymentIntent: salon id=%d is inactive", view.SalonID)
		return nil, ErrSalonInactive
	}
	if !salon.AcceptingBookings {
		uc.logger.Warn("CreatePaymentIntent: salon id=%d is not accepting bookings", view.SalonID)
		return nil, ErrSalonNotAccepting
	}

	// 4. Рассчитываем стоимость по актуальной тарифной сетке
	breakdown, err := uc.pricingService.Resolve(ctx, view.Subtotal)
	if err != nil {
		if errors.Is(err, pricing.ErrConfiguration) {
			uc.logger.Error("CreatePaymentIntent: fee schedule misconfigured: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		uc.logger.Error("CreatePaymentIntent: failed to resolve pricing: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve pricing: %v", ErrInternal, err)
	}

	// 5. Создаем заказ в шлюзе
	order, err := uc.createGatewayOrder(ctx, breakdown)
	if err != nil {
		return nil, err
	}

	// 6. Фиксируем намерение: сумма по значению, не ссылка на живую корзину
	intent, err := uc.intentRepo.Create(ctx, &domain.PaymentIntent{
		GatewayOrderID: order.GatewayOrderID,
		CustomerID:     req.CustomerID,
		SalonID:        view.SalonID,
		Amount:         breakdown.AmountPayableOnline,
		Currency:       domain.Currency,
		Status:         domain.IntentStatusCreated,
	})
	if err != nil {
		uc.logger.Error("CreatePaymentIntent: failed to store intent for order=%s: %v", order.GatewayOrderID, err)
		return nil, fmt.Errorf("%w: failed to store intent: %v", ErrInternal, err)
	}

	uc.logger.Info("CreatePaymentIntent: created intent id=%d, order=%s, amount=%s %s",
		intent.ID, intent.GatewayOrderID, intent.Amount.StringFixed(2), intent.Currency)

	return &Response{
		IntentID:         intent.ID,
		GatewayOrderID:   intent.GatewayOrderID,
		AmountMinorUnits: breakdown.OnlineAmountMinorUnits(),
		Currency:         intent.Currency,
		Breakdown: Breakdown{
			ServiceSubtotal:     breakdown.ServiceSubtotal.StringFixed(2),
			ConvenienceFee:      breakdown.ConvenienceFee.StringFixed(2),
			Tax:                 breakdown.Tax.StringFixed(2),
			AmountPayableOnline: breakdown.AmountPayableOnline.StringFixed(2),
			AmountPayableSalon:  breakdown.AmountPayableSalon.StringFixed(2),
		},
	}, nil
}

// createGatewayOrder создает заказ в шлюзе с одним повтором при недоступности
func (uc *UseCase) createGatewayOrder(ctx context.Context, breakdown *domain.PriceBreakdown) (*paymentgateway.Order, error) {
	gatewayReq := &paymentgateway.CreateOrderRequest{
		Amount:   breakdown.OnlineAmountMinorUnits(),
		Currency: domain.Currency,
		Receipt:  fmt.Sprintf("rcpt_%s", uuid.NewString()),
	}

	order, err := uc.gatewayClient.CreateOrder(ctx, gatewayReq)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, paymentgateway.ErrGatewayUnavailable) {
		uc.logger.Error("CreatePaymentIntent: gateway rejected order: %v", err)
		return nil, fmt.Errorf("%w: gateway rejected order: %v", ErrInternal, err)
	}

	uc.logger.Warn("CreatePaymentIntent: gateway unavailable, retrying once: %v", err)

	select {
	case <-time.After(gatewayRetryBackoff):
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, ctx.Err())
	}

	order, err = uc.gatewayClient.CreateOrder(ctx, gatewayReq)
	if err != nil {
		if errors.Is(err, paymentgateway.ErrGatewayUnavailable) {
			uc.logger.Error("CreatePaymentIntent: gateway unavailable after retry: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
		}
		uc.logger.Error("CreatePaymentIntent: gateway rejected order on retry: %v", err)
		return nil, fmt.Errorf("%w: gateway rejected order: %v", ErrInternal, err)
	}

	return order, nil
}
