package create_payment_intent

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonbook/SBP-CheckoutService/internal/domain"
	"github.com/salonbook/SBP-CheckoutService/internal/integrations/paymentgateway"
	"github.com/salonbook/SBP-CheckoutService/internal/integrations/salonservice"
	"github.com/salonbook/SBP-CheckoutService/internal/service/pricing"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockCartService struct {
	view *domain.CartView
}

func (m *mockCartService) Snapshot(_ context.Context, _ int64) (*domain.CartView, error) {
	return m.view, nil
}

type mockPricingService struct {
	breakdown *domain.PriceBreakdown
	err       error
}

func (m *mockPricingService) Resolve(_ context.Context, _ decimal.Decimal) (*domain.PriceBreakdown, error) {
	return m.breakdown, m.err
}

type mockSalonClient struct {
	salon *salonservice.Salon
	err   error
}

func (m *mockSalonClient) GetSalon(_ context.Context, _ int64) (*salonservice.Salon, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.salon, nil
}

// mockGatewayClient возвращает заготовленные ошибки по одной на вызов
type mockGatewayClient struct {
	errs  []error
	calls int

	lastRequest *paymentgateway.CreateOrderRequest
	receipts    []string
}

func (m *mockGatewayClient) CreateOrder(_ context.Context, req *paymentgateway.CreateOrderRequest) (*paymentgateway.Order, error) {
	m.calls++
	m.lastRequest = req
	m.receipts = append(m.receipts, req.Receipt)
	if m.calls <= len(m.errs) && m.errs[m.calls-1] != nil {
		return nil, m.errs[m.calls-1]
	}
	return &paymentgateway.Order{
		GatewayOrderID: fmt.Sprintf("order_%d", m.calls),
		Amount:         req.Amount,
		Currency:       req.Currency,
		Receipt:        req.Receipt,
		Status:         "created",
	}, nil
}

type mockIntentRepo struct {
	created []*domain.PaymentIntent
}

func (m *mockIntentRepo) Create(_ context.Context, intent *domain.PaymentIntent) (*domain.PaymentIntent, error) {
	intent.ID = int64(len(m.created) + 1)
	m.created = append(m.created, intent)
	return intent, nil
}

func testView() *domain.CartView {
	return &domain.CartView{
		CustomerID: 7,
		SalonID:    1,
		Lines: []domain.CartLine{{
			Item:        domain.CartItem{ID: 5, CustomerID: 7, SalonID: 1, ServiceID: 10, Quantity: 2},
			ServiceName: "Haircut",
			UnitPrice:   decimal.RequireFromString("500.00"),
			LineTotal:   decimal.RequireFromString("1000.00"),
		}},
		Subtotal: decimal.RequireFromString("1000.00"),
	}
}

func testBreakdown() *domain.PriceBreakdown {
	return &domain.PriceBreakdown{
		ServiceSubtotal:     decimal.RequireFromString("1000.00"),
		ConvenienceFee:      decimal.RequireFromString("100.00"),
		Tax:                 decimal.RequireFromString("18.00"),
		AmountPayableOnline: decimal.RequireFromString("118.00"),
		AmountPayableSalon:  decimal.RequireFromString("1000.00"),
	}
}

func activeSalon() *salonservice.Salon {
	return &salonservice.Salon{ID: 1, IsActive: true, AcceptingBookings: true}
}

func newUseCase(cart *mockCartService, pricing *mockPricingService, salon *mockSalonClient,
	gateway *mockGatewayClient, intents *mockIntentRepo) *UseCase {
	return NewUseCase(cart, pricing, salon, gateway, intents, nopLogger{})
}

func TestExecute_CreatesIntent(t *testing.T) {
	gateway := &mockGatewayClient{}
	intents := &mockIntentRepo{}
	uc := newUseCase(
		&mockCartService{view: testView()},
		&mockPricingService{breakdown: testBreakdown()},
		&mockSalonClient{salon: activeSalon()},
		gateway,
		intents,
	)

	resp, err := uc.Execute(context.Background(), &Request{CustomerID: 7})

	require.NoError(t, err)
	assert.Equal(t, "order_1", resp.GatewayOrderID)
	// Шлюзу уходит только онлайн-сумма в пайсах
	assert.Equal(t, int64(11800), resp.AmountMinorUnits)
	assert.Equal(t, int64(11800), gateway.lastRequest.Amount)
	assert.Equal(t, domain.Currency, gateway.lastRequest.Currency)
	assert.Equal(t, "1000.00", resp.Breakdown.AmountPayableSalon)
	assert.Equal(t, "118.00", resp.Breakdown.AmountPayableOnline)

	require.Len(t, intents.created, 1)
	intent := intents.created[0]
	assert.Equal(t, domain.IntentStatusCreated, intent.Status)
	assert.True(t, intent.Amount.Equal(decimal.RequireFromString("118.00")))
	assert.Equal(t, int64(1), intent.SalonID)
}

func TestExecute_EmptyCart(t *testing.T) {
	uc := newUseCase(
		&mockCartService{view: &domain.CartView{CustomerID: 7}},
		&mockPricingService{breakdown: testBreakdown()},
		&mockSalonClient{salon: activeSalon()},
		&mockGatewayClient{},
		&mockIntentRepo{},
	)

	_, err := uc.Execute(context.Background(), &Request{CustomerID: 7})

	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestExecute_SalonInactive(t *testing.T) {
	salon := activeSalon()
	salon.IsActive = false
	uc := newUseCase(
		&mockCartService{view: testView()},
		&mockPricingService{breakdown: testBreakdown()},
		&mockSalonClient{salon: salon},
		&mockGatewayClient{},
		&mockIntentRepo{},
	)

	_, err := uc.Execute(context.Background(), &Request{CustomerID: 7})

	require.ErrorIs(t, err, ErrSalonInactive)
}

func TestExecute_SalonStoppedAccepting(t *testing.T) {
	salon := activeSalon()
	salon.AcceptingBookings = false
	uc := newUseCase(
		&mockCartService{view: testView()},
		&mockPricingService{breakdown: testBreakdown()},
		&mockSalonClient{salon: salon},
		&mockGatewayClient{},
		&mockIntentRepo{},
	)

	_, err := uc.Execute(context.Background(), &Request{CustomerID: 7})

	require.ErrorIs(t, err, ErrSalonNotAccepting)
}

func TestExecute_GatewayRetrySucceeds(t *testing.T) {
	gateway := &mockGatewayClient{errs: []error{paymentgateway.ErrGatewayUnavailable}}
	intents := &mockIntentRepo{}
	uc := newUseCase(
		&mockCartService{view: testView()},
		&mockPricingService{breakdown: testBreakdown()},
		&mockSalonClient{salon: activeSalon()},
		gateway,
		intents,
	)

	resp, err := uc.Execute(context.Background(), &Request{CustomerID: 7})

	require.NoError(t, err)
	assert.Equal(t, 2, gateway.calls)
	assert.Equal(t, "order_2", resp.GatewayOrderID)
	assert.Len(t, intents.created, 1)
}

func TestExecute_GatewayUnavailableAfterRetry(t *testing.T) {
	gateway := &mockGatewayClient{errs: []error{
		paymentgateway.ErrGatewayUnavailable,
		paymentgateway.ErrGatewayUnavailable,
	}}
	intents := &mockIntentRepo{}
	uc := newUseCase(
		&mockCartService{view: testView()},
		&mockPricingService{breakdown: testBreakdown()},
		&mockSalonClient{salon: activeSalon()},
		gateway,
		intents,
	)

	_, err := uc.Execute(context.Background(), &Request{CustomerID: 7})

	// Один повтор, не бесконечный цикл; намерение не записывается
	require.ErrorIs(t, err, ErrGatewayUnavailable)
	assert.Equal(t, 2, gateway.calls)
	assert.Empty(t, intents.created)
}

func TestExecute_FreshIntentPerCall(t *testing.T) {
	gateway := &mockGatewayClient{}
	intents := &mockIntentRepo{}
	uc := newUseCase(
		&mockCartService{view: testView()},
		&mockPricingService{breakdown: testBreakdown()},
		&mockSalonClient{salon: activeSalon()},
		gateway,
		intents,
	)

	first, err := uc.Execute(context.Background(), &Request{CustomerID: 7})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), &Request{CustomerID: 7})
	require.NoError(t, err)

	// Каждый вызов создает новый заказ и новое намерение,
	// старые остаются инертными
	assert.NotEqual(t, first.GatewayOrderID, second.GatewayOrderID)
	assert.NotEqual(t, gateway.receipts[0], gateway.receipts[1])
	assert.Len(t, intents.created, 2)
}

func TestExecute_ConfigurationError(t *testing.T) {
	uc := newUseCase(
		&mockCartService{view: testView()},
		&mockPricingService{err: fmt.Errorf("%w: booking_fee_percentage=\"abc\"", pricing.ErrConfiguration)},
		&mockSalonClient{salon: activeSalon()},
		&mockGatewayClient{},
		&mockIntentRepo{},
	)

	_, err := uc.Execute(context.Background(), &Request{CustomerID: 7})

	require.ErrorIs(t, err, ErrConfiguration)
}
