package checkout

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/salonbook/SBP-CheckoutService/internal/domain"
	bookingRepository "github.com/salonbook/SBP-CheckoutService/internal/infra/storage/booking"
	"github.com/salonbook/SBP-CheckoutService/internal/infra/storage/feeconfig"
	intentRepository "github.com/salonbook/SBP-CheckoutService/internal/infra/storage/intent"
	"github.com/salonbook/SBP-CheckoutService/internal/integrations/notifyservice"
	"github.com/salonbook/SBP-CheckoutService/internal/integrations/salonservice"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockCartService struct {
	view *domain.CartView
	err  error
}

func (m *mockCartService) Snapshot(_ context.Context, _ int64) (*domain.CartView, error) {
	return m.view, m.err
}

type mockCartRepo struct {
	mu         sync.Mutex
	clearCalls int
}

func (m *mockCartRepo) ClearByCustomer(_ context.Context, _ int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearCalls++
	return nil
}

type mockPricingService struct {
	breakdown *domain.PriceBreakdown
	err       error
}

func (m *mockPricingService) Resolve(_ context.Context, subtotal decimal.Decimal) (*domain.PriceBreakdown, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.breakdown, nil
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

type mockVerifier struct {
	ok bool
}

func (m *mockVerifier) VerifySignature(_, _, _ string) bool {
	return m.ok
}

type mockConfigRepo struct {
	values map[string]string
}

func (m *mockConfigRepo) Get(_ context.Context, key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", feeconfig.ErrKeyNotFound
	}
	return value, nil
}

// mockIntentRepo воспроизводит семантику условного consume:
// первый вызов помечает намерение использованным, второй получает ошибку
type mockIntentRepo struct {
	mu       sync.Mutex
	intent   *domain.PaymentIntent
	consumed bool

	consumeCalls int
}

func (m *mockIntentRepo) GetByGatewayOrderID(_ context.Context, gatewayOrderID string) (*domain.PaymentIntent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.intent == nil || m.intent.GatewayOrderID != gatewayOrderID {
		return nil, intentRepository.ErrIntentNotFound
	}
	copied := *m.intent
	return &copied, nil
}

func (m *mockIntentRepo) Consume(_ context.Context, gatewayOrderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.consumeCalls++
	if m.intent == nil || m.intent.GatewayOrderID != gatewayOrderID {
		return intentRepository.ErrIntentNotFound
	}
	if m.consumed {
		return intentRepository.ErrAlreadyConsumed
	}
	m.consumed = true
	return nil
}

type mockBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
}

func (m *mockBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	booking.ID = m.nextID
	m.bookings = append(m.bookings, booking)
	return booking, nil
}

func (m *mockBookingRepo) GetByGatewayOrderID(_ context.Context, gatewayOrderID string) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.GatewayOrderID == gatewayOrderID {
			return b, nil
		}
	}
	return nil, bookingRepository.ErrBookingNotFound
}

func (m *mockBookingRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bookings)
}

type mockPaymentRepo struct {
	mu      sync.Mutex
	records []*domain.PaymentRecord
}

func (m *mockPaymentRepo) Create(_ context.Context, record *domain.PaymentRecord) (*domain.PaymentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record.ID = int64(len(m.records) + 1)
	m.records = append(m.records, record)
	return record, nil
}

func (m *mockPaymentRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

type mockNotifier struct {
	mu    sync.Mutex
	sent  int
	err   error
	last  *notifyservice.BookingConfirmation
}

func (m *mockNotifier) SendBookingConfirmation(_ context.Context, confirmation *notifyservice.BookingConfirmation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent++
	m.last = confirmation
	return m.err
}

// mockTxManager выполняет замыкание без реальной транзакции
type mockTxManager struct{}

func (mockTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
