package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonbook/SBP-CheckoutService/internal/domain"
	cartRepository "github.com/salonbook/SBP-CheckoutService/internal/infra/storage/cart"
	"github.com/salonbook/SBP-CheckoutService/internal/integrations/salonservice"
)

type mockCartRepo struct {
	items []*domain.CartItem

	created     *domain.CartItem
	updatedID   int64
	updatedQty  int
	updateCalls int
	createCalls int
}

func (m *mockCartRepo) GetByCustomer(_ context.Context, _ int64) ([]*domain.CartItem, error) {
	return m.items, nil
}

func (m *mockCartRepo) GetByCustomerAndService(_ context.Context, _, serviceID int64) (*domain.CartItem, error) {
	for _, item := range m.items {
		if item.ServiceID == serviceID {
			return item, nil
		}
	}
	return nil, cartRepository.ErrItemNotFound
}

func (m *mockCartRepo) Create(_ context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	m.createCalls++
	item.ID = 101
	m.created = item
	return item, nil
}

func (m *mockCartRepo) UpdateQuantity(_ context.Context, _, itemID int64, quantity int) error {
	m.updateCalls++
	m.updatedID = itemID
	m.updatedQty = quantity
	return nil
}

func (m *mockCartRepo) Delete(_ context.Context, _, _ int64) error {
	return nil
}

func (m *mockCartRepo) ClearByCustomer(_ context.Context, _ int64) error {
	return nil
}

type mockSalonClient struct {
	salons   map[int64]*salonservice.Salon
	services map[int64]*salonservice.Service
}

func (m *mockSalonClient) GetSalon(_ context.Context, salonID int64) (*salonservice.Salon, error) {
	salon, ok := m.salons[salonID]
	if !ok {
		return nil, salonservice.ErrSalonNotFound
	}
	return salon, nil
}

func (m *mockSalonClient) GetService(_ context.Context, serviceID int64) (*salonservice.Service, error) {
	service, ok := m.services[serviceID]
	if !ok {
		return nil, salonservice.ErrServiceNotFound
	}
	return service, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func activeSalon(id int64) *salonservice.Salon {
	return &salonservice.Salon{ID: id, IsActive: true, AcceptingBookings: true}
}

func activeService(id, salonID int64, price string) *salonservice.Service {
	return &salonservice.Service{
		ID:       id,
		SalonID:  salonID,
		Name:     "Haircut",
		Price:    decimal.RequireFromString(price),
		IsActive: true,
	}
}

func TestAdd_NewItem(t *testing.T) {
	repo := &mockCartRepo{}
	client := &mockSalonClient{
		salons:   map[int64]*salonservice.Salon{1: activeSalon(1)},
		services: map[int64]*salonservice.Service{10: activeService(10, 1, "500.00")},
	}
	svc := NewService(repo, client, nopLogger{})

	item, err := svc.Add(context.Background(), 7, 10, 2)

	require.NoError(t, err)
	assert.Equal(t, int64(1), item.SalonID)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 1, repo.createCalls)
}

func TestAdd_IdempotentAdditive(t *testing.T) {
	repo := &mockCartRepo{items: []*domain.CartItem{
		{ID: 5, CustomerID: 7, SalonID: 1, ServiceID: 10, Quantity: 1},
	}}
	client := &mockSalonClient{
		salons:   map[int64]*salonservice.Salon{1: activeSalon(1)},
		services: map[int64]*salonservice.Service{10: activeService(10, 1, "500.00")},
	}
	svc := NewService(repo, client, nopLogger{})

	item, err := svc.Add(context.Background(), 7, 10, 2)

	require.NoError(t, err)
	// Повторное добавление увеличивает количество, а не дублирует строку
	assert.Equal(t, int64(5), item.ID)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 0, repo.createCalls)
	assert.Equal(t, 1, repo.updateCalls)
	assert.Equal(t, 3, repo.updatedQty)
}

func TestAdd_CrossSalonConflict(t *testing.T) {
	repo := &mockCartRepo{items: []*domain.CartItem{
		{ID: 5, CustomerID: 7, SalonID: 1, ServiceID: 10, Quantity: 1},
	}}
	client := &mockSalonClient{
		salons: map[int64]*salonservice.Salon{
			1: activeSalon(1),
			2: activeSalon(2),
		},
		services: map[int64]*salonservice.Service{20: activeService(20, 2, "300.00")},
	}
	svc := NewService(repo, client, nopLogger{})

	_, err := svc.Add(context.Background(), 7, 20, 1)

	require.ErrorIs(t, err, ErrCrossSalonConflict)
	// Существующая корзина не мутируется
	assert.Equal(t, 0, repo.createCalls)
	assert.Equal(t, 0, repo.updateCalls)
	assert.Equal(t, 1, repo.items[0].Quantity)
}

func TestAdd_SalonNotAccepting(t *testing.T) {
	repo := &mockCartRepo{}
	client := &mockSalonClient{
		salons: map[int64]*salonservice.Salon{
			1: {ID: 1, IsActive: true, AcceptingBookings: false},
		},
		services: map[int64]*salonservice.Service{10: activeService(10, 1, "500.00")},
	}
	svc := NewService(repo, client, nopLogger{})

	_, err := svc.Add(context.Background(), 7, 10, 1)

	require.ErrorIs(t, err, ErrSalonNotAccepting)
	assert.Equal(t, 0, repo.createCalls)
}

func TestAdd_InactiveSalonTreatedAsNotFound(t *testing.T) {
	repo := &mockCartRepo{}
	client := &mockSalonClient{
		salons: map[int64]*salonservice.Salon{
			1: {ID: 1, IsActive: false, AcceptingBookings: true},
		},
		services: map[int64]*salonservice.Service{10: activeService(10, 1, "500.00")},
	}
	svc := NewService(repo, client, nopLogger{})

	_, err := svc.Add(context.Background(), 7, 10, 1)

	require.ErrorIs(t, err, ErrSalonNotFound)
}

func TestAdd_InactiveService(t *testing.T) {
	repo := &mockCartRepo{}
	inactive := activeService(10, 1, "500.00")
	inactive.IsActive = false
	client := &mockSalonClient{
		salons:   map[int64]*salonservice.Salon{1: activeSalon(1)},
		services: map[int64]*salonservice.Service{10: inactive},
	}
	svc := NewService(repo, client, nopLogger{})

	_, err := svc.Add(context.Background(), 7, 10, 1)

	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestAdd_QuantityBounds(t *testing.T) {
	repo := &mockCartRepo{}
	client := &mockSalonClient{
		salons:   map[int64]*salonservice.Salon{1: activeSalon(1)},
		services: map[int64]*salonservice.Service{10: activeService(10, 1, "500.00")},
	}
	svc := NewService(repo, client, nopLogger{})

	_, err := svc.Add(context.Background(), 7, 10, 0)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Add(context.Background(), 7, 10, domain.MaxCartQuantity+1)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSnapshot_LivePrices(t *testing.T) {
	repo := &mockCartRepo{items: []*domain.CartItem{
		{ID: 5, CustomerID: 7, SalonID: 1, ServiceID: 10, Quantity: 2},
		{ID: 6, CustomerID: 7, SalonID: 1, ServiceID: 11, Quantity: 1},
	}}
	client := &mockSalonClient{
		salons: map[int64]*salonservice.Salon{1: activeSalon(1)},
		services: map[int64]*salonservice.Service{
			10: activeService(10, 1, "500.00"),
			11: activeService(11, 1, "250.50"),
		},
	}
	svc := NewService(repo, client, nopLogger{})

	view, err := svc.Snapshot(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(1), view.SalonID)
	require.Len(t, view.Lines, 2)
	assert.Equal(t, "1000.00", view.Lines[0].LineTotal.StringFixed(2))
	assert.Equal(t, "250.50", view.Lines[1].LineTotal.StringFixed(2))
	assert.Equal(t, "1250.50", view.Subtotal.StringFixed(2))
}

func TestSnapshot_PrunesStaleService(t *testing.T) {
	repo := &mockCartRepo{items: []*domain.CartItem{
		{ID: 5, CustomerID: 7, SalonID: 1, ServiceID: 10, Quantity: 2},
		{ID: 6, CustomerID: 7, SalonID: 1, ServiceID: 11, Quantity: 1},
	}}
	deactivated := activeService(11, 1, "250.50")
	deactivated.IsActive = false
	client := &mockSalonClient{
		salons: map[int64]*salonservice.Salon{1: activeSalon(1)},
		services: map[int64]*salonservice.Service{
			10: activeService(10, 1, "500.00"),
			11: deactivated,
		},
	}
	svc := NewService(repo, client, nopLogger{})

	view, err := svc.Snapshot(context.Background(), 7)

	// Снятая салоном услуга выпадает из снимка, остальные позиции читаются
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, int64(10), view.Lines[0].Item.ServiceID)
	assert.Equal(t, "1000.00", view.Subtotal.StringFixed(2))
}

func TestSnapshot_AllServicesStale(t *testing.T) {
	repo := &mockCartRepo{items: []*domain.CartItem{
		{ID: 5, CustomerID: 7, SalonID: 1, ServiceID: 10, Quantity: 2},
	}}
	client := &mockSalonClient{
		salons:   map[int64]*salonservice.Salon{1: activeSalon(1)},
		services: map[int64]*salonservice.Service{},
	}
	svc := NewService(repo, client, nopLogger{})

	view, err := svc.Snapshot(context.Background(), 7)

	// Корзина целиком из снятых услуг читается как пустая,
	// дальше по цепочке это даёт EmptyCart, а не 500
	require.NoError(t, err)
	assert.True(t, view.IsEmpty())
	assert.True(t, view.Subtotal.IsZero())
}

func TestSnapshot_EmptyCart(t *testing.T) {
	svc := NewService(&mockCartRepo{}, &mockSalonClient{}, nopLogger{})

	view, err := svc.Snapshot(context.Background(), 7)

	require.NoError(t, err)
	assert.True(t, view.IsEmpty())
	assert.True(t, view.Subtotal.IsZero())
}
