package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/salonbook/SBP-CheckoutService/internal/domain"
	cartRepo "github.com/salonbook/SBP-CheckoutService/internal/infra/storage/cart"
	salonClient "github.com/salonbook/SBP-CheckoutService/internal/integrations/salonservice"
)

// Service сервис для работы с корзиной
type Service struct {
	cartRepo    CartRepository
	salonClient SalonServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса корзины
func NewService(cartRepo CartRepository, salonClient SalonServiceClient, logger Logger) *Service {
	return &Service{
		cartRepo:    cartRepo,
		salonClient: salonClient,
		logger:      logger,
	}
}

// Add добавляет услугу в корзину покупателя.
// Повторное добавление той же услуги увеличивает количество (idempotent-additive).
// Услуга другого салона в непустую корзину не добавляется - ErrCrossSalonConflict.
func (s *Service) Add(ctx context.Context, customerID, serviceID int64, quantity int) (*domain.CartItem, error) {
	s.logger.Info("Add: customer=%d, service=%d, qty=%d", customerID, serviceID, quantity)

	if customerID <= 0 || serviceID <= 0 {
		return nil, fmt.Errorf("%w: customerID and serviceID must be positive", ErrInvalidInput)
	}
	if quantity <= 0 || quantity > domain.MaxCartQuantity {
		return nil, fmt.Errorf("%w: quantity must be between 1 and %d", ErrInvalidInput, domain.MaxCartQuantity)
	}

	// 1. Получаем услугу (актуальная цена и привязка к салону)
	service, err := s.getActiveService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	// 2. Проверяем, что салон активен и принимает бронирования
	if err := s.checkSalonAccepting(ctx, service.SalonID); err != nil {
		return nil, err
	}

	// 3. Проверяем эксклюзивность салона в корзине
	items, err := s.cartRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		s.logger.Error("Add: failed to get cart for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: failed to get cart: %v", ErrInternal, err)
	}

	if len(items) > 0 && items[0].SalonID != service.SalonID {
		s.logger.Warn("Add: cross-salon conflict for customer=%d: cart salon=%d, new salon=%d",
			customerID, items[0].SalonID, service.SalonID)
		return nil, ErrCrossSalonConflict
	}

	// 4. Если услуга уже в корзине - увеличиваем количество
	existing, err := s.cartRepo.GetByCustomerAndService(ctx, customerID, serviceID)
	if err != nil && !errors.Is(err, cartRepo.ErrItemNotFound) {
		s.logger.Error("Add: failed to look up item for customer=%d, service=%d: %v", customerID, serviceID, err)
		return nil, fmt.Errorf("%w: failed to look up item: %v", ErrInternal, err)
	}
	if existing != nil {
		newQuantity := existing.Quantity + quantity
		if newQuantity > domain.MaxCartQuantity {
			return nil, fmt.Errorf("%w: quantity must be between 1 and %d", ErrInvalidInput, domain.MaxCartQuantity)
		}
		if err := s.cartRepo.UpdateQuantity(ctx, customerID, existing.ID, newQuantity); err != nil {
			s.logger.Error("Add: failed to increment quantity for item=%d: %v", existing.ID, err)
			return nil, fmt.Errorf("%w: failed to update quantity: %v", ErrInternal, err)
		}
		existing.Quantity = newQuantity
		s.logger.Info("Add: incremented item=%d to qty=%d for customer=%d", existing.ID, newQuantity, customerID)
		return existing, nil
	}

	// 5. Новая позиция
	created, err := s.cartRepo.Create(ctx, &domain.CartItem{
		CustomerID: customerID,
		SalonID:    service.SalonID,
		ServiceID:  serviceID,
		Quantity:   quantity,
	})
	if err != nil {
		s.logger.Error("Add: failed to create item for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: failed to create item: %v", ErrInternal, err)
	}

	s.logger.Info("Add: created item=%d for customer=%d", created.ID, customerID)
	return created, nil
}

// UpdateQuantity изменяет количество позиции корзины
func (s *Service) UpdateQuantity(ctx context.Context, customerID, itemID int64, quantity int) error {
	s.logger.Info("UpdateQuantity: customer=%d, item=%d, qty=%d", customerID, itemID, quantity)

	if quantity <= 0 || quantity > domain.MaxCartQuantity {
		return fmt.Errorf("%w: quantity must be between 1 and %d", ErrInvalidInput, domain.MaxCartQuantity)
	}

	if err := s.cartRepo.UpdateQuantity(ctx, customerID, itemID, quantity); err != nil {
		if errors.Is(err, cartRepo.ErrItemNotFound) {
			return ErrItemNotFound
		}
		s.logger.Error("UpdateQuantity: repository error for item=%d: %v", itemID, err)
		return fmt.Errorf("%w: failed to update quantity: %v", ErrInternal, err)
	}

	return nil
}

// Remove удаляет позицию из корзины
func (s *Service) Remove(ctx context.Context, customerID, itemID int64) error {
	s.logger.Info("Remove: customer=%d, item=%d", customerID, itemID)

	if err := s.cartRepo.Delete(ctx, customerID, itemID); err != nil {
		if errors.Is(err, cartRepo.ErrItemNotFound) {
			return ErrItemNotFound
		}
		s.logger.Error("Remove: repository error for item=%d: %v", itemID, err)
		return fmt.Errorf("%w: failed to remove item: %v", ErrInternal, err)
	}

	return nil
}

// Clear очищает корзину покупателя
func (s *Service) Clear(ctx context.Context, customerID int64) error {
	s.logger.Info("Clear: customer=%d", customerID)

	if err := s.cartRepo.ClearByCustomer(ctx, customerID); err != nil {
		s.logger.Error("Clear: repository error for customer=%d: %v", customerID, err)
		return fmt.Errorf("%w: failed to clear cart: %v", ErrInternal, err)
	}

	return nil
}

// Snapshot возвращает согласованное чтение корзины на момент вызова.
// Цены берутся из справочника услуг заново при каждом вызове - snapshot
// служит базой для расчёта стоимости и не должен опираться на устаревшие данные.
// Позиции с удалёнными или деактивированными услугами в снимок не попадают:
// салон мог снять услугу уже после добавления в корзину, и это не должно
// блокировать чтение корзины и checkout по оставшимся позициям.
func (s *Service) Snapshot(ctx context.Context, customerID int64) (*domain.CartView, error) {
	items, err := s.cartRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		s.logger.Error("Snapshot: failed to get cart for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: failed to get cart: %v", ErrInternal, err)
	}

	view := &domain.CartView{
		CustomerID: customerID,
		Lines:      make([]domain.CartLine, 0, len(items)),
		Subtotal:   decimal.Zero,
	}

	if len(items) == 0 {
		return view, nil
	}

	view.SalonID = items[0].SalonID

	for _, item := range items {
		service, err := s.getActiveService(ctx, item.ServiceID)
		if err != nil {
			if errors.Is(err, ErrServiceNotFound) {
				s.logger.Warn("Snapshot: pruning stale item=%d (service=%d) for customer=%d",
					item.ID, item.ServiceID, customerID)
				continue
			}
			return nil, err
		}

		lineTotal := service.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		view.Lines = append(view.Lines, domain.CartLine{
			Item:        *item,
			ServiceName: service.Name,
			UnitPrice:   service.Price,
			LineTotal:   lineTotal,
		})
		view.Subtotal = view.Subtotal.Add(lineTotal)
	}

	return view, nil
}

// getActiveService получает активную услугу из справочника
func (s *Service) getActiveService(ctx context.Context, serviceID int64) (*salonClient.Service, error) {
	service, err := s.salonClient.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, salonClient.ErrServiceNotFound) {
			s.logger.Warn("getActiveService: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("getActiveService: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		s.logger.Warn("getActiveService: service id=%d is inactive", serviceID)
		return nil, ErrServiceNotFound
	}

	return service, nil
}

// checkSalonAccepting проверяет, что салон активен и принимает бронирования
func (s *Service) checkSalonAccepting(ctx context.Context, salonID int64) error {
	salon, err := s.salonClient.GetSalon(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonClient.ErrSalonNotFound) {
			s.logger.Warn("checkSalonAccepting: salon id=%d not found", salonID)
			return ErrSalonNotFound
		}
		s.logger.Error("checkSalonAccepting: failed to get salon id=%d: %v", salonID, err)
		return fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	if !salon.IsActive {
		s.logger.Warn("checkSalonAccepting: salon id=%d is inactive", salonID)
		return ErrSalonNotFound
	}

	if !salon.AcceptingBookings {
		s.logger.Warn("checkSalonAccepting: salon id=%d is not accepting bookings", salonID)
		return ErrSalonNotAccepting
	}

	return nil
}
