package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/salonbook/SBP-CheckoutService/internal/domain"
	bookingRepository "github.com/salonbook/SBP-CheckoutService/internal/infra/storage/booking"
	"github.com/salonbook/SBP-CheckoutService/internal/infra/storage/feeconfig"
	intentRepository "github.com/salonbook/SBP-CheckoutService/internal/infra/storage/intent"
	"github.com/salonbook/SBP-CheckoutService/internal/integrations/notifyservice"
	"github.com/salonbook/SBP-CheckoutService/internal/integrations/salonservice"
	"github.com/salonbook/SBP-CheckoutService/internal/service/pricing"
	"github.com/salonbook/SBP-CheckoutService/pkg/types"
)

// UseCase use case завершения checkout: единственная точка, создающая Booking.
// Атомарная секция выполняется в одной транзакции read committed - точкой
// сериализации служит условный UPDATE намерения, поэтому из двух конкурентных
// вызовов с одним gateway_order_id ровно один создаёт бронирование, а второй
// получает ErrIntentAlreadyConsumed.
type UseCase struct {
	cartService    CartService
	cartRepo       CartRepository
	pricingService PricingService
	salonClient    SalonServiceClient
	verifier       GatewayVerifier
	configRepo     ConfigRepository
	intentRepo     IntentRepository
	bookingRepo    BookingRepository
	paymentRepo    PaymentRepository
	notifier       Notifier
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	cartService CartService,
	cartRepo CartRepository,
	pricingService PricingService,
	salonClient SalonServiceClient,
	verifier GatewayVerifier,
	configRepo ConfigRepository,
	intentRepo IntentRepository,
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		cartService:    cartService,
		cartRepo:       cartRepo,
		pricingService: pricingService,
		salonClient:    salonClient,
		verifier:       verifier,
		configRepo:     configRepo,
		intentRepo:     intentRepo,
		bookingRepo:    bookingRepo,
		paymentRepo:    paymentRepo,
		notifier:       notifier,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case завершения checkout
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("Checkout: customer=%d, order=%s, date=%s, slots=%v",
		req.CustomerID, req.GatewayOrderID, req.BookingDate.Format(domain.DateFormat), req.TimeSlots)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("Checkout: validation failed: %v", err)
		return nil, err
	}

	// 2. Идемпотентный повтор: если платёж уже произвёл бронирование,
	// возвращаем его вместо ошибки - безопасный ретрай после обрыва сети
	if resp, err := uc.replayedBooking(ctx, req); resp != nil || err != nil {
		return resp, err
	}

	now := uc.timeProvider.Now()

	// 3. Проверяем дату бронирования против горизонта из конфигурации
	maxAdvanceDays, err := uc.maxAdvanceDays(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateBookingDate(now, req.BookingDate, maxAdvanceDays); err != nil {
		uc.logger.Warn("Checkout: date validation failed: %v", err)
		return nil, err
	}

	// 4. Корзина не должна быть пуста
	view, err := uc.cartService.Snapshot(ctx, req.CustomerID)
	if err != nil {
		uc.logger.Error("Checkout: failed to snapshot cart for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to snapshot cart: %v", ErrInternal, err)
	}
	if view.IsEmpty() {
		uc.logger.Warn("Checkout: cart is empty for customer=%d", req.CustomerID)
		return nil, ErrEmptyCart
	}

	// 5. Салон мог деактивироваться после создания намерения
	salon, err := uc.salonClient.GetSalon(ctx, view.SalonID)
	if err != nil {
		if errors.Is(err, salonservice.ErrSalonNotFound) {
			uc.logger.Warn("Checkout: salon id=%d not found", view.SalonID)
			return nil, ErrSalonInactive
		}
		uc.logger.Error("Checkout: failed to get salon id=%d: %v", view.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}
	if !salon.IsActive || !salon.AcceptingBookings {
		uc.logger.Warn("Checkout: salon id=%d inactive or not accepting bookings", view.SalonID)
		return nil, ErrSalonInactive
	}

	// 6. Количество слотов в пределах лимита, каждый - в часах работы
	// салона в день бронирования
	if err := validateTimeSlots(salon, req.BookingDate, req.TimeSlots); err != nil {
		uc.logger.Warn("Checkout: time slot validation failed: %v", err)
		return nil, err
	}

	// 7. Проверка подписи - единственное доказательство оплаты.
	// Провал логируется как security-событие: клиентский SDK шлюза
	// может быть подделан, поля запроса - нет оснований доверять.
	if !uc.verifier.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature) {
		uc.logger.Error("Checkout: SECURITY: signature verification failed for customer=%d, order=%s, payment=%s",
			req.CustomerID, req.GatewayOrderID, req.GatewayPaymentID)
		return nil, ErrPaymentVerificationFailed
	}

	// 8. Атомарная секция: consume намерения, бронирование, платёжная
	// запись и очистка корзины фиксируются вместе или не фиксируются вовсе
	var booking *domain.Booking
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err = uc.settle(txCtx, req, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Checkout: created booking id=%d, number=%s, order=%s",
		booking.ID, booking.BookingNumber, req.GatewayOrderID)

	// 9. Уведомление после фиксации транзакции, best-effort:
	// сбой доставки не откатывает бронирование
	uc.notify(ctx, booking)

	return responseFromBooking(booking), nil
}

// replayedBooking возвращает уже созданное бронирование для этого
// gateway_order_id, если checkout по нему уже завершился успешно
func (uc *UseCase) replayedBooking(ctx context.Context, req *Request) (*Response, error) {
	existing, err := uc.bookingRepo.GetByGatewayOrderID(ctx, req.GatewayOrderID)
	if err != nil {
		if errors.Is(err, bookingRepository.ErrBookingNotFound) {
			return nil, nil
		}
		uc.logger.Error("Checkout: failed to look up booking by order=%s: %v", req.GatewayOrderID, err)
		return nil, fmt.Errorf("%w: failed to look up booking: %v", ErrInternal, err)
	}

	if existing.CustomerID != req.CustomerID {
		uc.logger.Error("Checkout: SECURITY: customer=%d replayed order=%s owned by customer=%d",
			req.CustomerID, req.GatewayOrderID, existing.CustomerID)
		return nil, ErrPaymentVerificationFailed
	}

	uc.logger.Info("Checkout: replay for order=%s, returning existing booking id=%d",
		req.GatewayOrderID, existing.ID)
	return responseFromBooking(existing), nil
}

// settle выполняет шаги атомарной секции внутри транзакции
func (uc *UseCase) settle(ctx context.Context, req *Request, now time.Time) (*domain.Booking, error) {
	// 8.1. Повторный снимок корзины уже внутри транзакции: строки корзины
	// берутся под блокировку, а конкурентный checkout по другому намерению,
	// успевший очистить корзину, детектируется здесь как ErrEmptyCart
	view, err := uc.cartService.Snapshot(ctx, req.CustomerID)
	if err != nil {
		uc.logger.Error("Checkout: failed to snapshot cart in transaction for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to snapshot cart: %v", ErrInternal, err)
	}
	if view.IsEmpty() {
		uc.logger.Warn("Checkout: cart emptied concurrently for customer=%d", req.CustomerID)
		return nil, ErrEmptyCart
	}

	// 8.2. Пересчитываем стоимость по актуальной корзине и тарифной сетке,
	// а не по снимку на момент создания намерения
	breakdown, err := uc.pricingService.Resolve(ctx, view.Subtotal)
	if err != nil {
		if errors.Is(err, pricing.ErrConfiguration) {
			uc.logger.Error("Checkout: fee schedule misconfigured: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		uc.logger.Error("Checkout: failed to resolve pricing: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve pricing: %v", ErrInternal, err)
	}

	// 8.3. Намерение должно существовать и принадлежать этому покупателю
	intent, err := uc.intentRepo.GetByGatewayOrderID(ctx, req.GatewayOrderID)
	if err != nil {
		if errors.Is(err, intentRepository.ErrIntentNotFound) {
			uc.logger.Error("Checkout: SECURITY: no intent for order=%s, customer=%d",
				req.GatewayOrderID, req.CustomerID)
			return nil, ErrPaymentVerificationFailed
		}
		uc.logger.Error("Checkout: failed to get intent for order=%s: %v", req.GatewayOrderID, err)
		return nil, fmt.Errorf("%w: failed to get intent: %v", ErrInternal, err)
	}
	if intent.CustomerID != req.CustomerID || intent.SalonID != view.SalonID {
		uc.logger.Error("Checkout: SECURITY: intent order=%s (customer=%d, salon=%d) does not match request (customer=%d, salon=%d)",
			req.GatewayOrderID, intent.CustomerID, intent.SalonID, req.CustomerID, view.SalonID)
		return nil, ErrPaymentVerificationFailed
	}

	// 8.4. Оплаченная сумма обязана совпасть с пересчитанной с точностью
	// до пайсы - дрейф цены услуги посреди оплаты отклоняет checkout
	if intent.Amount.Shift(2).IntPart() != breakdown.OnlineAmountMinorUnits() {
		uc.logger.Warn("Checkout: price mismatch for order=%s: paid=%s, current=%s",
			req.GatewayOrderID, intent.Amount.StringFixed(2), breakdown.AmountPayableOnline.StringFixed(2))
		return nil, ErrPriceMismatch
	}

	// 8.5. Условный consume - защита от повторного использования платежа.
	// Конкурентный проигравший блокируется здесь на row lock и после
	// коммита победителя получает ErrAlreadyConsumed.
	if err := uc.intentRepo.Consume(ctx, req.GatewayOrderID); err != nil {
		if errors.Is(err, intentRepository.ErrAlreadyConsumed) {
			uc.logger.Warn("Checkout: intent for order=%s already consumed", req.GatewayOrderID)
			return nil, ErrIntentAlreadyConsumed
		}
		if errors.Is(err, intentRepository.ErrIntentNotFound) {
			uc.logger.Error("Checkout: SECURITY: intent for order=%s vanished before consume", req.GatewayOrderID)
			return nil, ErrPaymentVerificationFailed
		}
		uc.logger.Error("Checkout: failed to consume intent for order=%s: %v", req.GatewayOrderID, err)
		return nil, fmt.Errorf("%w: failed to consume intent: %v", ErrInternal, err)
	}

	// 8.6. Бронирование со снимком цен: последующие изменения тарифной
	// сетки не должны менять уже подтверждённое бронирование
	booking, err := uc.bookingRepo.Create(ctx, buildBooking(req, view, breakdown))
	if err != nil {
		uc.logger.Error("Checkout: failed to create booking for order=%s: %v", req.GatewayOrderID, err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	// 8.7. Неизменяемая платёжная запись 1:1 к бронированию
	_, err = uc.paymentRepo.Create(ctx, &domain.PaymentRecord{
		BookingID:        booking.ID,
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		GatewaySignature: req.GatewaySignature,
		Amount:           intent.Amount,
		Status:           domain.PaymentStatusSuccess,
		PaidAt:           now,
	})
	if err != nil {
		uc.logger.Error("Checkout: failed to create payment record for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to create payment record: %v", ErrInternal, err)
	}

	// 8.8. Очищаем корзину в той же транзакции: из двух конкурентных
	// checkout-ов по разным намерениям второй упадёт на пустой корзине
	if err := uc.cartRepo.ClearByCustomer(ctx, req.CustomerID); err != nil {
		uc.logger.Error("Checkout: failed to clear cart for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to clear cart: %v", ErrInternal, err)
	}

	return booking, nil
}

// maxAdvanceDays читает горизонт бронирования из конфигурации
func (uc *UseCase) maxAdvanceDays(ctx context.Context) (int, error) {
	raw, err := uc.configRepo.Get(ctx, domain.ConfigKeyMaxAdvanceDays)
	if err != nil {
		if errors.Is(err, feeconfig.ErrKeyNotFound) {
			return domain.DefaultMaxAdvanceDays, nil
		}
		uc.logger.Error("Checkout: failed to read config key %s: %v", domain.ConfigKeyMaxAdvanceDays, err)
		return 0, fmt.Errorf("%w: failed to read config: %v", ErrInternal, err)
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 {
		uc.logger.Error("Checkout: config key %s has invalid value %q", domain.ConfigKeyMaxAdvanceDays, raw)
		return 0, fmt.Errorf("%w: %s=%q is not a non-negative integer", ErrConfiguration, domain.ConfigKeyMaxAdvanceDays, raw)
	}

	return days, nil
}

// notify отправляет уведомление о подтверждённом бронировании
func (uc *UseCase) notify(ctx context.Context, booking *domain.Booking) {
	confirmation := &notifyservice.BookingConfirmation{
		BookingID:     booking.ID,
		BookingNumber: booking.BookingNumber,
		CustomerID:    booking.CustomerID,
		SalonID:       booking.SalonID,
		BookingDate:   booking.BookingDate.Format(domain.DateFormat),
	}
	if err := uc.notifier.SendBookingConfirmation(ctx, confirmation); err != nil {
		uc.logger.Warn("Checkout: failed to send confirmation for booking id=%d: %v", booking.ID, err)
	}
}

// buildBooking собирает доменную модель бронирования из снимка корзины
func buildBooking(req *Request, view *domain.CartView, breakdown *domain.PriceBreakdown) *domain.Booking {
	slots := make([]types.TimeString, 0, len(req.TimeSlots))
	for _, s := range req.TimeSlots {
		slot, _ := types.NewTimeStringFromString(s)
		slots = append(slots, slot)
	}

	items := make([]domain.BookingItem, 0, len(view.Lines))
	for _, line := range view.Lines {
		items = append(items, domain.BookingItem{
			ServiceID:   line.Item.ServiceID,
			ServiceName: line.ServiceName,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Item.Quantity,
		})
	}

	return &domain.Booking{
		BookingNumber:      newBookingNumber(),
		CustomerID:         req.CustomerID,
		SalonID:            view.SalonID,
		GatewayOrderID:     req.GatewayOrderID,
		BookingDate:        req.BookingDate,
		TimeSlots:          slots,
		Status:             domain.StatusConfirmed,
		ServicePrice:       breakdown.ServiceSubtotal,
		ConvenienceFee:     breakdown.ConvenienceFee,
		TaxAmount:          breakdown.Tax,
		TotalAmount:        breakdown.ServiceSubtotal.Add(breakdown.AmountPayableOnline),
		ConvenienceFeePaid: true,
		ServicePaid:        false,
		Items:              items,
		Notes:              req.Notes,
	}
}

// newBookingNumber генерирует человекочитаемый номер бронирования
func newBookingNumber() string {
	return "SB-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

// responseFromBooking строит ответ checkout из доменной модели
func responseFromBooking(b *domain.Booking) *Response {
	slots := make([]string, 0, len(b.TimeSlots))
	for _, s := range b.TimeSlots {
		slots = append(slots, s.String())
	}

	return &Response{
		Success:       true,
		BookingID:     b.ID,
		BookingNumber: b.BookingNumber,
		Status:        string(b.Status),
		BookingDate:   b.BookingDate.Format(domain.DateFormat),
		TimeSlots:     slots,
		Breakdown: Breakdown{
			ServicePrice:   b.ServicePrice.StringFixed(2),
			ConvenienceFee: b.ConvenienceFee.StringFixed(2),
			Tax:            b.TaxAmount.StringFixed(2),
			TotalAmount:    b.TotalAmount.StringFixed(2),
		},
	}
}
