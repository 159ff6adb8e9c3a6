package checkout

import (
	"errors"
	"net/http"

	"github.com/salonbook/SBP-CheckoutService/internal/api/handlers"
	"github.com/salonbook/SBP-CheckoutService/internal/api/middleware"
	checkoutUC "github.com/salonbook/SBP-CheckoutService/internal/usecase/checkout"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgEmptyCart          = "корзина пуста"
	msgSalonInactive      = "салон недоступен для бронирования"
	msgInvalidTimeSlots   = "некорректные временные слоты"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgPriceMismatch      = "стоимость услуг изменилась, создайте оплату заново"

	// Обезличенное сообщение для провала проверки платежа и replay-атак.
	// Детали не раскрываются: оба случая - либо фрод, либо серьёзный баг
	// клиента, и внутренности верификации не должны утекать наружу.
	msgPaymentNotConfirmed = "платёж не подтверждён, обратитесь в поддержку"
)

type Handler struct {
	useCase CheckoutUseCase
	logger  Logger
}

func NewHandler(useCase CheckoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /checkout - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CheckoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /checkout - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /checkout - Failed to parse booking date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkoutUC.ErrEmptyCart):
			h.logger.Warn("POST /checkout - Empty cart: customer_id=%d", customerID)
			handlers.RespondBadRequest(w, msgEmptyCart)

		case errors.Is(err, checkoutUC.ErrSalonInactive):
			h.logger.Warn("POST /checkout - Salon inactive: customer_id=%d", customerID)
			handlers.RespondError(w, http.StatusConflict, msgSalonInactive)

		case errors.Is(err, checkoutUC.ErrInvalidTimeSlots):
			h.logger.Warn("POST /checkout - Invalid time slots: customer_id=%d, slots=%v", customerID, req.TimeSlots)
			handlers.RespondBadRequest(w, msgInvalidTimeSlots)

		case errors.Is(err, checkoutUC.ErrInvalidBookingDate):
			h.logger.Warn("POST /checkout - Invalid booking date: customer_id=%d, date=%s", customerID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, checkoutUC.ErrPriceMismatch):
			h.logger.Warn("POST /checkout - Price mismatch: customer_id=%d, order=%s", customerID, req.GatewayOrderID)
			handlers.RespondError(w, http.StatusConflict, msgPriceMismatch)

		case errors.Is(err, checkoutUC.ErrPaymentVerificationFailed),
			errors.Is(err, checkoutUC.ErrIntentAlreadyConsumed):
			// Подробности уже в логах usecase на уровне error/warn
			handlers.RespondPaymentRequired(w, msgPaymentNotConfirmed)

		case errors.Is(err, checkoutUC.ErrInvalidInput):
			h.logger.Warn("POST /checkout - Invalid input: customer_id=%d, error=%v", customerID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, checkoutUC.ErrConfiguration):
			h.logger.Error("POST /checkout - Fee schedule misconfigured: %v", err)
			handlers.RespondInternalError(w)

		default:
			h.logger.Error("POST /checkout - Failed to checkout: customer_id=%d, order=%s, error=%v",
				customerID, req.GatewayOrderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /checkout - Checkout completed: customer_id=%d, booking_id=%d, number=%s",
		customerID, result.BookingID, result.BookingNumber)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
