package create_payment_intent

import (
	"errors"
	"net/http"

	"github.com/salonbook/SBP-CheckoutService/internal/api/handlers"
	"github.com/salonbook/SBP-CheckoutService/internal/api/middleware"
	createPaymentIntent "github.com/salonbook/SBP-CheckoutService/internal/usecase/create_payment_intent"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgEmptyCart          = "корзина пуста"
	msgSalonInactive      = "салон недоступен для бронирования"
	msgSalonNotAccepting  = "салон сейчас не принимает бронирования"
	msgGatewayUnavailable = "платёжный шлюз временно недоступен, попробуйте позже"
)

type Handler struct {
	useCase CreatePaymentIntentUseCase
	logger  Logger
}

func NewHandler(useCase CreatePaymentIntentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/checkout/intent
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /checkout/intent - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &createPaymentIntent.Request{CustomerID: customerID})
	if err != nil {
		switch {
		case errors.Is(err, createPaymentIntent.ErrEmptyCart):
			h.logger.Warn("POST /checkout/intent - Empty cart: customer_id=%d", customerID)
			handlers.RespondBadRequest(w, msgEmptyCart)

		case errors.Is(err, createPaymentIntent.ErrSalonInactive):
			h.logger.Warn("POST /checkout/intent - Salon inactive: customer_id=%d", customerID)
			handlers.RespondError(w, http.StatusConflict, msgSalonInactive)

		case errors.Is(err, createPaymentIntent.ErrSalonNotAccepting):
			h.logger.Warn("POST /checkout/intent - Salon not accepting: customer_id=%d", customerID)
			handlers.RespondError(w, http.StatusConflict, msgSalonNotAccepting)

		case errors.Is(err, createPaymentIntent.ErrGatewayUnavailable):
			h.logger.Error("POST /checkout/intent - Gateway unavailable: customer_id=%d, error=%v", customerID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgGatewayUnavailable)

		case errors.Is(err, createPaymentIntent.ErrConfiguration):
			h.logger.Error("POST /checkout/intent - Fee schedule misconfigured: %v", err)
			handlers.RespondInternalError(w)

		default:
			h.logger.Error("POST /checkout/intent - Failed to create intent: customer_id=%d, error=%v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /checkout/intent - Intent created: customer_id=%d, intent_id=%d, order=%s",
		customerID, result.IntentID, result.GatewayOrderID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
