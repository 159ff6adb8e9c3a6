package add_cart_item

import (
	"errors"
	"net/http"

	"github.com/salonbook/SBP-CheckoutService/internal/api/handlers"
	"github.com/salonbook/SBP-CheckoutService/internal/api/middleware"
	"github.com/salonbook/SBP-CheckoutService/internal/service/cart"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgCrossSalonConflict = "в корзине уже есть услуги другого салона"
	msgSalonNotAccepting  = "салон сейчас не принимает бронирования"
	msgSalonNotFound      = "салон не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidQuantity    = "некорректное количество"
)

type Handler struct {
	service CartService
	logger  Logger
}

func NewHandler(service CartService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/cart/items
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /cart/items - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AddCartItemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /cart/items - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	item, err := h.service.Add(r.Context(), customerID, req.ServiceID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrCrossSalonConflict):
			h.logger.Warn("POST /cart/items - Cross salon conflict: customer_id=%d, service_id=%d", customerID, req.ServiceID)
			handlers.RespondError(w, http.StatusConflict, msgCrossSalonConflict)

		case errors.Is(err, cart.ErrSalonNotAccepting):
			h.logger.Warn("POST /cart/items - Salon not accepting: customer_id=%d, service_id=%d", customerID, req.ServiceID)
			handlers.RespondError(w, http.StatusConflict, msgSalonNotAccepting)

		case errors.Is(err, cart.ErrSalonNotFound):
			h.logger.Warn("POST /cart/items - Salon not found: customer_id=%d, service_id=%d", customerID, req.ServiceID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, cart.ErrServiceNotFound):
			h.logger.Warn("POST /cart/items - Service not found: customer_id=%d, service_id=%d", customerID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, cart.ErrInvalidInput):
			h.logger.Warn("POST /cart/items - Invalid input: customer_id=%d, quantity=%d", customerID, req.Quantity)
			handlers.RespondBadRequest(w, msgInvalidQuantity)

		default:
			h.logger.Error("POST /cart/items - Failed to add item: customer_id=%d, error=%v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /cart/items - Item added: customer_id=%d, item_id=%d, quantity=%d",
		customerID, item.ID, item.Quantity)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainItem(item))
}
