package update_cart_item

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/salonbook/SBP-CheckoutService/internal/api/handlers"
	"github.com/salonbook/SBP-CheckoutService/internal/api/middleware"
	"github.com/salonbook/SBP-CheckoutService/internal/service/cart"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidItemID      = "некорректный ID позиции корзины"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgItemNotFound       = "позиция корзины не найдена"
	msgInvalidQuantity    = "некорректное количество"
)

// UpdateCartItemRequest HTTP request model
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

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

// Handle PATCH /api/v1/cart/items/{itemId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /cart/items/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	itemID, err := strconv.ParseInt(mux.Vars(r)["itemId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /cart/items/{id} - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	var req UpdateCartItemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /cart/items/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.UpdateQuantity(r.Context(), customerID, itemID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, cart.ErrItemNotFound):
			h.logger.Warn("PATCH /cart/items/{id} - Item not found: customer_id=%d, item_id=%d", customerID, itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, cart.ErrInvalidInput):
			h.logger.Warn("PATCH /cart/items/{id} - Invalid quantity: customer_id=%d, quantity=%d", customerID, req.Quantity)
			handlers.RespondBadRequest(w, msgInvalidQuantity)

		default:
			h.logger.Error("PATCH /cart/items/{id} - Failed to update item: customer_id=%d, item_id=%d, error=%v",
				customerID, itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /cart/items/{id} - Item updated: customer_id=%d, item_id=%d, quantity=%d",
		customerID, itemID, req.Quantity)
	w.WriteHeader(http.StatusNoContent)
}
