package remove_cart_item

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
	msgInvalidItemID = "некорректный ID позиции корзины"
	msgMissingUserID = "отсутствует ID пользователя"
	msgItemNotFound  = "позиция корзины не найдена"
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

// Handle DELETE /api/v1/cart/items/{itemId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /cart/items/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	itemID, err := strconv.ParseInt(mux.Vars(r)["itemId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /cart/items/{id} - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	if err := h.service.Remove(r.Context(), customerID, itemID); err != nil {
		switch {
		case errors.Is(err, cart.ErrItemNotFound):
			h.logger.Warn("DELETE /cart/items/{id} - Item not found: customer_id=%d, item_id=%d", customerID, itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		default:
			h.logger.Error("DELETE /cart/items/{id} - Failed to remove item: customer_id=%d, item_id=%d, error=%v",
				customerID, itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /cart/items/{id} - Item removed: customer_id=%d, item_id=%d", customerID, itemID)
	w.WriteHeader(http.StatusNoContent)
}
