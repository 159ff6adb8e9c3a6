package clear_cart

import (
	"net/http"

	"github.com/salonbook/SBP-CheckoutService/internal/api/handlers"
	"github.com/salonbook/SBP-CheckoutService/internal/api/middleware"
)

const msgMissingUserID = "отсутствует ID пользователя"

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

// Handle DELETE /api/v1/cart
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /cart - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Clear(r.Context(), customerID); err != nil {
		h.logger.Error("DELETE /cart - Failed to clear cart: customer_id=%d, error=%v", customerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /cart - Cart cleared: customer_id=%d", customerID)
	w.WriteHeader(http.StatusNoContent)
}
