package get_cart

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

// Handle GET /api/v1/cart
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /cart - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	view, err := h.service.Snapshot(r.Context(), customerID)
	if err != nil {
		h.logger.Error("GET /cart - Failed to snapshot cart: customer_id=%d, error=%v", customerID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainView(view))
}
