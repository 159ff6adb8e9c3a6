package get_fee_schedule

import (
	"net/http"

	"github.com/salonbook/SBP-CheckoutService/internal/api/handlers"
)

type Handler struct {
	service FeeScheduleService
	logger  Logger
}

func NewHandler(service FeeScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/fees
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /fees - Failed to get fee schedule: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, schedule)
}
