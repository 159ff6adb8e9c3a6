package update_fee_schedule

import (
	"errors"
	"net/http"

	"github.com/salonbook/SBP-CheckoutService/internal/api/handlers"
	"github.com/salonbook/SBP-CheckoutService/internal/service/feeschedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidValue       = "некорректное значение тарифной сетки"
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

// Handle PUT /api/v1/fees
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req feeschedule.UpdateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /fees - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	schedule, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, feeschedule.ErrInvalidValue), errors.Is(err, feeschedule.ErrUnknownKey):
			h.logger.Warn("PUT /fees - Invalid value: %v", err)
			handlers.RespondBadRequest(w, msgInvalidValue)

		default:
			h.logger.Error("PUT /fees - Failed to update fee schedule: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /fees - Fee schedule updated: fee=%s%%, gst=%s%%, max_advance_days=%d",
		schedule.BookingFeePercentage, schedule.GSTPercentage, schedule.MaxAdvanceBookingDays)
	handlers.RespondJSON(w, http.StatusOK, schedule)
}
