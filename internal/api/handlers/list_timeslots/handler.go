package list_timeslots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtSlotService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtSlotService/internal/service/timeslots"
)

const (
	msgInvalidCourtID = "некорректный ID корта"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgUpstream       = "сервис доступности временно недоступен"
)

type Handler struct {
	service TimeSlotService
	logger  Logger
}

func NewHandler(service TimeSlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/courts/{courtId}/timeslots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := handlers.PathInt64(r, "courtId")
	if err != nil {
		h.logger.Warn("GET /courts/{id}/timeslots - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	date, err := handlers.QueryDate(r)
	if err != nil {
		h.logger.Warn("GET /courts/{id}/timeslots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.List(r.Context(), courtID, date)
	if err != nil {
		switch {
		case errors.Is(err, timeslots.ErrUpstream):
			h.logger.Error("GET /courts/{id}/timeslots - Upstream error: court_id=%d, error=%v", courtID, err)
			handlers.RespondBadGateway(w, msgUpstream)

		default:
			h.logger.Error("GET /courts/{id}/timeslots - Failed to list: court_id=%d, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
