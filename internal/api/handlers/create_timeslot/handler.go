package create_timeslot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtSlotService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtSlotService/internal/service/timeslots"
	"github.com/m04kA/SMC-CourtSlotService/internal/service/timeslots/models"
)

const (
	msgInvalidCourtID     = "некорректный ID корта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные слота"
	msgConflict           = "слот на это время уже существует"
	msgUpstream           = "сервис доступности временно недоступен"
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

// Handle POST /api/v1/courts/{courtId}/timeslots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := handlers.PathInt64(r, "courtId")
	if err != nil {
		h.logger.Warn("POST /courts/{id}/timeslots - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	var req models.CreateTimeSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /courts/{id}/timeslots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), courtID, &req)
	if err != nil {
		switch {
		case errors.Is(err, timeslots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, timeslots.ErrSlotConflict):
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, timeslots.ErrUpstream):
			h.logger.Error("POST /courts/{id}/timeslots - Upstream error: court_id=%d, error=%v", courtID, err)
			handlers.RespondBadGateway(w, msgUpstream)

		default:
			h.logger.Error("POST /courts/{id}/timeslots - Failed to create: court_id=%d, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}
