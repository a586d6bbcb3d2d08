package book_timeslot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtSlotService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtSlotService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtSlotService/internal/service/timeslots"
	"github.com/m04kA/SMC-CourtSlotService/internal/service/timeslots/models"
)

const (
	msgInvalidCourtID     = "некорректный ID корта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные данные слота"
	msgForbidden          = "нельзя бронировать за другого пользователя или назначать цену"
	msgConflict           = "слот уже занят"
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

// Handle POST /api/v1/courts/{courtId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := handlers.PathInt64(r, "courtId")
	if err != nil {
		h.logger.Warn("POST /courts/{id}/bookings - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /courts/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role, _ := middleware.GetUserRole(r.Context())

	var req models.BookTimeSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /courts/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Book(r.Context(), courtID, userID, role, &req)
	if err != nil {
		switch {
		case errors.Is(err, timeslots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, timeslots.ErrAccessDenied):
			h.logger.Warn("POST /courts/{id}/bookings - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, timeslots.ErrSlotConflict):
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, timeslots.ErrUpstream):
			h.logger.Error("POST /courts/{id}/bookings - Upstream error: court_id=%d, error=%v", courtID, err)
			handlers.RespondBadGateway(w, msgUpstream)

		default:
			h.logger.Error("POST /courts/{id}/bookings - Failed to book: court_id=%d, user_id=%d, error=%v", courtID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /courts/{id}/bookings - Slot booked: slot_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
