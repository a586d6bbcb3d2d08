package get_slot_grid

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtSlotService/internal/api/handlers"
	getSlotGrid "github.com/m04kA/SMC-CourtSlotService/internal/usecase/get_slot_grid"
)

const (
	msgInvalidCourtID = "некорректный ID корта"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgFetchFailure   = "не удалось загрузить занятые слоты, попробуйте позже"
	msgInvalidInput   = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetSlotGridUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotGridUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/courts/{courtId}/slot-grid?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := handlers.PathInt64(r, "courtId")
	if err != nil {
		h.logger.Warn("GET /courts/{id}/slot-grid - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	date, err := handlers.QueryDate(r)
	if err != nil {
		h.logger.Warn("GET /courts/{id}/slot-grid - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSlotGrid.Request{
		SessionID: handlers.SessionID(r),
		CourtID:   courtID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSlotGrid.ErrFetchFailure):
			h.logger.Error("GET /courts/{id}/slot-grid - Fetch failure: court_id=%d, error=%v", courtID, err)
			handlers.RespondBadGateway(w, msgFetchFailure)

		case errors.Is(err, getSlotGrid.ErrInvalidInput):
			h.logger.Warn("GET /courts/{id}/slot-grid - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /courts/{id}/slot-grid - Failed to build grid: court_id=%d, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.Header().Set(handlers.SessionHeader, result.SessionID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
