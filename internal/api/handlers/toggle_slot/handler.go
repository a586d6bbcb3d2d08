package toggle_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtSlotService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtSlotService/internal/api/middleware"
	toggleSlot "github.com/m04kA/SMC-CourtSlotService/internal/usecase/toggle_slot"
)

const (
	msgInvalidCourtID       = "некорректный ID корта"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingSession       = "отсутствует заголовок X-Session-ID"
	msgInvalidDateOrTime    = "некорректная дата (YYYY-MM-DD) или время (HH:MM)"
	msgCandidateNotFound    = "такого времени нет в сетке"
	msgSubmissionInProgress = "выбор отправляется, дождитесь завершения"
	msgFetchFailure         = "не удалось загрузить занятые слоты, попробуйте позже"
	msgNotSelectionOwner    = "выбор принадлежит другому пользователю"
)

type Handler struct {
	useCase ToggleSlotUseCase
	logger  Logger
}

func NewHandler(useCase ToggleSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/courts/{courtId}/slot-grid/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := handlers.PathInt64(r, "courtId")
	if err != nil {
		h.logger.Warn("POST /courts/{id}/slot-grid/toggle - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	sessionID := handlers.SessionID(r)
	if sessionID == "" {
		h.logger.Warn("POST /courts/{id}/slot-grid/toggle - Missing session ID")
		handlers.RespondBadRequest(w, msgMissingSession)
		return
	}

	var req ToggleSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /courts/{id}/slot-grid/toggle - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Пользователь есть в контексте, только если gateway передал X-User-ID (OptionalAuth)
	userID, _ := middleware.GetUserID(r.Context())

	useCaseReq, err := req.ToUseCaseRequest(sessionID, courtID, userID)
	if err != nil {
		h.logger.Warn("POST /courts/{id}/slot-grid/toggle - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, toggleSlot.ErrCandidateNotFound):
			h.logger.Warn("POST /courts/{id}/slot-grid/toggle - Time not on grid: court_id=%d, time=%s", courtID, req.Time)
			handlers.RespondNotFound(w, msgCandidateNotFound)

		case errors.Is(err, toggleSlot.ErrNotSelectionOwner):
			h.logger.Warn("POST /courts/{id}/slot-grid/toggle - Selection of another user: session=%s, user_id=%d", sessionID, userID)
			handlers.RespondForbidden(w, msgNotSelectionOwner)

		case errors.Is(err, toggleSlot.ErrSubmissionInProgress):
			h.logger.Warn("POST /courts/{id}/slot-grid/toggle - Submission in progress: session=%s", sessionID)
			handlers.RespondConflict(w, msgSubmissionInProgress)

		case errors.Is(err, toggleSlot.ErrFetchFailure):
			h.logger.Error("POST /courts/{id}/slot-grid/toggle - Fetch failure: court_id=%d, error=%v", courtID, err)
			handlers.RespondBadGateway(w, msgFetchFailure)

		case errors.Is(err, toggleSlot.ErrInvalidInput):
			h.logger.Warn("POST /courts/{id}/slot-grid/toggle - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDateOrTime)

		default:
			h.logger.Error("POST /courts/{id}/slot-grid/toggle - Failed to toggle: court_id=%d, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
