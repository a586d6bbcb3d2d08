package clear_selection

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtSlotService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtSlotService/internal/api/middleware"
	clearSelection "github.com/m04kA/SMC-CourtSlotService/internal/usecase/clear_selection"
)

const (
	msgInvalidCourtID       = "некорректный ID корта"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingSession       = "отсутствует заголовок X-Session-ID"
	msgSubmissionInProgress = "выбор отправляется, дождитесь завершения"
	msgNotSelectionOwner    = "выбор принадлежит другому пользователю"
)

type Handler struct {
	useCase ClearSelectionUseCase
	logger  Logger
}

func NewHandler(useCase ClearSelectionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/courts/{courtId}/slot-grid/selection?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := handlers.PathInt64(r, "courtId")
	if err != nil {
		h.logger.Warn("DELETE /courts/{id}/slot-grid/selection - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	date, err := handlers.QueryDate(r)
	if err != nil {
		h.logger.Warn("DELETE /courts/{id}/slot-grid/selection - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	sessionID := handlers.SessionID(r)
	if sessionID == "" {
		handlers.RespondBadRequest(w, msgMissingSession)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	err = h.useCase.Execute(r.Context(), &clearSelection.Request{
		SessionID: sessionID,
		CourtID:   courtID,
		Date:      date,
		UserID:    userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, clearSelection.ErrNotSelectionOwner):
			h.logger.Warn("DELETE /courts/{id}/slot-grid/selection - Selection of another user: session=%s, user_id=%d", sessionID, userID)
			handlers.RespondForbidden(w, msgNotSelectionOwner)

		case errors.Is(err, clearSelection.ErrSubmissionInProgress):
			h.logger.Warn("DELETE /courts/{id}/slot-grid/selection - Submission in progress: session=%s", sessionID)
			handlers.RespondConflict(w, msgSubmissionInProgress)

		default:
			h.logger.Error("DELETE /courts/{id}/slot-grid/selection - Failed to clear: court_id=%d, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
