package submit_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtSlotService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtSlotService/internal/api/middleware"
	submitSlots "github.com/m04kA/SMC-CourtSlotService/internal/usecase/submit_slots"
)

const (
	msgInvalidCourtID       = "некорректный ID корта"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingSession       = "отсутствует заголовок X-Session-ID"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput         = "некорректные параметры отправки"
	msgNoSelection          = "не выбрано ни одного слота"
	msgForbidden            = "создавать слоты может только владелец площадки"
	msgNotSelectionOwner    = "выбор принадлежит другому пользователю"
	msgSubmissionInProgress = "выбор уже отправляется"
	msgSubmissionFailure    = "не удалось добавить временные слоты"
)

type Handler struct {
	useCase SubmitSlotsUseCase
	logger  Logger
}

func NewHandler(useCase SubmitSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/courts/{courtId}/slot-grid/submit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := handlers.PathInt64(r, "courtId")
	if err != nil {
		h.logger.Warn("POST /courts/{id}/slot-grid/submit - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	// Получаем пользователя из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /courts/{id}/slot-grid/submit - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role, _ := middleware.GetUserRole(r.Context())

	sessionID := handlers.SessionID(r)
	if sessionID == "" {
		h.logger.Warn("POST /courts/{id}/slot-grid/submit - Missing session ID: user_id=%d", userID)
		handlers.RespondBadRequest(w, msgMissingSession)
		return
	}

	var req SubmitSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /courts/{id}/slot-grid/submit - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(sessionID, courtID, userID, role)
	if err != nil {
		h.logger.Warn("POST /courts/{id}/slot-grid/submit - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, submitSlots.ErrSubmissionFailure) && result != nil:
			h.logger.Error("POST /courts/{id}/slot-grid/submit - Submission failed: court_id=%d, user_id=%d, failed=%d/%d",
				courtID, userID, result.Failed, len(result.Results))
			handlers.RespondJSON(w, http.StatusBadGateway, FromFailure(msgSubmissionFailure, result))

		case errors.Is(err, submitSlots.ErrNoSelection):
			h.logger.Warn("POST /courts/{id}/slot-grid/submit - Empty selection: session=%s", sessionID)
			handlers.RespondBadRequest(w, msgNoSelection)

		case errors.Is(err, submitSlots.ErrForbidden):
			h.logger.Warn("POST /courts/{id}/slot-grid/submit - Forbidden: user_id=%d, role=%s", userID, role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, submitSlots.ErrNotSelectionOwner):
			h.logger.Warn("POST /courts/{id}/slot-grid/submit - Selection of another user: session=%s, user_id=%d", sessionID, userID)
			handlers.RespondForbidden(w, msgNotSelectionOwner)

		case errors.Is(err, submitSlots.ErrSubmissionInProgress):
			h.logger.Warn("POST /courts/{id}/slot-grid/submit - Already submitting: session=%s", sessionID)
			handlers.RespondConflict(w, msgSubmissionInProgress)

		case errors.Is(err, submitSlots.ErrInvalidInput):
			h.logger.Warn("POST /courts/{id}/slot-grid/submit - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /courts/{id}/slot-grid/submit - Failed to submit: court_id=%d, user_id=%d, error=%v",
				courtID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /courts/{id}/slot-grid/submit - Submitted %d slots: court_id=%d, user_id=%d",
		result.Succeeded, courtID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
