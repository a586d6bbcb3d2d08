package toggle_slot

import (
	"github.com/m04kA/SMC-CourtSlotService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
	toggleSlot "github.com/m04kA/SMC-CourtSlotService/internal/usecase/toggle_slot"
	"github.com/m04kA/SMC-CourtSlotService/pkg/types"
)

// ToggleSlotRequest HTTP request model
type ToggleSlotRequest struct {
	Date string `json:"date"` // "2024-06-01"
	Time string `json:"time"` // "14:00"
}

// ToggleSlotResponse HTTP response model
type ToggleSlotResponse struct {
	SessionID  string                       `json:"sessionId"`
	CourtID    int64                        `json:"courtId"`
	Date       string                       `json:"date"`
	Changed    bool                         `json:"changed"`
	Candidates []handlers.CandidateResponse `json:"candidates"`
	Selected   []string                     `json:"selected"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ToggleSlotRequest) ToUseCaseRequest(sessionID string, courtID, userID int64) (*toggleSlot.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	t, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &toggleSlot.Request{
		SessionID: sessionID,
		CourtID:   courtID,
		Date:      date,
		Time:      t,
		UserID:    userID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *toggleSlot.Response) *ToggleSlotResponse {
	return &ToggleSlotResponse{
		SessionID:  resp.SessionID,
		CourtID:    resp.CourtID,
		Date:       resp.Date.Format(domain.DateFormat),
		Changed:    resp.Changed,
		Candidates: handlers.FromCandidates(resp.Candidates),
		Selected:   handlers.FromTimes(resp.Selected),
	}
}
