package get_slot_grid

import (
	"github.com/m04kA/SMC-CourtSlotService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
	getSlotGrid "github.com/m04kA/SMC-CourtSlotService/internal/usecase/get_slot_grid"
)

// SlotGridResponse HTTP response model
type SlotGridResponse struct {
	SessionID            string                       `json:"sessionId"`
	CourtID              int64                        `json:"courtId"`
	Date                 string                       `json:"date"`
	Candidates           []handlers.CandidateResponse `json:"candidates"`
	Selected             []string                     `json:"selected"`
	Dropped              []string                     `json:"dropped"`
	SubmissionInProgress bool                         `json:"submissionInProgress"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlotGrid.Response) *SlotGridResponse {
	return &SlotGridResponse{
		SessionID:            resp.SessionID,
		CourtID:              resp.CourtID,
		Date:                 resp.Date.Format(domain.DateFormat),
		Candidates:           handlers.FromCandidates(resp.Candidates),
		Selected:             handlers.FromTimes(resp.Selected),
		Dropped:              handlers.FromTimes(resp.Dropped),
		SubmissionInProgress: resp.SubmissionInProgress,
	}
}
