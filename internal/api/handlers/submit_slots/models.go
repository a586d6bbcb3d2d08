package submit_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtSlotService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
	submitSlots "github.com/m04kA/SMC-CourtSlotService/internal/usecase/submit_slots"
)

const (
	statusCreated = "created"
	statusFailed  = "failed"
)

// Коды ошибок слота в ответе
const (
	errorConflict = "conflict"
	errorRejected = "rejected"
	errorTimeout  = "timeout"
	errorUpstream = "upstream"
)

// SubmitSlotsRequest HTTP request model
type SubmitSlotsRequest struct {
	Date string   `json:"date"` // "2024-06-01"
	Mode string   `json:"mode"` // "create" или "book"
	Rate *float64 `json:"rate,omitempty"`
}

// SlotResultResponse итог по одному слоту
type SlotResultResponse struct {
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Rate      *float64 `json:"rate,omitempty"`
	Status    string   `json:"status"` // created, failed
	SlotID    *int64   `json:"slotId,omitempty"`
	Error     string   `json:"error,omitempty"` // conflict, rejected, timeout, upstream
}

// SubmitSlotsResponse HTTP response model
type SubmitSlotsResponse struct {
	SessionID string               `json:"sessionId"`
	CourtID   int64                `json:"courtId"`
	Date      string               `json:"date"`
	Mode      string               `json:"mode"`
	Succeeded int                  `json:"succeeded"`
	Failed    int                  `json:"failed"`
	Results   []SlotResultResponse `json:"results"`
}

// SubmissionFailureResponse тело ответа при частичной или полной неудаче
type SubmissionFailureResponse struct {
	handlers.ErrorResponse
	SubmitSlotsResponse
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitSlotsRequest) ToUseCaseRequest(sessionID string, courtID, userID int64, role string) (*submitSlots.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	mode := domain.SubmitMode(r.Mode)
	if mode == "" {
		mode = domain.SubmitModeBook
	}

	return &submitSlots.Request{
		SessionID: sessionID,
		CourtID:   courtID,
		Date:      date,
		UserID:    userID,
		Role:      role,
		Mode:      mode,
		Rate:      r.Rate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitSlots.Response) *SubmitSlotsResponse {
	results := make([]SlotResultResponse, 0, len(resp.Results))
	for _, res := range resp.Results {
		item := SlotResultResponse{
			StartTime: res.StartTime.String(),
			EndTime:   res.EndTime.String(),
			Rate:      res.Rate,
			SlotID:    res.SlotID,
			Status:    statusCreated,
		}
		if !res.OK() {
			item.Status = statusFailed
			item.Error = slotErrorCode(res.Err)
		}
		results = append(results, item)
	}

	return &SubmitSlotsResponse{
		SessionID: resp.SessionID,
		CourtID:   resp.CourtID,
		Date:      resp.Date.Format(domain.DateFormat),
		Mode:      string(resp.Mode),
		Succeeded: resp.Succeeded,
		Failed:    resp.Failed,
		Results:   results,
	}
}

// slotErrorCode отдает клиенту стабильный код вместо текста ошибки
func slotErrorCode(err error) string {
	switch {
	case errors.Is(err, submitSlots.ErrSlotConflict):
		return errorConflict
	case errors.Is(err, submitSlots.ErrSlotRejected):
		return errorRejected
	case errors.Is(err, submitSlots.ErrSlotTimeout):
		return errorTimeout
	default:
		return errorUpstream
	}
}

// FromFailure формирует тело ответа для ErrSubmissionFailure
func FromFailure(message string, resp *submitSlots.Response) *SubmissionFailureResponse {
	return &SubmissionFailureResponse{
		ErrorResponse: handlers.ErrorResponse{
			Code:    http.StatusBadGateway,
			Message: message,
		},
		SubmitSlotsResponse: *FromUseCaseResponse(resp),
	}
}
