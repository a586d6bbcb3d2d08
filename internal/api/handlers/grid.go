package handlers

import (
	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
	"github.com/m04kA/SMC-CourtSlotService/pkg/types"
)

// CandidateResponse HTTP модель кандидата сетки
type CandidateResponse struct {
	Time        string   `json:"time"`        // "14:00"
	DisplayTime string   `json:"displayTime"` // "2:00 PM"
	IsBooked    bool     `json:"isBooked"`
	IsSelected  bool     `json:"isSelected"`
	Rate        *float64 `json:"rate,omitempty"`
	State       string   `json:"state"` // available, selected, unavailable
}

// FromCandidates конвертирует сетку в HTTP модель
func FromCandidates(grid []domain.TimeSlotCandidate) []CandidateResponse {
	result := make([]CandidateResponse, 0, len(grid))
	for i := range grid {
		c := &grid[i]
		result = append(result, CandidateResponse{
			Time:        c.Time.String(),
			DisplayTime: c.DisplayTime,
			IsBooked:    c.IsBooked,
			IsSelected:  c.IsSelected,
			Rate:        c.Rate,
			State:       c.State(),
		})
	}
	return result
}

// FromTimes конвертирует список времен в строки
func FromTimes(times []types.TimeString) []string {
	result := make([]string, 0, len(times))
	for _, t := range times {
		result = append(result, t.String())
	}
	return result
}
