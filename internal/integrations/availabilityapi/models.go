package availabilityapi

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
	"github.com/m04kA/SMC-CourtSlotService/pkg/types"
)

// TimeSlot модель слота в API
type TimeSlot struct {
	ID        int64    `json:"id"`
	CourtID   int64    `json:"courtId"`
	Date      string   `json:"date"`      // "2024-06-01"
	StartTime string   `json:"startTime"` // "09:00:00" или "09:00"
	EndTime   string   `json:"endTime"`
	Rate      *float64 `json:"rate,omitempty"`
	IsActive  bool     `json:"isActive"`
	BookedBy  *int64   `json:"bookedBy,omitempty"`
}

// TimeSlotList ответ со списком слотов
type TimeSlotList struct {
	TimeSlots []TimeSlot `json:"timeSlots"`
}

// CreateTimeSlotRequest тело запроса на создание слота
type CreateTimeSlotRequest struct {
	Date      string   `json:"date"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Rate      *float64 `json:"rate,omitempty"`
}

// BookTimeSlotRequest тело запроса на бронирование слота
type BookTimeSlotRequest struct {
	UserID    int64    `json:"userId"`
	Date      string   `json:"date"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Rate      *float64 `json:"rate,omitempty"`
}

// UpdateTimeSlotRequest тело запроса на частичное обновление слота
type UpdateTimeSlotRequest struct {
	StartTime *string  `json:"startTime,omitempty"`
	EndTime   *string  `json:"endTime,omitempty"`
	Rate      *float64 `json:"rate,omitempty"`
	IsActive  *bool    `json:"isActive,omitempty"`
}

// ErrorResponse модель ошибки от API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain конвертирует слот API в доменную модель
func (s *TimeSlot) ToDomain() (*domain.TimeSlot, error) {
	start, err := types.NewTimeStringFromString(s.StartTime)
	if err != nil {
		return nil, fmt.Errorf("slot id=%d: startTime: %w", s.ID, err)
	}
	end, err := types.NewTimeStringFromString(s.EndTime)
	if err != nil {
		return nil, fmt.Errorf("slot id=%d: endTime: %w", s.ID, err)
	}

	var date time.Time
	if s.Date != "" {
		date, err = time.Parse(domain.DateFormat, s.Date)
		if err != nil {
			return nil, fmt.Errorf("slot id=%d: date: %w", s.ID, err)
		}
	}

	return &domain.TimeSlot{
		ID:        s.ID,
		CourtID:   s.CourtID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Rate:      s.Rate,
		IsActive:  s.IsActive,
		BookedBy:  s.BookedBy,
	}, nil
}

// FromDomain конвертирует доменный слот в модель API
func FromDomain(s *domain.TimeSlot) TimeSlot {
	return TimeSlot{
		ID:        s.ID,
		CourtID:   s.CourtID,
		Date:      s.Date.Format(domain.DateFormat),
		StartTime: s.StartTime.String(),
		EndTime:   s.EndTime.String(),
		Rate:      s.Rate,
		IsActive:  s.IsActive,
		BookedBy:  s.BookedBy,
	}
}

// ToUpdateRequest конвертирует доменный патч в тело запроса
func ToUpdateRequest(patch domain.TimeSlotPatch) UpdateTimeSlotRequest {
	req := UpdateTimeSlotRequest{
		Rate:     patch.Rate,
		IsActive: patch.IsActive,
	}
	if patch.StartTime != nil {
		s := patch.StartTime.String()
		req.StartTime = &s
	}
	if patch.EndTime != nil {
		s := patch.EndTime.String()
		req.EndTime = &s
	}
	return req
}
