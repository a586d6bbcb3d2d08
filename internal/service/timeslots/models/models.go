package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtSlotService/internal/domain"
	"github.com/m04kA/SMC-CourtSlotService/pkg/types"
)

var (
	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrInvalidTime возвращается при некорректном времени
	ErrInvalidTime = errors.New("invalid time, expected HH:MM")

	// ErrInvalidRange возвращается, когда конец слота не позже начала
	ErrInvalidRange = errors.New("endTime must be after startTime")

	// ErrNegativeRate возвращается при отрицательной цене
	ErrNegativeRate = errors.New("rate must not be negative")

	// ErrEmptyPatch возвращается, когда в запросе на обновление нет полей
	ErrEmptyPatch = errors.New("nothing to update")
)

// Request модели

// CreateTimeSlotRequest запрос на создание слота
type CreateTimeSlotRequest struct {
	Date      string   `json:"date"`      // "2024-06-01"
	StartTime string   `json:"startTime"` // "14:00"
	EndTime   string   `json:"endTime"`   // "15:00"
	Rate      *float64 `json:"rate,omitempty"`
}

// BookTimeSlotRequest запрос на бронирование слота
type BookTimeSlotRequest struct {
	UserID    int64    `json:"userId,omitempty"` // По умолчанию - текущий пользователь
	Date      string   `json:"date"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Rate      *float64 `json:"rate,omitempty"`
}

// UpdateTimeSlotRequest запрос на частичное обновление слота
type UpdateTimeSlotRequest struct {
	StartTime *string  `json:"startTime,omitempty"`
	EndTime   *string  `json:"endTime,omitempty"`
	Rate      *float64 `json:"rate,omitempty"`
	IsActive  *bool    `json:"isActive,omitempty"`
}

// ToDomain парсит дату и слот из запроса на создание
func (r *CreateTimeSlotRequest) ToDomain() (time.Time, domain.NewTimeSlot, error) {
	return parseNewSlot(r.Date, r.StartTime, r.EndTime, r.Rate)
}

// ToDomain парсит дату и слот из запроса на бронирование
func (r *BookTimeSlotRequest) ToDomain() (time.Time, domain.NewTimeSlot, error) {
	return parseNewSlot(r.Date, r.StartTime, r.EndTime, r.Rate)
}

// ToDomain конвертирует запрос в патч
func (r *UpdateTimeSlotRequest) ToDomain() (domain.TimeSlotPatch, error) {
	var patch domain.TimeSlotPatch

	if r.StartTime != nil {
		start, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil || start.IsEndOfDay() {
			return patch, fmt.Errorf("%w: startTime", ErrInvalidTime)
		}
		patch.StartTime = &start
	}

	if r.EndTime != nil {
		end, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return patch, fmt.Errorf("%w: endTime", ErrInvalidTime)
		}
		patch.EndTime = &end
	}

	if patch.StartTime != nil && patch.EndTime != nil && !patch.StartTime.IsBefore(*patch.EndTime) {
		return patch, ErrInvalidRange
	}

	if r.Rate != nil && *r.Rate < 0 {
		return patch, ErrNegativeRate
	}

	patch.Rate = r.Rate
	patch.IsActive = r.IsActive

	if patch.IsEmpty() {
		return patch, ErrEmptyPatch
	}

	return patch, nil
}

func parseNewSlot(dateStr, startStr, endStr string, rate *float64) (time.Time, domain.NewTimeSlot, error) {
	var slot domain.NewTimeSlot

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, slot, ErrInvalidDate
	}

	start, err := types.NewTimeStringFromString(startStr)
	if err != nil {
		return time.Time{}, slot, fmt.Errorf("%w: startTime", ErrInvalidTime)
	}

	end, err := types.NewTimeStringFromString(endStr)
	if err != nil {
		return time.Time{}, slot, fmt.Errorf("%w: endTime", ErrInvalidTime)
	}

	if !start.IsBefore(end) {
		return time.Time{}, slot, ErrInvalidRange
	}

	if rate != nil && *rate < 0 {
		return time.Time{}, slot, ErrNegativeRate
	}

	slot = domain.NewTimeSlot{
		StartTime: start,
		EndTime:   end,
		Rate:      rate,
	}

	return date, slot, nil
}

// Response модели

// TimeSlotResponse ответ с данными слота
type TimeSlotResponse struct {
	ID        int64    `json:"id"`
	CourtID   int64    `json:"courtId"`
	Date      string   `json:"date"`      // "2024-06-01"
	StartTime string   `json:"startTime"` // "14:00"
	EndTime   string   `json:"endTime"`   // "15:00"
	Rate      *float64 `json:"rate,omitempty"`
	IsActive  bool     `json:"isActive"`
	BookedBy  *int64   `json:"bookedBy,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

// TimeSlotListResponse ответ со списком слотов
type TimeSlotListResponse struct {
	TimeSlots []TimeSlotResponse `json:"timeSlots"`
}

// FromDomainTimeSlot конвертирует доменный слот в ответ
func FromDomainTimeSlot(s *domain.TimeSlot) *TimeSlotResponse {
	resp := &TimeSlotResponse{
		ID:        s.ID,
		CourtID:   s.CourtID,
		Date:      s.Date.Format(domain.DateFormat),
		StartTime: s.StartTime.String(),
		EndTime:   s.EndTime.String(),
		Rate:      s.Rate,
		IsActive:  s.IsActive,
		BookedBy:  s.BookedBy,
	}

	if !s.CreatedAt.IsZero() {
		resp.CreatedAt = s.CreatedAt.Format(time.RFC3339)
	}
	if !s.UpdatedAt.IsZero() {
		resp.UpdatedAt = s.UpdatedAt.Format(time.RFC3339)
	}

	return resp
}

// FromDomainTimeSlots конвертирует список доменных слотов в ответ
func FromDomainTimeSlots(slots []*domain.TimeSlot) *TimeSlotListResponse {
	resp := &TimeSlotListResponse{
		TimeSlots: make([]TimeSlotResponse, 0, len(slots)),
	}
	for _, s := range slots {
		resp.TimeSlots = append(resp.TimeSlots, *FromDomainTimeSlot(s))
	}
	return resp
}
