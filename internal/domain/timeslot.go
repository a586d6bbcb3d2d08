package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtSlotService/pkg/types"
)

// TimeSlot represents a persisted time-slot record of a court (an existing reservation).
// The interval is half-open: [StartTime, EndTime).
type TimeSlot struct {
	ID        int64
	CourtID   int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Rate      *float64 // price override, nil if not set
	IsActive  bool     // inactive records do not block selection
	BookedBy  *int64   // user who booked the slot, nil for owner-published slots

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains returns true if t falls inside the slot.
// The end is excluded by checking against one minute before EndTime.
// An end of 00:00 after a later start means midnight, same as 24:00.
func (s *TimeSlot) Contains(t types.TimeString) bool {
	start, end, at := s.StartTime.Minutes(), s.EndTime.Minutes(), t.Minutes()
	if start < 0 || end < 0 || at < 0 {
		return false
	}
	if end == 0 && start > 0 {
		end = types.EndOfDay.Minutes()
	}
	return at >= start && at <= end-1
}

// BlocksSelection returns true if the slot is active and contains t
func (s *TimeSlot) BlocksSelection(t types.TimeString) bool {
	return s.IsActive && s.Contains(t)
}

// StartsAt returns true if the slot starts exactly at t
func (s *TimeSlot) StartsAt(t types.TimeString) bool {
	return s.StartTime.Equal(t)
}

// HasRate returns true if the slot carries a price override
func (s *TimeSlot) HasRate() bool {
	return s.Rate != nil
}

// NewTimeSlot is a single slot-creation request: [StartTime, EndTime) with an optional rate
type NewTimeSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Rate      *float64
}

// TimeSlotPatch partial update of a time-slot record; nil fields are left unchanged
type TimeSlotPatch struct {
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Rate      *float64
	IsActive  *bool
}

// IsEmpty returns true if the patch changes nothing
func (p *TimeSlotPatch) IsEmpty() bool {
	return p.StartTime == nil && p.EndTime == nil && p.Rate == nil && p.IsActive == nil
}
