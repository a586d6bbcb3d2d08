package domain

import "github.com/m04kA/SMC-CourtSlotService/pkg/types"

// TimeSlotCandidate represents one fixed hourly position in the day's grid
type TimeSlotCandidate struct {
	Time        types.TimeString
	DisplayTime string
	IsBooked    bool
	IsSelected  bool
	Rate        *float64 // copied from an existing slot record starting at Time
}

// IsUnavailable returns true if the candidate can never be selected
func (c *TimeSlotCandidate) IsUnavailable() bool {
	return c.IsBooked || c.Rate != nil
}

// IsAvailable returns true if the candidate may be toggled
func (c *TimeSlotCandidate) IsAvailable() bool {
	return !c.IsUnavailable()
}

// State returns a short label for the candidate: unavailable, selected or available
func (c *TimeSlotCandidate) State() string {
	switch {
	case c.IsUnavailable():
		return "unavailable"
	case c.IsSelected:
		return "selected"
	default:
		return "available"
	}
}
