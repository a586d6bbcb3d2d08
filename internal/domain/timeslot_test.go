package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CourtSlotService/pkg/types"
)

func TestTimeSlot_Contains(t *testing.T) {
	s := &TimeSlot{StartTime: "10:00", EndTime: "12:00", IsActive: true}

	tests := []struct {
		at   types.TimeString
		want bool
	}{
		{"09:59", false},
		{"10:00", true},
		{"11:00", true},
		{"11:59", true},
		{"12:00", false},
		{"garbage", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, s.Contains(tt.at), "at %s", tt.at)
	}
}

func TestTimeSlot_Contains_Midnight(t *testing.T) {
	endOfDay := &TimeSlot{StartTime: "22:00:00", EndTime: "24:00:00", IsActive: true}
	wrapped := &TimeSlot{StartTime: "22:00:00", EndTime: "00:00:00", IsActive: true}

	for _, s := range []*TimeSlot{endOfDay, wrapped} {
		assert.True(t, s.Contains("22:00"), "%s-%s", s.StartTime, s.EndTime)
		assert.True(t, s.Contains("23:59"), "%s-%s", s.StartTime, s.EndTime)
		assert.False(t, s.Contains("21:59"), "%s-%s", s.StartTime, s.EndTime)
	}
}

func TestTimeSlot_BlocksSelection(t *testing.T) {
	active := &TimeSlot{StartTime: "10:00", EndTime: "11:00", IsActive: true}
	inactive := &TimeSlot{StartTime: "10:00", EndTime: "11:00", IsActive: false}

	assert.True(t, active.BlocksSelection("10:00"))
	assert.False(t, inactive.BlocksSelection("10:00"))
}

func TestSelection(t *testing.T) {
	s := NewSelection("15:00", "09:00:00", "09:00", "bad")

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []types.TimeString{"09:00", "15:00"}, s.Times())
	assert.True(t, s.Contains("09:00:00"))

	s.Remove("15:00")
	assert.Equal(t, 1, s.Len())

	s.Clear()
	assert.True(t, s.IsEmpty())
}

func TestSelection_Bind(t *testing.T) {
	s := NewSelection("10:00")
	assert.Equal(t, int64(0), s.Owner())

	assert.True(t, s.Bind(0), "anonymous use keeps selection anonymous")
	assert.Equal(t, int64(0), s.Owner())

	assert.True(t, s.Bind(42))
	assert.Equal(t, int64(42), s.Owner())

	assert.True(t, s.Bind(42))
	assert.False(t, s.Bind(43), "bound selection rejects another user")
	assert.False(t, s.Bind(0), "bound selection rejects anonymous use")
	assert.Equal(t, int64(42), s.Owner())

	s.Clear()
	assert.Equal(t, int64(42), s.Owner(), "clearing keeps the owner")
}

func TestCandidate_State(t *testing.T) {
	rate := 100.0

	assert.Equal(t, "unavailable", (&TimeSlotCandidate{IsBooked: true}).State())
	assert.Equal(t, "unavailable", (&TimeSlotCandidate{Rate: &rate}).State())
	assert.Equal(t, "selected", (&TimeSlotCandidate{IsSelected: true}).State())
	assert.Equal(t, "available", (&TimeSlotCandidate{}).State())
}
