package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-CourtSlotService/pkg/types"
)

// Selection is the set of candidate times a user has chosen in the current session.
// Keyed by time, so duplicates are impossible.
type Selection struct {
	times map[types.TimeString]struct{}
	owner int64
}

// NewSelection creates a selection with the given times
func NewSelection(times ...types.TimeString) *Selection {
	s := &Selection{times: make(map[types.TimeString]struct{}, len(times))}
	for _, t := range times {
		if t.Validate() != nil {
			continue
		}
		s.times[normalize(t)] = struct{}{}
	}
	return s
}

// Toggle adds or removes the candidate's time.
// Unavailable candidates (booked or rate-annotated) are never touched.
// Returns true if the selection changed.
func (s *Selection) Toggle(c TimeSlotCandidate) bool {
	if c.IsUnavailable() {
		return false
	}
	key := normalize(c.Time)
	if _, ok := s.times[key]; ok {
		delete(s.times, key)
	} else {
		s.times[key] = struct{}{}
	}
	return true
}

// Owner returns the user the selection is bound to, 0 while it is anonymous
func (s *Selection) Owner() int64 {
	return s.owner
}

// Bind ties an anonymous selection to userID on its first authenticated use.
// Returns false if the selection already belongs to another user.
// A zero userID only passes for anonymous selections.
func (s *Selection) Bind(userID int64) bool {
	if s.owner != 0 && s.owner != userID {
		return false
	}
	if userID > 0 {
		s.owner = userID
	}
	return true
}

// Contains returns true if t is selected
func (s *Selection) Contains(t types.TimeString) bool {
	_, ok := s.times[normalize(t)]
	return ok
}

// Remove drops t from the selection
func (s *Selection) Remove(t types.TimeString) {
	delete(s.times, normalize(t))
}

// Clear empties the selection
func (s *Selection) Clear() {
	s.times = make(map[types.TimeString]struct{})
}

// Len returns the number of selected times
func (s *Selection) Len() int {
	return len(s.times)
}

// IsEmpty returns true if nothing is selected
func (s *Selection) IsEmpty() bool {
	return len(s.times) == 0
}

// Times returns the selected times in chronological order
func (s *Selection) Times() []types.TimeString {
	result := make([]types.TimeString, 0, len(s.times))
	for t := range s.times {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].IsBefore(result[j])
	})
	return result
}

// normalize brings "09:00:00" and "09:00" to the same key
func normalize(t types.TimeString) types.TimeString {
	n, err := types.NewTimeStringFromString(t.String())
	if err != nil {
		return t
	}
	return n
}

// SelectionKey identifies a selection: one per session, court and day.
// Changing the court or the date starts a fresh selection.
type SelectionKey struct {
	SessionID string
	CourtID   int64
	Date      time.Time
}

// String returns a stable storage key
func (k SelectionKey) String() string {
	return fmt.Sprintf("%s:%d:%s", k.SessionID, k.CourtID, k.Date.Format(DateFormat))
}
