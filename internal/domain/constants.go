package domain

// Grid policy: one candidate per whole hour from GridStartHour to GridEndHour inclusive
const (
	GridStartHour       = 6
	GridEndHour         = 22
	GridStepMinutes     = 60
	SlotDurationMinutes = 60
)

// GridSize number of candidates in a generated grid
const GridSize = GridEndHour - GridStartHour + 1

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// SubmitMode what a batch submission does with the selected slots
type SubmitMode string

const (
	// SubmitModeCreate venue owner publishes new time-slot records
	SubmitModeCreate SubmitMode = "create"
	// SubmitModeBook user books the selected slots
	SubmitModeBook SubmitMode = "book"
)

// IsValid returns true for known submit modes
func (m SubmitMode) IsValid() bool {
	return m == SubmitModeCreate || m == SubmitModeBook
}

// RateMatchPolicy controls which reservations may attach a rate to a candidate
type RateMatchPolicy string

const (
	// RateMatchAny any reservation starting at the candidate's time attaches its rate,
	// regardless of IsActive
	RateMatchAny RateMatchPolicy = "any"
	// RateMatchActiveOnly only active reservations attach a rate, same filter as the booked check
	RateMatchActiveOnly RateMatchPolicy = "active_only"
)

// IsValid returns true for known policies
func (p RateMatchPolicy) IsValid() bool {
	return p == RateMatchAny || p == RateMatchActiveOnly
}

// User roles, as sent by the gateway in X-User-Role
const (
	RoleUser  = "user"
	RoleOwner = "owner"
	RoleAdmin = "admin"
)
