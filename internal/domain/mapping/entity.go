package mapping

import (
	"time"

	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/policy"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/shift"
)

// Scope is the assignment level of an attendance mapping. Narrower scopes
// win: an employee-level mapping overrides designation, which overrides
// department.
type Scope string

const (
	ScopeEmployee    Scope = "employee"
	ScopeDesignation Scope = "designation"
	ScopeDepartment  Scope = "department"
)

// Priority ranks scopes for resolution; lower wins.
func (s Scope) Priority() int {
	switch s {
	case ScopeEmployee:
		return 0
	case ScopeDesignation:
		return 1
	case ScopeDepartment:
		return 2
	default:
		return 3
	}
}

// AttendanceMapping assigns a {policy, shift, weekly-off pattern} triple to
// a scope reference from an effective date onward.
type AttendanceMapping struct {
	ID                 string
	CompanyID          string
	Scope              Scope
	ScopeRefID         string
	PolicyID           *string
	ShiftID            *string
	WeeklyOffPatternID *string
	EffectiveFrom      time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ResolvedAssignment is the outcome of mapping resolution for one
// employee-day. All fields are nil when no mapping applies; an unscheduled
// day is a valid state, not an error.
type ResolvedAssignment struct {
	Mapping   *AttendanceMapping
	Policy    *policy.AttendancePolicy
	Shift     *shift.Shift
	WeeklyOff *shift.WeeklyOffPattern
}
