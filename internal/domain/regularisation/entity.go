package regularisation

import "time"

type RequestType string

const (
	TypeMissedPunch RequestType = "missed_punch"
	TypeWrongTime   RequestType = "wrong_time"
	TypeMarkPresent RequestType = "mark_present"
	TypeWFH         RequestType = "wfh"
	TypeOnDuty      RequestType = "on_duty"
	TypeShiftChange RequestType = "shift_change"
	TypeHalfDay     RequestType = "half_day"
)

type Status string

const (
	StatusDraft          Status = "draft"
	StatusPendingManager Status = "pending_manager"
	StatusPendingHR      Status = "pending_hr"
	StatusApproved       Status = "approved"
	StatusRejected       Status = "rejected"
)

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// transitions is the complete linear state machine. A request can never move
// backward and never reaches a terminal state from draft directly.
var transitions = map[Status][]Status{
	StatusDraft:          {StatusPendingManager},
	StatusPendingManager: {StatusPendingHR, StatusRejected},
	StatusPendingHR:      {StatusApproved, StatusRejected},
}

// CanTransition reports whether from -> to is a legal move.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// RegularisationRequest is an employee-initiated correction to a day's
// attendance, routed through manager then HR approval.
type RegularisationRequest struct {
	ID              string
	CompanyID       string
	EmployeeID      string
	AttendanceDate  time.Time
	RequestType     RequestType
	ProposedFirstIn *time.Time
	ProposedLastOut *time.Time
	ProposedShiftID *string
	Reason          string
	Status          Status

	ManagerActionBy *string
	ManagerActionAt *time.Time
	ManagerComments *string

	HRActionBy *string
	HRActionAt *time.Time
	HRRemarks  *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}
