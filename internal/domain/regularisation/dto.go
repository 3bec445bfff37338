package regularisation

import (
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/validator"
)

type CreateRequest struct {
	AttendanceDate  string  `json:"attendance_date"`
	RequestType     string  `json:"request_type"`
	ProposedFirstIn *string `json:"proposed_first_in"`
	ProposedLastOut *string `json:"proposed_last_out"`
	ProposedShiftID *string `json:"proposed_shift_id"`
	Reason          string  `json:"reason"`
	// SubmitNow skips draft and enters the approval flow directly.
	SubmitNow bool `json:"submit_now"`
}

// typesRequiringTimes must carry proposed first-in/last-out; the remaining
// types default to the resolved shift window at approval time.
var typesRequiringTimes = []string{string(TypeMissedPunch), string(TypeWrongTime)}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.AttendanceDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "attendance_date", Message: "attendance_date must be in YYYY-MM-DD format"})
	}
	if !validator.IsInSlice(r.RequestType, []string{
		string(TypeMissedPunch), string(TypeWrongTime), string(TypeMarkPresent),
		string(TypeWFH), string(TypeOnDuty), string(TypeShiftChange), string(TypeHalfDay),
	}) {
		errs = append(errs, validator.ValidationError{Field: "request_type", Message: "invalid request_type"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}
	if validator.IsInSlice(r.RequestType, typesRequiringTimes) {
		if r.ProposedFirstIn == nil || r.ProposedLastOut == nil {
			errs = append(errs, validator.ValidationError{Field: "proposed_first_in", Message: "proposed first-in and last-out are required for this request type"})
		}
	}
	if r.ProposedFirstIn != nil {
		if _, ok := validator.IsValidDateTime(*r.ProposedFirstIn); !ok {
			errs = append(errs, validator.ValidationError{Field: "proposed_first_in", Message: "proposed_first_in must be an ISO8601 datetime"})
		}
	}
	if r.ProposedLastOut != nil {
		if _, ok := validator.IsValidDateTime(*r.ProposedLastOut); !ok {
			errs = append(errs, validator.ValidationError{Field: "proposed_last_out", Message: "proposed_last_out must be an ISO8601 datetime"})
		}
	}
	if r.RequestType == string(TypeShiftChange) && r.ProposedShiftID == nil {
		errs = append(errs, validator.ValidationError{Field: "proposed_shift_id", Message: "proposed_shift_id is required for shift change requests"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ManagerActionRequest struct {
	ID       string `json:"-"`
	Approve  bool   `json:"approve"`
	Comments string `json:"comments"`
}

func (r *ManagerActionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Approve && validator.IsEmpty(r.Comments) {
		errs = append(errs, validator.ValidationError{Field: "comments", Message: "comments are required when rejecting"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HRActionRequest struct {
	ID      string `json:"-"`
	Approve bool   `json:"approve"`
	Remarks string `json:"remarks"`
}

func (r *HRActionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Approve && validator.IsEmpty(r.Remarks) {
		errs = append(errs, validator.ValidationError{Field: "remarks", Message: "remarks are required when rejecting"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListFilter struct {
	StartDate *string
	EndDate   *string
	Status    *string
	Page      int
	Limit     int
}

type RequestResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	AttendanceDate  string  `json:"attendance_date"`
	RequestType     string  `json:"request_type"`
	ProposedFirstIn *string `json:"proposed_first_in,omitempty"`
	ProposedLastOut *string `json:"proposed_last_out,omitempty"`
	ProposedShiftID *string `json:"proposed_shift_id,omitempty"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	ManagerActionAt *string `json:"manager_action_at,omitempty"`
	ManagerComments *string `json:"manager_comments,omitempty"`
	HRActionAt      *string `json:"hr_action_at,omitempty"`
	HRRemarks       *string `json:"hr_remarks,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// ListResponse pairs a page of requests with the totals the handler folds
// into the response meta.
type ListResponse struct {
	TotalCount int64
	Page       int
	Limit      int
	Requests   []RequestResponse
}
