package attendance

import (
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/validator"
)

type AttendanceFilter struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
	Status     *string
	Page       int
	Limit      int
}

type MyAttendanceFilter struct {
	StartDate *string
	EndDate   *string
	Page      int
	Limit     int
}

type AttendanceResponse struct {
	ID               string   `json:"id"`
	EmployeeID       string   `json:"employee_id"`
	EmployeeName     *string  `json:"employee_name,omitempty"`
	Date             string   `json:"date"`
	ShiftID          *string  `json:"shift_id,omitempty"`
	FirstIn          *string  `json:"first_in,omitempty"`
	LastOut          *string  `json:"last_out,omitempty"`
	TotalWorkMins    int      `json:"total_work_mins"`
	DayType          string   `json:"day_type"`
	Status           string   `json:"status"`
	IsLate           bool     `json:"is_late"`
	LateMins         int      `json:"late_mins"`
	OTMins           int      `json:"ot_mins"`
	ExceptionTags    []string `json:"exception_tags"`
	ProcessingStatus string   `json:"processing_status"`
	IsLocked         bool     `json:"is_locked"`
	Source           string   `json:"source"`
}

// ListAttendanceResponse pairs a page of rows with the totals the handler
// folds into the response meta.
type ListAttendanceResponse struct {
	TotalCount  int64
	Page        int
	Limit       int
	Attendances []AttendanceResponse
}

// ManualEditRequest is the admin correction path. It targets a row by ID and
// is refused on locked rows and closed periods.
type ManualEditRequest struct {
	ID       string  `json:"-"`
	FirstIn  *string `json:"first_in"`
	LastOut  *string `json:"last_out"`
	ShiftID  *string `json:"shift_id"`
	Status   *string `json:"status"`
	Reason   string  `json:"reason"`
}

func (r *ManualEditRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}
	if r.FirstIn != nil {
		if _, ok := validator.IsValidDateTime(*r.FirstIn); !ok {
			errs = append(errs, validator.ValidationError{Field: "first_in", Message: "first_in must be an ISO8601 datetime"})
		}
	}
	if r.LastOut != nil {
		if _, ok := validator.IsValidDateTime(*r.LastOut); !ok {
			errs = append(errs, validator.ValidationError{Field: "last_out", Message: "last_out must be an ISO8601 datetime"})
		}
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{
		string(StatusPresent), string(StatusAbsent), string(StatusHalfDay),
		string(StatusLeave), string(StatusHoliday), string(StatusWeeklyOff),
	}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "invalid status value"})
	}
	if r.FirstIn == nil && r.LastOut == nil && r.ShiftID == nil && r.Status == nil {
		errs = append(errs, validator.ValidationError{Field: "first_in", Message: "at least one field to edit is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ComputeDayRequest triggers a single employee-day recomputation.
type ComputeDayRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
}

func (r *ComputeDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
