package policy

import (
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/validator"
)

type CreatePolicyRequest struct {
	Name                 string           `json:"name"`
	FullDayMins          int              `json:"full_day_mins"`
	HalfDayMins          int              `json:"half_day_mins"`
	GraceLateMins        int              `json:"grace_late_mins"`
	MaxLateMarksPerMonth int              `json:"max_late_marks_per_month"`
	Overtime             OvertimeSettings `json:"overtime"`
	Exceptions           ExceptionRules   `json:"exceptions"`
	EffectiveFrom        string           `json:"effective_from"`
}

func (r *CreatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if r.FullDayMins <= 0 {
		errs = append(errs, validator.ValidationError{Field: "full_day_mins", Message: "full_day_mins must be positive"})
	}
	if r.HalfDayMins <= 0 || r.HalfDayMins > r.FullDayMins {
		errs = append(errs, validator.ValidationError{Field: "half_day_mins", Message: "half_day_mins must be positive and not exceed full_day_mins"})
	}
	if r.GraceLateMins < 0 {
		errs = append(errs, validator.ValidationError{Field: "grace_late_mins", Message: "grace_late_mins must not be negative"})
	}
	if r.Overtime.MinOTMinsPerDay < 0 || r.Overtime.MaxOTMinsPerDay < 0 {
		errs = append(errs, validator.ValidationError{Field: "overtime", Message: "overtime minute thresholds must not be negative"})
	}
	if r.Overtime.MaxOTMinsPerDay > 0 && r.Overtime.MinOTMinsPerDay > r.Overtime.MaxOTMinsPerDay {
		errs = append(errs, validator.ValidationError{Field: "overtime", Message: "min_ot_mins_per_day must not exceed max_ot_mins_per_day"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "effective_from must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePolicyRequest struct {
	ID                   string            `json:"-"`
	Name                 *string           `json:"name"`
	FullDayMins          *int              `json:"full_day_mins"`
	HalfDayMins          *int              `json:"half_day_mins"`
	GraceLateMins        *int              `json:"grace_late_mins"`
	MaxLateMarksPerMonth *int              `json:"max_late_marks_per_month"`
	Overtime             *OvertimeSettings `json:"overtime"`
	Exceptions           *ExceptionRules   `json:"exceptions"`
}

func (r *UpdatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullDayMins != nil && *r.FullDayMins <= 0 {
		errs = append(errs, validator.ValidationError{Field: "full_day_mins", Message: "full_day_mins must be positive"})
	}
	if r.HalfDayMins != nil && *r.HalfDayMins <= 0 {
		errs = append(errs, validator.ValidationError{Field: "half_day_mins", Message: "half_day_mins must be positive"})
	}
	if r.GraceLateMins != nil && *r.GraceLateMins < 0 {
		errs = append(errs, validator.ValidationError{Field: "grace_late_mins", Message: "grace_late_mins must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PolicyResponse struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	FullDayMins          int              `json:"full_day_mins"`
	HalfDayMins          int              `json:"half_day_mins"`
	GraceLateMins        int              `json:"grace_late_mins"`
	MaxLateMarksPerMonth int              `json:"max_late_marks_per_month"`
	Overtime             OvertimeSettings `json:"overtime"`
	Exceptions           ExceptionRules   `json:"exceptions"`
	EffectiveFrom        string           `json:"effective_from"`
}
