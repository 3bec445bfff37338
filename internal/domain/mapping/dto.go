package mapping

import (
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/validator"
)

type CreateMappingRequest struct {
	Scope              string  `json:"scope"`
	ScopeRefID         string  `json:"scope_ref_id"`
	PolicyID           *string `json:"policy_id"`
	ShiftID            *string `json:"shift_id"`
	WeeklyOffPatternID *string `json:"weekly_off_pattern_id"`
	EffectiveFrom      string  `json:"effective_from"`
}

func (r *CreateMappingRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Scope, []string{string(ScopeEmployee), string(ScopeDesignation), string(ScopeDepartment)}) {
		errs = append(errs, validator.ValidationError{Field: "scope", Message: "scope must be employee, designation or department"})
	}
	if validator.IsEmpty(r.ScopeRefID) {
		errs = append(errs, validator.ValidationError{Field: "scope_ref_id", Message: "scope_ref_id is required"})
	}
	if r.PolicyID == nil && r.ShiftID == nil && r.WeeklyOffPatternID == nil {
		errs = append(errs, validator.ValidationError{Field: "policy_id", Message: "at least one of policy_id, shift_id or weekly_off_pattern_id is required"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "effective_from must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateMappingRequest replaces the mapping's assignment triple. Scope and
// scope reference are immutable; reassigning a scope is a delete plus
// create.
type UpdateMappingRequest struct {
	ID                 string  `json:"-"`
	PolicyID           *string `json:"policy_id"`
	ShiftID            *string `json:"shift_id"`
	WeeklyOffPatternID *string `json:"weekly_off_pattern_id"`
	EffectiveFrom      string  `json:"effective_from"`
}

func (r *UpdateMappingRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PolicyID == nil && r.ShiftID == nil && r.WeeklyOffPatternID == nil {
		errs = append(errs, validator.ValidationError{Field: "policy_id", Message: "at least one of policy_id, shift_id or weekly_off_pattern_id is required"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "effective_from must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MappingResponse struct {
	ID                 string  `json:"id"`
	Scope              string  `json:"scope"`
	ScopeRefID         string  `json:"scope_ref_id"`
	PolicyID           *string `json:"policy_id,omitempty"`
	ShiftID            *string `json:"shift_id,omitempty"`
	WeeklyOffPatternID *string `json:"weekly_off_pattern_id,omitempty"`
	EffectiveFrom      string  `json:"effective_from"`
}

type ResolveResponse struct {
	EmployeeID         string  `json:"employee_id"`
	Date               string  `json:"date"`
	Scope              *string `json:"scope,omitempty"`
	PolicyID           *string `json:"policy_id,omitempty"`
	PolicyName         *string `json:"policy_name,omitempty"`
	ShiftID            *string `json:"shift_id,omitempty"`
	ShiftName          *string `json:"shift_name,omitempty"`
	WeeklyOffPatternID *string `json:"weekly_off_pattern_id,omitempty"`
	IsWeeklyOff        bool    `json:"is_weekly_off"`
}
