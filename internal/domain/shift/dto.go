package shift

import (
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/validator"
)

type CreateShiftRequest struct {
	Name              string `json:"name"`
	Code              string `json:"code"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	IsNextDay         bool   `json:"is_next_day"`
	BreakDurationMins int    `json:"break_duration_mins"`
	GraceLateMins     *int   `json:"grace_late_mins"`
	GraceEarlyMins    *int   `json:"grace_early_mins"`
	ShiftType         string `json:"shift_type"`
	EffectiveFrom     string `json:"effective_from"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidClockTime(r.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time must be in HH:MM format"})
	}
	if !validator.IsValidClockTime(r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must be in HH:MM format"})
	}
	if r.BreakDurationMins < 0 {
		errs = append(errs, validator.ValidationError{Field: "break_duration_mins", Message: "break_duration_mins must not be negative"})
	}
	if !validator.IsInSlice(r.ShiftType, []string{string(ShiftTypeRegular), string(ShiftTypeRotational), string(ShiftTypeNight)}) {
		errs = append(errs, validator.ValidationError{Field: "shift_type", Message: "shift_type must be regular, rotational or night"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "effective_from must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateShiftRequest struct {
	ID                string  `json:"-"`
	Name              *string `json:"name"`
	StartTime         *string `json:"start_time"`
	EndTime           *string `json:"end_time"`
	IsNextDay         *bool   `json:"is_next_day"`
	BreakDurationMins *int    `json:"break_duration_mins"`
	GraceLateMins     *int    `json:"grace_late_mins"`
	GraceEarlyMins    *int    `json:"grace_early_mins"`
	ShiftType         *string `json:"shift_type"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartTime != nil && !validator.IsValidClockTime(*r.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time must be in HH:MM format"})
	}
	if r.EndTime != nil && !validator.IsValidClockTime(*r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must be in HH:MM format"})
	}
	if r.BreakDurationMins != nil && *r.BreakDurationMins < 0 {
		errs = append(errs, validator.ValidationError{Field: "break_duration_mins", Message: "break_duration_mins must not be negative"})
	}
	if r.ShiftType != nil && !validator.IsInSlice(*r.ShiftType, []string{string(ShiftTypeRegular), string(ShiftTypeRotational), string(ShiftTypeNight)}) {
		errs = append(errs, validator.ValidationError{Field: "shift_type", Message: "shift_type must be regular, rotational or night"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateWeeklyOffPatternRequest struct {
	Name         string `json:"name"`
	PatternType  string `json:"pattern_type"`
	DaysOff      []int  `json:"days_off"`
	WeeksOfMonth []int  `json:"weeks_of_month"`
}

func (r *CreateWeeklyOffPatternRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsInSlice(r.PatternType, []string{string(PatternTypeFixed), string(PatternTypeAlternate), string(PatternTypeRotational)}) {
		errs = append(errs, validator.ValidationError{Field: "pattern_type", Message: "pattern_type must be fixed, alternate or rotational"})
	}
	if len(r.DaysOff) == 0 {
		errs = append(errs, validator.ValidationError{Field: "days_off", Message: "at least one day off is required"})
	}
	for _, d := range r.DaysOff {
		if d < 0 || d > 6 {
			errs = append(errs, validator.ValidationError{Field: "days_off", Message: "days_off values must be between 0 (Sunday) and 6 (Saturday)"})
			break
		}
	}
	if r.PatternType == string(PatternTypeAlternate) && len(r.WeeksOfMonth) == 0 {
		errs = append(errs, validator.ValidationError{Field: "weeks_of_month", Message: "weeks_of_month is required for alternate patterns"})
	}
	for _, w := range r.WeeksOfMonth {
		if w < 1 || w > 5 {
			errs = append(errs, validator.ValidationError{Field: "weeks_of_month", Message: "weeks_of_month values must be between 1 and 5"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateWeeklyOffPatternRequest struct {
	ID           string  `json:"-"`
	Name         *string `json:"name"`
	DaysOff      []int   `json:"days_off"`
	WeeksOfMonth []int   `json:"weeks_of_month"`
}

func (r *UpdateWeeklyOffPatternRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
	}
	for _, d := range r.DaysOff {
		if d < 0 || d > 6 {
			errs = append(errs, validator.ValidationError{Field: "days_off", Message: "days_off values must be between 0 (Sunday) and 6 (Saturday)"})
			break
		}
	}
	for _, w := range r.WeeksOfMonth {
		if w < 1 || w > 5 {
			errs = append(errs, validator.ValidationError{Field: "weeks_of_month", Message: "weeks_of_month values must be between 1 and 5"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Code              string `json:"code"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	IsNextDay         bool   `json:"is_next_day"`
	BreakDurationMins int    `json:"break_duration_mins"`
	GraceLateMins     *int   `json:"grace_late_mins,omitempty"`
	GraceEarlyMins    *int   `json:"grace_early_mins,omitempty"`
	ShiftType         string `json:"shift_type"`
	EffectiveFrom     string `json:"effective_from"`
}

type WeeklyOffPatternResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PatternType  string `json:"pattern_type"`
	DaysOff      []int  `json:"days_off"`
	WeeksOfMonth []int  `json:"weeks_of_month,omitempty"`
}
