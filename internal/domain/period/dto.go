package period

import (
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/validator"
)

type RangeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *RangeRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ProcessResult reports partial outcomes per row, not just a boolean.
type ProcessResult struct {
	TotalRows int `json:"total_rows"`
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"` // locked rows
	Failed    int `json:"failed"`
}

// LockResult distinguishes an empty range from a successful lock so callers
// never mistake a no-op for applied work.
type LockResult struct {
	TotalRows     int64 `json:"total_rows"`
	NewlyLocked   int64 `json:"newly_locked"`
	AlreadyLocked int64 `json:"already_locked"`
}

type ClosureResponse struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	ClosedBy  string `json:"closed_by"`
	ClosedAt  string `json:"closed_at"`
}
