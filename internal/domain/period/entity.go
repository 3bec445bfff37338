package period

import "time"

// PeriodClosure freezes a date range for a company. A date inside any
// closure range is closed: no edits, no new regularisation requests.
type PeriodClosure struct {
	ID        string
	CompanyID string
	StartDate time.Time
	EndDate   time.Time
	ClosedBy  string
	ClosedAt  time.Time
}

// Contains reports whether the date falls inside the closure range,
// inclusive on both ends.
func (c PeriodClosure) Contains(date time.Time) bool {
	return !date.Before(c.StartDate) && !date.After(c.EndDate)
}
