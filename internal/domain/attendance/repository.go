package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for daily attendance rows. All
// methods take a companyID to keep queries tenant-scoped.
//
// Update and Upsert must refuse to touch locked rows at the SQL level; the
// lock invariant does not rely on callers remembering to check.
type AttendanceRepository interface {
	Upsert(ctx context.Context, att DailyAttendance) (DailyAttendance, error)
	Update(ctx context.Context, att DailyAttendance) error
	GetByID(ctx context.Context, id string, companyID string) (DailyAttendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*DailyAttendance, error)
	List(ctx context.Context, filter AttendanceFilter, companyID string) ([]DailyAttendance, int64, error)
	GetMyAttendance(ctx context.Context, employeeID string, filter MyAttendanceFilter, companyID string) ([]DailyAttendance, int64, error)

	// ListRange returns every row in [start, end] for the company.
	ListRange(ctx context.Context, companyID string, start, end time.Time) ([]DailyAttendance, error)

	// LockRange sets is_locked on unlocked rows in [start, end] and returns
	// (newly locked, total rows in range). Locking an already-locked row is
	// a no-op, not an error.
	LockRange(ctx context.Context, companyID string, start, end time.Time) (locked int64, total int64, err error)

	// CountLateMarksInMonth counts late working days for the employee in
	// the month containing date, excluding date itself. The exclusion keeps
	// the monthly late-mark cap stable when the same day is recomputed.
	CountLateMarksInMonth(ctx context.Context, employeeID string, date time.Time, companyID string) (int, error)
}
