package attendance

import (
	"context"
	"time"
)

// AttendanceService derives and serves daily attendance rows.
type AttendanceService interface {
	// ComputeEmployeeDay re-derives one employee-day from the punch ledger
	// and the resolved mapping, then upserts the row. Pure recomputation:
	// calling it twice with the same ledger state yields the same row.
	ComputeEmployeeDay(ctx context.Context, companyID string, employeeID string, date time.Time) (DailyAttendance, error)

	// ProcessEmployeeDay is the finalisation variant of ComputeEmployeeDay:
	// same recomputation, but the stored row is marked processed.
	ProcessEmployeeDay(ctx context.Context, companyID string, employeeID string, date time.Time) (DailyAttendance, error)

	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) (ListAttendanceResponse, error)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// ManualEdit lets an admin correct a row. Refused on locked rows and
	// dates inside a closed period.
	ManualEdit(ctx context.Context, req ManualEditRequest) (AttendanceResponse, error)

	// RecomputeDay is the handler-facing wrapper over ComputeEmployeeDay.
	RecomputeDay(ctx context.Context, req ComputeDayRequest) (AttendanceResponse, error)
}
