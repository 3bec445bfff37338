package period

import "context"

// PeriodService owns finalisation: batch recomputation of a date range and
// the one-way lock that gates payroll export.
type PeriodService interface {
	// Process re-runs the daily aggregation for every attendance row in the
	// range and marks rows processed. Idempotent and safely re-entrant:
	// retrying after a partial failure never corrupts already-processed
	// rows.
	Process(ctx context.Context, req RangeRequest) (ProcessResult, error)

	// Lock freezes every row in the range and records a period closure.
	// One-way; there is no unlock operation.
	Lock(ctx context.Context, req RangeRequest) (LockResult, error)

	ListClosures(ctx context.Context) ([]ClosureResponse, error)
}
