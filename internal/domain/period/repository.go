package period

import (
	"context"
	"time"
)

type ClosureRepository interface {
	Create(ctx context.Context, c PeriodClosure) (PeriodClosure, error)
	List(ctx context.Context, companyID string) ([]PeriodClosure, error)

	// IsClosed reports whether any closure range contains the date.
	IsClosed(ctx context.Context, companyID string, date time.Time) (bool, error)
}
