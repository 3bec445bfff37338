package regularisation

import (
	"context"
	"time"
)

type RegularisationRepository interface {
	Create(ctx context.Context, req RegularisationRequest) (RegularisationRequest, error)
	GetByID(ctx context.Context, id string, companyID string) (RegularisationRequest, error)
	Update(ctx context.Context, req RegularisationRequest) error
	ListByEmployee(ctx context.Context, employeeID string, companyID string, filter ListFilter) ([]RegularisationRequest, int64, error)
	ListByStatus(ctx context.Context, companyID string, status Status, filter ListFilter) ([]RegularisationRequest, int64, error)

	// HasActiveForDate reports whether a non-terminal request already
	// exists for the employee-day.
	HasActiveForDate(ctx context.Context, employeeID string, date time.Time, companyID string) (bool, error)
}
