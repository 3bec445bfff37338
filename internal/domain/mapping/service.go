package mapping

import (
	"context"
	"time"
)

// Resolver answers "which policy, shift and weekly-off pattern govern this
// employee on this date". Resolution never fails on absence of a mapping;
// downstream aggregation treats a fully-nil assignment as an unscheduled
// day.
type Resolver interface {
	Resolve(ctx context.Context, employeeID string, companyID string, date time.Time) (ResolvedAssignment, error)
}

// MappingService is the admin-facing CRUD surface over mappings plus the
// resolver contract.
type MappingService interface {
	Resolver

	CreateMapping(ctx context.Context, req CreateMappingRequest) (MappingResponse, error)
	GetMapping(ctx context.Context, id string) (MappingResponse, error)
	ListMappings(ctx context.Context) ([]MappingResponse, error)
	UpdateMapping(ctx context.Context, req UpdateMappingRequest) (MappingResponse, error)
	DeleteMapping(ctx context.Context, id string) error
	ResolveForDate(ctx context.Context, employeeID string, date string) (ResolveResponse, error)
}
