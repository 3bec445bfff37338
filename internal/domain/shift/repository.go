package shift

import "context"

// ShiftRepository defines data access for shift masters. All methods take a
// companyID to keep queries tenant-scoped.
type ShiftRepository interface {
	Create(ctx context.Context, s Shift) (Shift, error)
	GetByID(ctx context.Context, id string, companyID string) (Shift, error)
	List(ctx context.Context, companyID string) ([]Shift, error)
	Update(ctx context.Context, s Shift) error
	Delete(ctx context.Context, id string, companyID string) error

	// IsReferencedByLockedAttendance reports whether any locked daily
	// attendance row points at the shift.
	IsReferencedByLockedAttendance(ctx context.Context, id string, companyID string) (bool, error)
}

type WeeklyOffPatternRepository interface {
	Create(ctx context.Context, p WeeklyOffPattern) (WeeklyOffPattern, error)
	GetByID(ctx context.Context, id string, companyID string) (WeeklyOffPattern, error)
	List(ctx context.Context, companyID string) ([]WeeklyOffPattern, error)
	Update(ctx context.Context, p WeeklyOffPattern) error
	Delete(ctx context.Context, id string, companyID string) error
}
