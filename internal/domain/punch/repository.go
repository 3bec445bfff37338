package punch

import (
	"context"
	"time"
)

// PunchRepository is append-only: there is no update or delete path.
type PunchRepository interface {
	Create(ctx context.Context, p Punch) (Punch, error)
	// ListForAttendanceDate returns punches whose reported date falls in
	// [date, date+1]; the extra day lets the aggregator attribute next-day
	// shift punches to the right attendance date.
	ListForAttendanceDate(ctx context.Context, employeeID string, date time.Time, companyID string) ([]Punch, error)
	ListByEmployeeRange(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]Punch, error)
	List(ctx context.Context, companyID string, filter PunchFilter) ([]Punch, error)
}

type GeoFenceRepository interface {
	Create(ctx context.Context, g GeoFenceLocation) (GeoFenceLocation, error)
	GetByID(ctx context.Context, id string, companyID string) (GeoFenceLocation, error)
	ListActive(ctx context.Context, companyID string) ([]GeoFenceLocation, error)
	List(ctx context.Context, companyID string) ([]GeoFenceLocation, error)
	Update(ctx context.Context, g GeoFenceLocation) error
	Delete(ctx context.Context, id string, companyID string) error
}
