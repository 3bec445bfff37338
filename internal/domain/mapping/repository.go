package mapping

import (
	"context"
	"time"
)

// ScopeRefs carries the scope identifiers of one employee for candidate
// lookup, keyed by scope level.
type ScopeRefs struct {
	EmployeeID    string
	DesignationID *string
	DepartmentID  *string
}

type MappingRepository interface {
	Create(ctx context.Context, m AttendanceMapping) (AttendanceMapping, error)
	GetByID(ctx context.Context, id string, companyID string) (AttendanceMapping, error)
	List(ctx context.Context, companyID string) ([]AttendanceMapping, error)
	Update(ctx context.Context, m AttendanceMapping) error
	Delete(ctx context.Context, id string, companyID string) error

	// ListCandidates returns every mapping effective on or before date whose
	// scope reference matches the employee, its designation or its
	// department.
	ListCandidates(ctx context.Context, companyID string, refs ScopeRefs, date time.Time) ([]AttendanceMapping, error)
}
