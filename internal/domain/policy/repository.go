package policy

import "context"

type PolicyRepository interface {
	Create(ctx context.Context, p AttendancePolicy) (AttendancePolicy, error)
	GetByID(ctx context.Context, id string, companyID string) (AttendancePolicy, error)
	List(ctx context.Context, companyID string) ([]AttendancePolicy, error)
	Update(ctx context.Context, p AttendancePolicy) error
	Delete(ctx context.Context, id string, companyID string) error
}
