package employee

import "context"

// EmployeeRepository reads the org projection maintained by the identity
// service.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	ListByCompany(ctx context.Context, companyID string) ([]Employee, error)
	// ListCompanyIDs returns every company that has at least one employee.
	// Used by the nightly aggregation job to fan out per tenant.
	ListCompanyIDs(ctx context.Context) ([]string, error)
	// IsManagerOf reports whether managerID is the reporting manager of
	// employeeID. Used to scope manager-stage regularisation actions.
	IsManagerOf(ctx context.Context, managerID string, employeeID string, companyID string) (bool, error)
}
