package employee

// Employee is the read-only projection of the identity/org service used for
// mapping resolution. The engine never writes employee records.
type Employee struct {
	ID            string
	CompanyID     string
	FullName      string
	DesignationID *string
	DepartmentID  *string
	ManagerID     *string
}
