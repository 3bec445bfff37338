package user

// Role is the access level carried in the JWT "role" claim.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleHR       Role = "hr"
	RoleAdmin    Role = "admin"
)

// CanApproveAsManager reports whether the role may act on the manager stage
// of a regularisation request.
func (r Role) CanApproveAsManager() bool {
	return r == RoleManager || r == RoleHR || r == RoleAdmin
}

// CanApproveAsHR reports whether the role may act on the HR stage.
func (r Role) CanApproveAsHR() bool {
	return r == RoleHR || r == RoleAdmin
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
