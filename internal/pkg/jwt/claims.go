package jwt

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/smbgAlokk/BharatForce-sub002/internal/domain/user"
)

// Identity is the caller identity carried in the access token claims.
type Identity struct {
	UserID     string
	EmployeeID string
	CompanyID  string
	Role       user.Role
}

// IdentityFromContext extracts the verified claims placed in the request
// context by the jwtauth verifier.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return Identity{}, fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return Identity{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	userID, _ := claims["user_id"].(string)
	roleStr, _ := claims["role"].(string)

	return Identity{
		UserID:     userID,
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Role:       user.Role(roleStr),
	}, nil
}
