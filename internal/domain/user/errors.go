package user

import "errors"

var (
	ErrAdminAccessRequired   = errors.New("admin access required")
	ErrManagerAccessRequired = errors.New("manager access required")
	ErrHRAccessRequired      = errors.New("hr access required")
)
