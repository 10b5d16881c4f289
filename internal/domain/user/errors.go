package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrInvalidEmailFormat      = errors.New("invalid email format")
	ErrInvalidPasswordLength   = errors.New("password must be at least 8 characters")
	ErrInvalidOAuthProvider    = errors.New("invalid oauth provider")
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrInvalidResetToken       = errors.New("invalid or expired password reset token")
	ErrAdminAccessRequired     = errors.New("admin access required")
	ErrPlannerAccessRequired   = errors.New("coordinator access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
