package user

import "time"

type Role string

const (
	RoleAdmin       Role = "admin"       // Back-office administrator - full access
	RoleCoordinator Role = "coordinator" // Plans tours and manages care plans
	RoleCaregiver   Role = "caregiver"   // Field staff, sees own tours only
)

type User struct {
	ID                  string
	Email               string
	PasswordHash        *string
	Role                Role
	OAuthProvider       *string
	OAuthProviderID     *string
	EmailVerified       bool
	PasswordResetToken  *string
	PasswordResetSentAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// DTO / Join
	EmployeeID *string
}

// IsAdmin checks if user is a back-office administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanPlanTours checks if user may manage tours and care plans
func (u *User) CanPlanTours() bool {
	return u.Role == RoleAdmin || u.Role == RoleCoordinator
}
