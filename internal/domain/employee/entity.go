package employee

import "time"

// Employee is a member of the field staff who drives tours.
type Employee struct {
	ID            string
	UserID        *string // nil until the employee has a login
	FirstName     string
	LastName      string
	Qualification string // nurse, care assistant, ...
	Phone         *string
	Email         *string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}
