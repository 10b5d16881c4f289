package patient

import "time"

// Patient is a person receiving home care. Address coordinates feed the
// routing service's travel estimates.
type Patient struct {
	ID           string
	FirstName    string
	LastName     string
	CNSNumber    *string // national insurance member number, 13 digits
	BirthDate    *time.Time
	Phone        *string
	Email        *string
	AddressLine  string
	PostalCode   string
	City         string
	Latitude     *float64
	Longitude    *float64
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}
