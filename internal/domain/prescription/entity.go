package prescription

import "time"

// Prescription is a doctor's order backing a care plan's medications,
// usually with a scanned document attached.
type Prescription struct {
	ID             string
	PatientID      string
	CarePlanID     *string
	PrescriberName string
	IssuedAt       time.Time
	ExpiresAt      *time.Time
	DocumentPath   *string // object storage key of the scan
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}
