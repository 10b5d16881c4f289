package prescription

import (
	"io"
	"time"

	"github.com/caredomi/homecare-backend-go/internal/pkg/validator"
)

type CreatePrescriptionRequest struct {
	PatientID      string  `json:"patient_id"`
	CarePlanID     *string `json:"care_plan_id,omitempty"`
	PrescriberName string  `json:"prescriber_name"`
	IssuedAt       string  `json:"issued_at"`
	ExpiresAt      string  `json:"expires_at,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

func (r *CreatePrescriptionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PatientID) {
		errs = append(errs, validator.ValidationError{
			Field:   "patient_id",
			Message: "patient_id is required",
		})
	}
	if validator.IsEmpty(r.PrescriberName) {
		errs = append(errs, validator.ValidationError{
			Field:   "prescriber_name",
			Message: "prescriber_name is required",
		})
	}
	if _, ok := validator.IsValidDate(r.IssuedAt); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "issued_at",
			Message: "issued_at must be a valid date in YYYY-MM-DD format",
		})
	}
	if !validator.IsEmpty(r.ExpiresAt) {
		if _, ok := validator.IsValidDate(r.ExpiresAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "expires_at",
				Message: "expires_at must be a valid date in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UploadDocumentRequest attaches one scanned document to a
// prescription.
type UploadDocumentRequest struct {
	PrescriptionID string
	Filename       string
	ContentType    string
	Size           int64
	File           io.Reader
}

type PrescriptionResponse struct {
	ID             string     `json:"id"`
	PatientID      string     `json:"patient_id"`
	CarePlanID     *string    `json:"care_plan_id,omitempty"`
	PrescriberName string     `json:"prescriber_name"`
	IssuedAt       time.Time  `json:"issued_at"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	DocumentURL    *string    `json:"document_url,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
