package patient

import (
	"time"

	"github.com/caredomi/homecare-backend-go/internal/pkg/validator"
)

type CreatePatientRequest struct {
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	CNSNumber   string   `json:"cns_number,omitempty"`
	BirthDate   string   `json:"birth_date,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	Email       *string  `json:"email,omitempty"`
	AddressLine string   `json:"address_line"`
	PostalCode  string   `json:"postal_code"`
	City        string   `json:"city"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

func (r *CreatePatientRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name is required",
		})
	}
	if !validator.IsEmpty(r.CNSNumber) && !validator.IsValidCNSPlanNumber(r.CNSNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "cns_number",
			Message: "cns_number must be 13 digits",
		})
	}
	if !validator.IsEmpty(r.BirthDate) {
		if _, ok := validator.IsValidDate(r.BirthDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "birth_date",
				Message: "birth_date must be a valid date in YYYY-MM-DD format",
			})
		}
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if validator.IsEmpty(r.AddressLine) {
		errs = append(errs, validator.ValidationError{
			Field:   "address_line",
			Message: "address_line is required",
		})
	}
	if validator.IsEmpty(r.City) {
		errs = append(errs, validator.ValidationError{
			Field:   "city",
			Message: "city is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdatePatientRequest struct {
	ID string `json:"-"`
	CreatePatientRequest
}

func (r *UpdatePatientRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if err := r.CreatePatientRequest.Validate(); err != nil {
		if inner, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, inner...)
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PatientResponse struct {
	ID          string     `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	CNSNumber   *string    `json:"cns_number,omitempty"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	Email       *string    `json:"email,omitempty"`
	AddressLine string     `json:"address_line"`
	PostalCode  string     `json:"postal_code"`
	City        string     `json:"city"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ListPatientsResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
