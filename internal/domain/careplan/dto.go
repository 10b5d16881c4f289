package careplan

import (
	"time"

	"github.com/caredomi/homecare-backend-go/internal/pkg/validator"
)

type OccurrenceRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type CarePlanItemRequest struct {
	ID                   string              `json:"id,omitempty"`
	PackageCode          string              `json:"package_code"`
	Label                string              `json:"label"`
	WeeklyPackageMinutes int                 `json:"weekly_package_minutes"`
	Quantity             float64             `json:"quantity"`
	Occurrences          []OccurrenceRequest `json:"occurrences"`
}

type CreateCarePlanRequest struct {
	PatientID     string                `json:"patient_id"`
	Status        string                `json:"status"`
	CNSPlanNumber string                `json:"cns_plan_number,omitempty"`
	CNSApprovedAt string                `json:"cns_approved_at,omitempty"`
	ValidFrom     string                `json:"valid_from,omitempty"`
	ValidUntil    string                `json:"valid_until,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	Items         []CarePlanItemRequest `json:"items"`
}

type UpdateCarePlanRequest struct {
	ID string `json:"-"`
	CreateCarePlanRequest
}

func (r *CarePlanItemRequest) validate(prefix string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PackageCode) {
		errs = append(errs, validator.ValidationError{
			Field:   prefix + "package_code",
			Message: "package_code is required",
		})
	}
	if validator.IsEmpty(r.Label) {
		errs = append(errs, validator.ValidationError{
			Field:   prefix + "label",
			Message: "label is required",
		})
	}
	if r.WeeklyPackageMinutes <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   prefix + "weekly_package_minutes",
			Message: "weekly_package_minutes must be greater than zero",
		})
	}
	if r.Quantity <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   prefix + "quantity",
			Message: "quantity must be greater than zero",
		})
	}
	for i, occ := range r.Occurrences {
		if validator.IsEmpty(occ.Name) && validator.IsEmpty(occ.Value) {
			errs = append(errs, validator.ValidationError{
				Field:   prefix + "occurrences[" + validator.Itoa(i) + "]",
				Message: "occurrence name or value is required",
			})
		}
	}

	return errs
}

func (r *CreateCarePlanRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PatientID) {
		errs = append(errs, validator.ValidationError{
			Field:   "patient_id",
			Message: "patient_id is required",
		})
	}
	if !validator.IsEmpty(r.Status) && !validator.IsInSlice(r.Status, PlanStatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: draft, active, expired",
		})
	}
	if !validator.IsEmpty(r.CNSPlanNumber) && !validator.IsValidCNSPlanNumber(r.CNSPlanNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "cns_plan_number",
			Message: "cns_plan_number must be 13 digits",
		})
	}
	if !validator.IsEmpty(r.CNSApprovedAt) {
		if _, ok := validator.IsValidDate(r.CNSApprovedAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "cns_approved_at",
				Message: "cns_approved_at must be a valid date in YYYY-MM-DD format",
			})
		}
	}

	var from, until time.Time
	var fromOK, untilOK bool
	if !validator.IsEmpty(r.ValidFrom) {
		if from, fromOK = validator.IsValidDate(r.ValidFrom); !fromOK {
			errs = append(errs, validator.ValidationError{
				Field:   "valid_from",
				Message: "valid_from must be a valid date in YYYY-MM-DD format",
			})
		}
	}
	if !validator.IsEmpty(r.ValidUntil) {
		if until, untilOK = validator.IsValidDate(r.ValidUntil); !untilOK {
			errs = append(errs, validator.ValidationError{
				Field:   "valid_until",
				Message: "valid_until must be a valid date in YYYY-MM-DD format",
			})
		}
	}
	if fromOK && untilOK && until.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "valid_until",
			Message: "valid_until must not precede valid_from",
		})
	}

	for i := range r.Items {
		errs = append(errs, r.Items[i].validate("items["+validator.Itoa(i)+"].")...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *UpdateCarePlanRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if err := r.CreateCarePlanRequest.Validate(); err != nil {
		if inner, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, inner...)
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type OccurrenceResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

type CarePlanItemResponse struct {
	ID                   string               `json:"id"`
	PackageCode          string               `json:"package_code"`
	Label                string               `json:"label"`
	WeeklyPackageMinutes int                  `json:"weekly_package_minutes"`
	Quantity             float64              `json:"quantity"`
	Occurrences          []OccurrenceResponse `json:"occurrences"`
}

type CarePlanResponse struct {
	ID            string                 `json:"id"`
	PatientID     string                 `json:"patient_id"`
	Status        string                 `json:"status"`
	CNSPlanNumber *string                `json:"cns_plan_number,omitempty"`
	CNSApprovedAt *time.Time             `json:"cns_approved_at,omitempty"`
	ValidFrom     *time.Time             `json:"valid_from,omitempty"`
	ValidUntil    *time.Time             `json:"valid_until,omitempty"`
	Notes         *string                `json:"notes,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
	Items         []CarePlanItemResponse `json:"items,omitempty"`
}

// DurationSummaryResponse is the weekly totals view of one care plan.
type DurationSummaryResponse struct {
	DailyMinutes    float64 `json:"daily_minutes"`
	DaysPerWeek     int     `json:"days_per_week"`
	WeeklyMinutes   float64 `json:"weekly_minutes"`
	DailyFormatted  string  `json:"daily_formatted"`
	WeeklyFormatted string  `json:"weekly_formatted"`
}

// SessionCheckRequest is a proposed visit window against one care plan.
type SessionCheckRequest struct {
	CarePlanID string `json:"-"`
	TimeStart  string `json:"time_start"`
	TimeEnd    string `json:"time_end"`
}

func (r *SessionCheckRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CarePlanID) {
		errs = append(errs, validator.ValidationError{
			Field:   "care_plan_id",
			Message: "care_plan_id is required",
		})
	}
	if _, ok := validator.IsValidClockTime(r.TimeStart); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "time_start",
			Message: "time_start must be a valid time in HH:MM format",
		})
	}
	if _, ok := validator.IsValidClockTime(r.TimeEnd); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "time_end",
			Message: "time_end must be a valid time in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SessionCheckResponse reports whether a proposed visit window matches
// the plan's expected daily duration within tolerance.
type SessionCheckResponse struct {
	Matches           bool    `json:"matches"`
	ActualMinutes     float64 `json:"actual_minutes"`
	ExpectedMinutes   float64 `json:"expected_minutes"`
	DifferenceMinutes float64 `json:"difference_minutes"`
	SuggestedEnd      *string `json:"suggested_end,omitempty"`
}
