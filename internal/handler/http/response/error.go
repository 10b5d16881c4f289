package response

import (
	"errors"
	"net/http"

	"github.com/caredomi/homecare-backend-go/internal/domain/auth"
	"github.com/caredomi/homecare-backend-go/internal/domain/careplan"
	"github.com/caredomi/homecare-backend-go/internal/domain/employee"
	"github.com/caredomi/homecare-backend-go/internal/domain/medication"
	"github.com/caredomi/homecare-backend-go/internal/domain/patient"
	"github.com/caredomi/homecare-backend-go/internal/domain/prescription"
	"github.com/caredomi/homecare-backend-go/internal/domain/tour"
	"github.com/caredomi/homecare-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// Patient domain errors
	case errors.Is(err, patient.ErrPatientNotFound):
		NotFound(w, "Patient not found")
	case errors.Is(err, patient.ErrPatientCNSExists):
		Conflict(w, "A patient with this CNS number already exists")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Care plan domain errors
	case errors.Is(err, careplan.ErrCarePlanNotFound):
		NotFound(w, "Care plan not found")
	case errors.Is(err, careplan.ErrCarePlanItemNotFound):
		NotFound(w, "Care plan item not found")
	case errors.Is(err, careplan.ErrOccurrenceNotFound):
		NotFound(w, "Occurrence not found")
	case errors.Is(err, careplan.ErrPlanAlreadyDeleted):
		Conflict(w, "Care plan already deleted")
	case errors.Is(err, careplan.ErrInvalidRequestData):
		BadRequest(w, "Invalid request data", nil)

	// Medication domain errors
	case errors.Is(err, medication.ErrMedicationNotFound):
		NotFound(w, "Medication not found")
	case errors.Is(err, medication.ErrScheduleRuleNotFound):
		NotFound(w, "Schedule rule not found")
	case errors.Is(err, medication.ErrInvalidRequestData):
		BadRequest(w, "Invalid request data", nil)

	// Tour domain errors
	case errors.Is(err, tour.ErrTourNotFound):
		NotFound(w, "Tour not found")
	case errors.Is(err, tour.ErrEventNotFound):
		NotFound(w, "Event not found")
	case errors.Is(err, tour.ErrEventAlreadyInTour):
		Conflict(w, "Event already assigned to this tour")
	case errors.Is(err, tour.ErrEventNotInTour):
		Conflict(w, "Event not assigned to this tour")
	case errors.Is(err, tour.ErrValidationSuperseded):
		Conflict(w, "Validation superseded by a newer request")
	case errors.Is(err, tour.ErrInvalidRequestData):
		BadRequest(w, "Invalid request data", nil)

	// Prescription domain errors
	case errors.Is(err, prescription.ErrPrescriptionNotFound):
		NotFound(w, "Prescription not found")
	case errors.Is(err, prescription.ErrDocumentNotFound):
		NotFound(w, "Prescription document not found")
	case errors.Is(err, prescription.ErrDocumentTooLarge):
		PayloadTooLarge(w, "Document exceeds the size limit")
	case errors.Is(err, prescription.ErrUnsupportedDocument):
		BadRequest(w, "Unsupported document type", nil)
	case errors.Is(err, prescription.ErrInvalidRequestData):
		BadRequest(w, "Invalid request data", nil)

	case errors.Is(err, patient.ErrInvalidRequestData),
		errors.Is(err, employee.ErrInvalidRequestData):
		BadRequest(w, "Invalid request data", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
