package medication

import "errors"

var (
	// Medication Errors
	ErrMedicationNotFound       = errors.New("medication not found")
	ErrMedicationAlreadyDeleted = errors.New("medication not found or already deleted")

	// Schedule Rule Errors
	ErrScheduleRuleNotFound = errors.New("schedule rule not found")

	// Request Data Errors
	ErrInvalidRequestData = errors.New("invalid request data")
)
