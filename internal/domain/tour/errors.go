package tour

import "errors"

var (
	ErrTourNotFound         = errors.New("tour not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrEventAlreadyInTour   = errors.New("event already assigned to this tour")
	ErrEventNotInTour       = errors.New("event not assigned to this tour")
	ErrInvalidRequestData   = errors.New("invalid request data")
	ErrValidationSuperseded = errors.New("validation result superseded by a newer request")
)
