package patient

import "errors"

var (
	ErrPatientNotFound    = errors.New("patient not found")
	ErrPatientCNSExists   = errors.New("a patient with this CNS number already exists")
	ErrInvalidRequestData = errors.New("invalid request data")
)
