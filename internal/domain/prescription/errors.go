package prescription

import "errors"

var (
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrDocumentNotFound     = errors.New("prescription document not found")
	ErrDocumentTooLarge     = errors.New("prescription document exceeds the size limit")
	ErrUnsupportedDocument  = errors.New("unsupported document type")
	ErrInvalidRequestData   = errors.New("invalid request data")
)
