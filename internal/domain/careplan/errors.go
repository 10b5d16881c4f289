package careplan

import "errors"

var (
	ErrCarePlanNotFound     = errors.New("care plan not found")
	ErrCarePlanItemNotFound = errors.New("care plan item not found")
	ErrOccurrenceNotFound   = errors.New("occurrence not found")
	ErrPlanAlreadyDeleted   = errors.New("care plan already deleted")
	ErrInvalidRequestData   = errors.New("invalid request data")
)
