package careplan

import "context"

type Service interface {
	CreateCarePlan(ctx context.Context, req CreateCarePlanRequest) (CarePlanResponse, error)
	GetCarePlan(ctx context.Context, id string) (CarePlanResponse, error)
	ListCarePlans(ctx context.Context, patientID string) ([]CarePlanResponse, error)
	UpdateCarePlan(ctx context.Context, req UpdateCarePlanRequest) (CarePlanResponse, error)
	DeleteCarePlan(ctx context.Context, id string) error

	// GetDurationSummary reports the plan's daily and weekly care minutes
	// derived from its items and occurrences.
	GetDurationSummary(ctx context.Context, carePlanID string) (DurationSummaryResponse, error)

	// CheckSessionDuration compares a proposed visit window against the
	// plan's expected daily duration.
	CheckSessionDuration(ctx context.Context, req SessionCheckRequest) (SessionCheckResponse, error)
}
