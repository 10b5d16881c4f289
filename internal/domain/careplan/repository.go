package careplan

import "context"

type CarePlanRepository interface {
	Create(ctx context.Context, plan *CarePlan) error
	GetByID(ctx context.Context, id string) (*CarePlan, error)
	// GetByIDWithItems loads the plan plus its items and their occurrences.
	GetByIDWithItems(ctx context.Context, id string) (*CarePlan, error)
	ListByPatient(ctx context.Context, patientID string) ([]CarePlan, error)
	Update(ctx context.Context, plan *CarePlan) error
	// SoftDelete marks the plan deleted; items and occurrences stay in
	// place for audit but stop being returned by list queries.
	SoftDelete(ctx context.Context, id string) error
}

type CarePlanItemRepository interface {
	Create(ctx context.Context, item *CarePlanItem) error
	GetByID(ctx context.Context, id string) (*CarePlanItem, error)
	ListByCarePlan(ctx context.Context, carePlanID string) ([]CarePlanItem, error)
	Update(ctx context.Context, item *CarePlanItem) error
	Delete(ctx context.Context, id string) error

	ReplaceOccurrences(ctx context.Context, itemID string, occurrences []Occurrence) error
}
