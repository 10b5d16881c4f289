package medication

import "context"

type MedicationRepository interface {
	Create(ctx context.Context, med *Medication) error
	GetByID(ctx context.Context, id string) (*Medication, error)
	ListByCarePlan(ctx context.Context, carePlanID string) ([]Medication, error)
	Update(ctx context.Context, med *Medication) error
	// SoftDelete marks the medication deleted; the rule rows cascade at
	// the database level.
	SoftDelete(ctx context.Context, id string) error
}

type ScheduleRuleRepository interface {
	Create(ctx context.Context, rule *ScheduleRule) error
	GetByID(ctx context.Context, id string) (*ScheduleRule, error)
	ListByMedication(ctx context.Context, medicationID string) ([]ScheduleRule, error)
	Update(ctx context.Context, rule *ScheduleRule) error
	Delete(ctx context.Context, id string) error
}
