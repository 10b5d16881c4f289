package medication

import "context"

type Service interface {
	// Medications
	CreateMedication(ctx context.Context, req CreateMedicationRequest) (MedicationResponse, error)
	GetMedication(ctx context.Context, id string) (MedicationResponse, error)
	ListMedications(ctx context.Context, carePlanID string) ([]MedicationResponse, error)
	UpdateMedication(ctx context.Context, req UpdateMedicationRequest) (MedicationResponse, error)
	DeleteMedication(ctx context.Context, id string) error

	// Schedule Rules
	CreateScheduleRule(ctx context.Context, req ScheduleRuleRequest) (ScheduleRuleResponse, error)
	ListScheduleRules(ctx context.Context, medicationID string) ([]ScheduleRuleResponse, error)
	UpdateScheduleRule(ctx context.Context, req ScheduleRuleRequest) (ScheduleRuleResponse, error)
	DeleteScheduleRule(ctx context.Context, ruleID, medicationID string) error

	// Dose schedule evaluation
	GetDoseSchedule(ctx context.Context, carePlanID, date string) ([]ScheduledDoseResponse, error)
}

// ScheduledDoseResponse is one due dose on a requested date, produced by
// evaluating the active rules of every medication on the care plan.
type ScheduledDoseResponse struct {
	MedicationID   string   `json:"medication_id"`
	MedicationName string   `json:"medication_name"`
	RuleID         string   `json:"rule_id"`
	ScheduleKind   string   `json:"schedule_kind"`
	Dose           float64  `json:"dose"`
	DoseUnit       string   `json:"dose_unit"`
	Times          []string `json:"times,omitempty"`
	PartsOfDay     []string `json:"parts_of_day,omitempty"`
}
