package careplan

import "time"

type PlanStatus string

const (
	StatusDraft   PlanStatus = "draft"
	StatusActive  PlanStatus = "active"
	StatusExpired PlanStatus = "expired"
)

var PlanStatusValues = []string{
	string(StatusDraft),
	string(StatusActive),
	string(StatusExpired),
}

// CarePlan is one patient's approved set of care items, optionally
// linked to a CNS (national insurance) plan.
type CarePlan struct {
	ID            string
	PatientID     string
	Status        PlanStatus
	CNSPlanNumber *string // 13-digit reference issued by the fund
	CNSApprovedAt *time.Time
	ValidFrom     *time.Time
	ValidUntil    *time.Time // nil = ongoing
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time

	Items []CarePlanItem
}

// CarePlanItem is one care-package line: the weekly allotted minutes of
// a service, how many units of it the plan grants, and the weekday
// occurrences the care is delivered on.
type CarePlanItem struct {
	ID                   string
	CarePlanID           string
	PackageCode          string
	Label                string
	WeeklyPackageMinutes int
	Quantity             float64
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Occurrences []Occurrence
}

// Occurrence is a selectable weekly recurrence tag on a line item: a
// weekday name, or an "every day" marker ("tous les jours", "daily",
// or the "*" sentinel).
type Occurrence struct {
	ID             string
	CarePlanItemID string
	Name           string
	Value          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
