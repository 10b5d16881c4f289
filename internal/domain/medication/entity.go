package medication

import "time"

// Medication belongs to a care plan and owns its schedule rules; deleting
// a medication cascades to the rules.
type Medication struct {
	ID         string
	CarePlanID string
	Name       string
	Form       string
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time

	Rules []ScheduleRule
}

type ScheduleKind string

const (
	KindParts    ScheduleKind = "parts"    // parts of day (morning, noon, ...)
	KindTimes    ScheduleKind = "times"    // exact clock times, every day
	KindWeekly   ScheduleKind = "weekly"   // selected weekdays at one time
	KindMonthly  ScheduleKind = "monthly"  // selected days of month at one time
	KindSpecific ScheduleKind = "specific" // explicit datetimes
	KindPRN      ScheduleKind = "prn"      // as needed, never scheduled
)

var ScheduleKindValues = []string{
	string(KindParts),
	string(KindTimes),
	string(KindWeekly),
	string(KindMonthly),
	string(KindSpecific),
	string(KindPRN),
}

type PartOfDay string

const (
	PartMorning PartOfDay = "morning"
	PartNoon    PartOfDay = "noon"
	PartEvening PartOfDay = "evening"
	PartNight   PartOfDay = "night"
)

var PartOfDayValues = []string{
	string(PartMorning),
	string(PartNoon),
	string(PartEvening),
	string(PartNight),
}

const DefaultDoseUnit = "unit(s)"

// ScheduleRule is one dosing pattern attached to a medication. Kind
// discriminates which single pattern pointer is populated; Validate is
// the runtime backstop for that invariant.
type ScheduleRule struct {
	ID           string
	MedicationID string
	Kind         ScheduleKind
	Dose         float64
	DoseUnit     string
	ValidFrom    *time.Time // date portion only
	ValidUntil   *time.Time // nil = open-ended
	IsActive     bool
	RuleOrder    int // display ordering only, no effect on evaluation
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Parts    *PartsPattern
	Times    *TimesPattern
	Weekly   *WeeklyPattern
	Monthly  *MonthlyPattern
	Specific *SpecificPattern
	PRN      *PRNPattern
}

type PartsPattern struct {
	PartsOfDay []PartOfDay
}

// TimesPattern doses at exact clock times every day within the validity
// window. Times are zero-padded "HH:MM" strings, the wire format.
type TimesPattern struct {
	ExactTimes []string
}

// WeeklyPattern doses on selected weekdays, 0 = Monday through 6 = Sunday.
type WeeklyPattern struct {
	Weekdays []int
	Time     string // HH:MM
}

type MonthlyPattern struct {
	DaysOfMonth []int // 1-31
	Time        string // HH:MM
}

type SpecificPattern struct {
	Datetimes []time.Time
}

// PRNPattern is "as needed" dosing bounded by an optional daily cap and
// minimum interval between doses.
type PRNPattern struct {
	Condition        string
	MaxDosesPerDay   *int
	MinIntervalHours *float64
}
