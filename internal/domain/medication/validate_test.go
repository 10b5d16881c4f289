package medication

import (
	"errors"
	"testing"
	"time"

	"github.com/caredomi/homecare-backend-go/internal/pkg/validator"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
	}
	return errs.ToMap()
}

func validPartsRule() ScheduleRule {
	return ScheduleRule{
		Kind:     KindParts,
		Dose:     1,
		DoseUnit: DefaultDoseUnit,
		IsActive: true,
		Parts:    &PartsPattern{PartsOfDay: []PartOfDay{PartMorning, PartEvening}},
	}
}

func TestScheduleRuleValidate_ValidParts(t *testing.T) {
	rule := validPartsRule()
	if err := rule.Validate(); err != nil {
		t.Errorf("valid parts rule rejected: %v", err)
	}
}

func TestScheduleRuleValidate_DoseMustBePositive(t *testing.T) {
	cases := []float64{0, -0.5}
	for _, dose := range cases {
		rule := validPartsRule()
		rule.Dose = dose
		fields := fieldErrors(t, rule.Validate())
		if _, ok := fields["dose"]; !ok {
			t.Errorf("dose=%v: expected dose error, got %v", dose, fields)
		}
	}
}

func TestScheduleRuleValidate_UnknownKind(t *testing.T) {
	rule := validPartsRule()
	rule.Kind = "fortnightly"
	fields := fieldErrors(t, rule.Validate())
	if _, ok := fields["schedule_kind"]; !ok {
		t.Errorf("expected schedule_kind error, got %v", fields)
	}
}

func TestScheduleRuleValidate_ValidityWindow(t *testing.T) {
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	rule := validPartsRule()
	rule.ValidFrom = &from
	rule.ValidUntil = &until
	fields := fieldErrors(t, rule.Validate())
	if _, ok := fields["valid_until"]; !ok {
		t.Errorf("expected valid_until error, got %v", fields)
	}

	// Open-ended rules are fine.
	rule = validPartsRule()
	rule.ValidFrom = &from
	if err := rule.Validate(); err != nil {
		t.Errorf("open-ended rule rejected: %v", err)
	}
}

func TestScheduleRuleValidate_EmptyPayloads(t *testing.T) {
	cases := []struct {
		name  string
		rule  ScheduleRule
		field string
	}{
		{"parts nil", ScheduleRule{Kind: KindParts, Dose: 1}, "parts_of_day"},
		{"parts empty", ScheduleRule{Kind: KindParts, Dose: 1, Parts: &PartsPattern{}}, "parts_of_day"},
		{"times empty", ScheduleRule{Kind: KindTimes, Dose: 1, Times: &TimesPattern{}}, "exact_times"},
		{"weekly empty", ScheduleRule{Kind: KindWeekly, Dose: 1, Weekly: &WeeklyPattern{Time: "08:00"}}, "weekdays"},
		{"monthly empty", ScheduleRule{Kind: KindMonthly, Dose: 1, Monthly: &MonthlyPattern{Time: "08:00"}}, "days_of_month"},
		{"specific empty", ScheduleRule{Kind: KindSpecific, Dose: 1, Specific: &SpecificPattern{}}, "specific_datetimes"},
		{"prn no condition", ScheduleRule{Kind: KindPRN, Dose: 1, PRN: &PRNPattern{}}, "prn_condition"},
	}
	for _, c := range cases {
		fields := fieldErrors(t, c.rule.Validate())
		if _, ok := fields[c.field]; !ok {
			t.Errorf("%s: expected %s error, got %v", c.name, c.field, fields)
		}
	}
}

func TestScheduleRuleValidate_MalformedPayloads(t *testing.T) {
	cases := []struct {
		name  string
		rule  ScheduleRule
		field string
	}{
		{
			"bad exact time",
			ScheduleRule{Kind: KindTimes, Dose: 1, Times: &TimesPattern{ExactTimes: []string{"8h30"}}},
			"exact_times",
		},
		{
			"weekday out of range",
			ScheduleRule{Kind: KindWeekly, Dose: 1, Weekly: &WeeklyPattern{Weekdays: []int{7}, Time: "08:00"}},
			"weekdays",
		},
		{
			"weekday negative",
			ScheduleRule{Kind: KindWeekly, Dose: 1, Weekly: &WeeklyPattern{Weekdays: []int{-1}, Time: "08:00"}},
			"weekdays",
		},
		{
			"bad weekly time",
			ScheduleRule{Kind: KindWeekly, Dose: 1, Weekly: &WeeklyPattern{Weekdays: []int{0}, Time: "25:00"}},
			"weekly_time",
		},
		{
			"day of month out of range",
			ScheduleRule{Kind: KindMonthly, Dose: 1, Monthly: &MonthlyPattern{DaysOfMonth: []int{32}, Time: "08:00"}},
			"days_of_month",
		},
		{
			"day of month zero",
			ScheduleRule{Kind: KindMonthly, Dose: 1, Monthly: &MonthlyPattern{DaysOfMonth: []int{0}, Time: "08:00"}},
			"days_of_month",
		},
		{
			"unknown part of day",
			ScheduleRule{Kind: KindParts, Dose: 1, Parts: &PartsPattern{PartsOfDay: []PartOfDay{"brunch"}}},
			"parts_of_day",
		},
		{
			"prn non-positive cap",
			ScheduleRule{Kind: KindPRN, Dose: 1, PRN: &PRNPattern{Condition: "pain", MaxDosesPerDay: intPtr(0)}},
			"prn_max_doses_per_day",
		},
		{
			"prn non-positive interval",
			ScheduleRule{Kind: KindPRN, Dose: 1, PRN: &PRNPattern{Condition: "pain", MinIntervalHours: floatPtr(-2)}},
			"prn_min_interval_hours",
		},
	}
	for _, c := range cases {
		fields := fieldErrors(t, c.rule.Validate())
		if _, ok := fields[c.field]; !ok {
			t.Errorf("%s: expected %s error, got %v", c.name, c.field, fields)
		}
	}
}

func TestScheduleRuleValidate_WrongPayloadForKind(t *testing.T) {
	// A weekly rule carrying a parts payload must be rejected even though
	// its own weekly payload is complete.
	rule := ScheduleRule{
		Kind:   KindWeekly,
		Dose:   1,
		Weekly: &WeeklyPattern{Weekdays: []int{0, 2}, Time: "08:00"},
		Parts:  &PartsPattern{PartsOfDay: []PartOfDay{PartMorning}},
	}
	fields := fieldErrors(t, rule.Validate())
	if _, ok := fields["parts_of_day"]; !ok {
		t.Errorf("expected parts_of_day stray-payload error, got %v", fields)
	}
}

func TestScheduleRuleValidate_NeverPanics(t *testing.T) {
	// Totality: the zero rule and half-built rules report errors, they
	// never panic.
	rules := []ScheduleRule{
		{},
		{Kind: KindWeekly},
		{Kind: KindPRN, Dose: 1},
		{Kind: KindSpecific, Dose: 1, Specific: &SpecificPattern{Datetimes: []time.Time{{}}}},
	}
	for i, rule := range rules {
		if err := rule.Validate(); err == nil {
			t.Errorf("rule %d: expected validation errors", i)
		}
	}
}

func TestScheduleRuleRequest_Validate(t *testing.T) {
	dose := 2.5
	req := ScheduleRuleRequest{
		MedicationID: "med-1",
		ScheduleKind: "weekly",
		Dose:         &dose,
		Weekdays:     []int{0, 4},
		WeeklyTime:   "07:30",
	}
	if err := req.Validate(); err != nil {
		t.Errorf("valid weekly request rejected: %v", err)
	}

	bad := ScheduleRuleRequest{
		MedicationID:      "med-1",
		ScheduleKind:      "specific",
		Dose:              &dose,
		SpecificDatetimes: []string{"not-a-datetime"},
	}
	fields := fieldErrors(t, bad.Validate())
	if _, ok := fields["specific_datetimes"]; !ok {
		t.Errorf("expected specific_datetimes error, got %v", fields)
	}
}

func TestScheduleRuleRequest_ToRuleDefaults(t *testing.T) {
	dose := 1.0
	req := ScheduleRuleRequest{
		MedicationID: "med-1",
		ScheduleKind: "parts",
		Dose:         &dose,
		PartsOfDay:   []string{"morning"},
	}
	rule := req.ToRule()
	if rule.DoseUnit != DefaultDoseUnit {
		t.Errorf("DoseUnit = %q, want %q", rule.DoseUnit, DefaultDoseUnit)
	}
	if !rule.IsActive {
		t.Error("rules default to active")
	}
}

func intPtr(v int) *int             { return &v }
func floatPtr(v float64) *float64   { return &v }
