package medication

import (
	"testing"
	"time"
)

// 2025-06-02 is a Monday.
var (
	monday   = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	thursday = time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	sunday   = time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
)

func TestOccursOn_InactiveRuleNeverOccurs(t *testing.T) {
	rule := validPartsRule()
	rule.IsActive = false
	if rule.OccursOn(monday) {
		t.Error("inactive rule occurred inside its validity window")
	}
}

func TestOccursOn_ValidityWindow(t *testing.T) {
	from := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)

	rule := validPartsRule()
	rule.ValidFrom = &from
	rule.ValidUntil = &until

	if rule.OccursOn(monday) {
		t.Error("occurred before valid_from")
	}
	if !rule.OccursOn(thursday) {
		t.Error("did not occur inside the window")
	}
	if rule.OccursOn(sunday) {
		t.Error("occurred after valid_until")
	}

	// Open-ended: no valid_until means ongoing.
	rule.ValidUntil = nil
	if !rule.OccursOn(sunday.AddDate(1, 0, 0)) {
		t.Error("open-ended rule stopped occurring")
	}
}

func TestOccursOn_Weekly(t *testing.T) {
	rule := ScheduleRule{
		Kind:     KindWeekly,
		Dose:     1,
		IsActive: true,
		Weekly:   &WeeklyPattern{Weekdays: []int{0, 3}, Time: "08:00"}, // Monday, Thursday
	}
	if !rule.OccursOn(monday) {
		t.Error("weekly rule missed Monday (weekday 0)")
	}
	if !rule.OccursOn(thursday) {
		t.Error("weekly rule missed Thursday (weekday 3)")
	}
	if rule.OccursOn(sunday) {
		t.Error("weekly rule fired on Sunday (weekday 6)")
	}

	got := rule.DoseTimesOn(monday)
	if len(got) != 1 || got[0].String() != "08:00" {
		t.Errorf("DoseTimesOn(Monday) = %v, want [08:00]", got)
	}
}

func TestOccursOn_Monthly(t *testing.T) {
	rule := ScheduleRule{
		Kind:     KindMonthly,
		Dose:     1,
		IsActive: true,
		Monthly:  &MonthlyPattern{DaysOfMonth: []int{2, 15}, Time: "20:00"},
	}
	if !rule.OccursOn(monday) { // June 2nd
		t.Error("monthly rule missed day 2")
	}
	if rule.OccursOn(thursday) { // June 5th
		t.Error("monthly rule fired on day 5")
	}
}

func TestDoseTimesOn_TimesSorted(t *testing.T) {
	rule := ScheduleRule{
		Kind:     KindTimes,
		Dose:     1,
		IsActive: true,
		Times:    &TimesPattern{ExactTimes: []string{"20:00", "08:00", "12:30"}},
	}
	got := rule.DoseTimesOn(monday)
	want := []string{"08:00", "12:30", "20:00"}
	if len(got) != len(want) {
		t.Fatalf("DoseTimesOn returned %d times, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].String() != w {
			t.Errorf("DoseTimesOn[%d] = %s, want %s", i, got[i], w)
		}
	}
}

func TestDoseTimesOn_Specific(t *testing.T) {
	rule := ScheduleRule{
		Kind:     KindSpecific,
		Dose:     1,
		IsActive: true,
		Specific: &SpecificPattern{Datetimes: []time.Time{
			time.Date(2025, 6, 2, 9, 15, 0, 0, time.UTC),
			time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 3, 9, 15, 0, 0, time.UTC),
		}},
	}
	got := rule.DoseTimesOn(monday)
	if len(got) != 2 {
		t.Fatalf("DoseTimesOn(Monday) returned %d times, want 2", len(got))
	}
	if got[0].String() != "09:15" || got[1].String() != "18:00" {
		t.Errorf("DoseTimesOn(Monday) = [%s %s], want [09:15 18:00]", got[0], got[1])
	}
	if rule.OccursOn(sunday) {
		t.Error("specific rule fired on a date with no datetime")
	}
}

func TestOccursOn_PRNNeverScheduled(t *testing.T) {
	rule := ScheduleRule{
		Kind:     KindPRN,
		Dose:     1,
		IsActive: true,
		PRN:      &PRNPattern{Condition: "pain"},
	}
	if rule.OccursOn(monday) {
		t.Error("prn rule must never be scheduled")
	}
	if times := rule.DoseTimesOn(monday); times != nil {
		t.Errorf("prn DoseTimesOn = %v, want nil", times)
	}
}

func TestDoseTimesOn_PartsHaveNoClockTimes(t *testing.T) {
	rule := validPartsRule()
	if !rule.OccursOn(monday) {
		t.Fatal("parts rule should occur daily")
	}
	if times := rule.DoseTimesOn(monday); times != nil {
		t.Errorf("parts DoseTimesOn = %v, want nil (parts of day carry no clock)", times)
	}
}

func TestIsoWeekday(t *testing.T) {
	if got := isoWeekday(monday); got != 0 {
		t.Errorf("isoWeekday(Monday) = %d, want 0", got)
	}
	if got := isoWeekday(sunday); got != 6 {
		t.Errorf("isoWeekday(Sunday) = %d, want 6", got)
	}
}
