package careplan

import (
	"math"
	"testing"

	"github.com/caredomi/homecare-backend-go/internal/domain/careplan"
	"github.com/caredomi/homecare-backend-go/internal/pkg/timeutil"
)

func item(weeklyMinutes int, quantity float64) careplan.CarePlanItem {
	return careplan.CarePlanItem{WeeklyPackageMinutes: weeklyMinutes, Quantity: quantity}
}

func occ(name string) careplan.Occurrence {
	return careplan.Occurrence{Name: name, Value: name}
}

func clock(t *testing.T, s string) timeutil.Clock {
	t.Helper()
	c, err := timeutil.ParseClock(s)
	if err != nil {
		t.Fatalf("ParseClock(%q): %v", s, err)
	}
	return c
}

func TestDailyDuration(t *testing.T) {
	calc := NewDurationCalculator()

	if got := calc.DailyDuration(nil); got != 0 {
		t.Errorf("DailyDuration(nil) = %v, want 0", got)
	}

	// 210 weekly minutes = 30/day; quantity 2 doubles it.
	items := []careplan.CarePlanItem{item(210, 1), item(210, 2)}
	if got := calc.DailyDuration(items); got != 90 {
		t.Errorf("DailyDuration = %v, want 90", got)
	}

	// Weekly minutes not divisible by 7 keep their fractional portion.
	items = []careplan.CarePlanItem{item(150, 1)}
	if got := calc.DailyDuration(items); math.Abs(got-150.0/7) > 1e-9 {
		t.Errorf("DailyDuration = %v, want %v", got, 150.0/7)
	}
}

func TestActualDaysPerWeek(t *testing.T) {
	calc := NewDurationCalculator()

	cases := []struct {
		name        string
		occurrences []careplan.Occurrence
		want        int
	}{
		{"empty", nil, 0},
		{"three weekdays", []careplan.Occurrence{occ("Monday"), occ("Wednesday"), occ("Friday")}, 3},
		{"single tous les jours", []careplan.Occurrence{occ("tous les jours")}, 7},
		{"uppercase french", []careplan.Occurrence{occ("TOUS LES JOURS")}, 7},
		{"daily keyword", []careplan.Occurrence{occ("Daily")}, 7},
		{"star sentinel", []careplan.Occurrence{occ("*")}, 7},
		{"marker among weekdays", []careplan.Occurrence{occ("Monday"), occ("tous les jours")}, 7},
	}
	for _, c := range cases {
		if got := calc.ActualDaysPerWeek(c.occurrences); got != c.want {
			t.Errorf("%s: ActualDaysPerWeek = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestActualWeeklyDuration_Identity(t *testing.T) {
	calc := NewDurationCalculator()

	items := []careplan.CarePlanItem{item(150, 1), item(280, 0.5)}
	occurrences := []careplan.Occurrence{occ("Monday"), occ("Thursday")}

	want := calc.DailyDuration(items) * float64(calc.ActualDaysPerWeek(occurrences))
	if got := calc.ActualWeeklyDuration(items, occurrences); got != want {
		t.Errorf("ActualWeeklyDuration = %v, want %v", got, want)
	}

	if got := calc.ActualWeeklyDuration(nil, occurrences); got != 0 {
		t.Errorf("ActualWeeklyDuration(no items) = %v, want 0", got)
	}
}

func TestSuggestedEndTime(t *testing.T) {
	calc := NewDurationCalculator()

	// 210 weekly = 30/day: 09:00 + 30 = 09:30.
	items := []careplan.CarePlanItem{item(210, 1)}
	got := calc.SuggestedEndTime(clock(t, "09:00"), items)
	if got == nil || got.String() != "09:30" {
		t.Errorf("SuggestedEndTime = %v, want 09:30", got)
	}

	if got := calc.SuggestedEndTime(clock(t, "09:00"), nil); got != nil {
		t.Errorf("SuggestedEndTime(no items) = %v, want nil", got)
	}

	// 630 weekly = 90/day: 23:00 + 90 crosses midnight.
	items = []careplan.CarePlanItem{item(630, 1)}
	if got := calc.SuggestedEndTime(clock(t, "23:00"), items); got != nil {
		t.Errorf("SuggestedEndTime past midnight = %v, want nil", got)
	}

	// Landing exactly on 24:00 is also rejected.
	items = []careplan.CarePlanItem{item(420, 1)} // 60/day
	if got := calc.SuggestedEndTime(clock(t, "23:00"), items); got != nil {
		t.Errorf("SuggestedEndTime at 24:00 = %v, want nil", got)
	}
}

func TestSessionDurationMatch_Tolerance(t *testing.T) {
	calc := NewDurationCalculator()
	items := []careplan.CarePlanItem{item(420, 1)} // 60/day

	cases := []struct {
		name    string
		end     string
		matches bool
		diff    float64
	}{
		{"exact", "10:00", true, 0},
		{"five over", "10:05", true, 5},
		{"five under", "09:55", true, -5},
		{"six over", "10:06", false, 6},
		{"six under", "09:54", false, -6},
	}
	for _, c := range cases {
		got := calc.SessionDurationMatch(clock(t, "09:00"), clock(t, c.end), items)
		if got.Matches != c.matches {
			t.Errorf("%s: Matches = %v, want %v", c.name, got.Matches, c.matches)
		}
		if got.DifferenceMinutes != c.diff {
			t.Errorf("%s: DifferenceMinutes = %v, want %v", c.name, got.DifferenceMinutes, c.diff)
		}
		if got.ExpectedMinutes != 60 {
			t.Errorf("%s: ExpectedMinutes = %v, want 60", c.name, got.ExpectedMinutes)
		}
	}

	got := calc.SessionDurationMatch(clock(t, "09:00"), clock(t, "10:06"), items)
	if got.SuggestedEnd == nil || got.SuggestedEnd.String() != "10:00" {
		t.Errorf("SuggestedEnd = %v, want 10:00", got.SuggestedEnd)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		minutes float64
		want    string
	}{
		{0, "0"},
		{60, "60"},
		{21.428571, "21.43"},
		{90.5, "90.50"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.minutes); got != c.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", c.minutes, got, c.want)
		}
	}
}
