package careplan

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/caredomi/homecare-backend-go/internal/domain/careplan"
	"github.com/caredomi/homecare-backend-go/internal/pkg/timeutil"
)

// SessionToleranceMinutes is how far a visit may deviate from the plan's
// expected daily duration and still count as matching.
const SessionToleranceMinutes = 5

// everyDayPattern recognizes the "every day" occurrence markers used by
// the CNS forms. A single matching entry means seven days a week, not
// one.
var everyDayPattern = regexp.MustCompile(`(?i)tous les jours|daily`)

type DurationCalculator struct {
}

func NewDurationCalculator() *DurationCalculator {
	return &DurationCalculator{}
}

// DailyDuration sums each item's daily portion of its weekly package,
// weekly minutes divided by 7 and scaled by quantity. Returns 0 for an
// empty list.
func (c *DurationCalculator) DailyDuration(items []careplan.CarePlanItem) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.WeeklyPackageMinutes) / 7 * item.Quantity
	}
	return total
}

// ActualDaysPerWeek counts the selected occurrences, except that any
// "every day" marker forces 7 regardless of how many entries exist.
func (c *DurationCalculator) ActualDaysPerWeek(occurrences []careplan.Occurrence) int {
	for _, occ := range occurrences {
		if isEveryDay(occ.Name) || isEveryDay(occ.Value) {
			return 7
		}
	}
	return len(occurrences)
}

func isEveryDay(s string) bool {
	if strings.TrimSpace(s) == "*" {
		return true
	}
	return everyDayPattern.MatchString(s)
}

func (c *DurationCalculator) ActualWeeklyDuration(items []careplan.CarePlanItem, occurrences []careplan.Occurrence) float64 {
	return c.DailyDuration(items) * float64(c.ActualDaysPerWeek(occurrences))
}

// SuggestedEndTime adds the plan's daily duration to start, rounded to
// the nearest minute. Returns nil when there is nothing to add or when
// the result would reach midnight; the suggestion never proposes a
// wrapped time.
func (c *DurationCalculator) SuggestedEndTime(start timeutil.Clock, items []careplan.CarePlanItem) *timeutil.Clock {
	daily := c.DailyDuration(items)
	if len(items) == 0 || daily == 0 {
		return nil
	}
	end := start.Add(int(math.Round(daily)))
	if end >= timeutil.EndOfDay {
		return nil
	}
	return &end
}

// SessionDurationResult compares one visit window against the expected
// daily duration. DifferenceMinutes is signed, actual minus expected.
type SessionDurationResult struct {
	Matches           bool
	ActualMinutes     float64
	ExpectedMinutes   float64
	DifferenceMinutes float64
	SuggestedEnd      *timeutil.Clock
}

func (c *DurationCalculator) SessionDurationMatch(start, end timeutil.Clock, items []careplan.CarePlanItem) SessionDurationResult {
	actual := float64(timeutil.MinutesBetween(start, end))
	expected := c.DailyDuration(items)
	diff := actual - expected

	return SessionDurationResult{
		Matches:           math.Abs(diff) <= SessionToleranceMinutes,
		ActualMinutes:     actual,
		ExpectedMinutes:   expected,
		DifferenceMinutes: diff,
		SuggestedEnd:      c.SuggestedEndTime(start, items),
	}
}

// FormatDuration renders minutes with two decimals, dropping an exact
// ".00" suffix.
func FormatDuration(minutes float64) string {
	s := fmt.Sprintf("%.2f", minutes)
	return strings.TrimSuffix(s, ".00")
}
