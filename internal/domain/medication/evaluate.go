package medication

import (
	"sort"
	"time"

	"github.com/caredomi/homecare-backend-go/internal/pkg/timeutil"
)

// OccursOn reports whether the rule schedules at least one dose on the
// given calendar date. Inactive rules never occur, whatever their
// validity window. PRN rules are demand-driven and never scheduled.
func (r *ScheduleRule) OccursOn(date time.Time) bool {
	if !r.IsActive || !r.inValidityWindow(date) {
		return false
	}

	switch r.Kind {
	case KindParts:
		return r.Parts != nil && len(r.Parts.PartsOfDay) > 0
	case KindTimes:
		return r.Times != nil && len(r.Times.ExactTimes) > 0
	case KindWeekly:
		if r.Weekly == nil {
			return false
		}
		wd := isoWeekday(date)
		for _, d := range r.Weekly.Weekdays {
			if d == wd {
				return true
			}
		}
		return false
	case KindMonthly:
		if r.Monthly == nil {
			return false
		}
		for _, d := range r.Monthly.DaysOfMonth {
			if d == date.Day() {
				return true
			}
		}
		return false
	case KindSpecific:
		if r.Specific == nil {
			return false
		}
		for _, dt := range r.Specific.Datetimes {
			if sameDate(dt, date) {
				return true
			}
		}
		return false
	case KindPRN:
		return false
	}
	return false
}

// DoseTimesOn returns the scheduled dose times for the date, sorted
// ascending. Kinds without fixed clock times (parts, prn) return nil
// even when they occur; the caller renders parts of day instead.
func (r *ScheduleRule) DoseTimesOn(date time.Time) []timeutil.Clock {
	if !r.OccursOn(date) {
		return nil
	}

	var times []timeutil.Clock
	switch r.Kind {
	case KindTimes:
		for _, tm := range r.Times.ExactTimes {
			if c, err := timeutil.ParseClock(tm); err == nil {
				times = append(times, c)
			}
		}
	case KindWeekly:
		if c, err := timeutil.ParseClock(r.Weekly.Time); err == nil {
			times = append(times, c)
		}
	case KindMonthly:
		if c, err := timeutil.ParseClock(r.Monthly.Time); err == nil {
			times = append(times, c)
		}
	case KindSpecific:
		for _, dt := range r.Specific.Datetimes {
			if sameDate(dt, date) {
				times = append(times, timeutil.FromTime(dt))
			}
		}
	}

	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	return times
}

// inValidityWindow compares date portions only; an absent valid_until
// means the rule is ongoing.
func (r *ScheduleRule) inValidityWindow(date time.Time) bool {
	d := truncateToDate(date)
	if r.ValidFrom != nil && d.Before(truncateToDate(*r.ValidFrom)) {
		return false
	}
	if r.ValidUntil != nil && d.After(truncateToDate(*r.ValidUntil)) {
		return false
	}
	return true
}

// isoWeekday maps time.Weekday to the 0=Monday..6=Sunday convention the
// rule model uses.
func isoWeekday(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
