package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock is a time of day expressed as minutes since midnight.
// Values at or above EndOfDay represent times past midnight and are
// only produced by arithmetic, never by parsing.
type Clock int

// EndOfDay is the first minute that no longer belongs to the day (24:00).
const EndOfDay Clock = 24 * 60

// ParseClock parses a zero-padded 24-hour "HH:MM" string.
func ParseClock(s string) (Clock, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(s[0:2])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	m, err := strconv.Atoi(s[3:5])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: hour must be 00-23 and minute 00-59", s)
	}
	return Clock(h*60 + m), nil
}

// String formats the clock as zero-padded "HH:MM". Values past midnight
// keep counting hours (25:30) so that intermediate arithmetic stays
// printable in logs; such values never cross the API boundary.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Add returns the clock shifted by the given number of minutes.
func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

// At anchors the clock on the given calendar date.
func (c Clock) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), int(c)/60, int(c)%60, 0, 0, date.Location())
}

// FromTime extracts the time-of-day component of t.
func FromTime(t time.Time) Clock {
	return Clock(t.Hour()*60 + t.Minute())
}

// MinutesBetween returns end - start in minutes. Negative when end is
// before start; callers decide whether that is meaningful.
func MinutesBetween(start, end Clock) int {
	return int(end - start)
}

// NormalizeClock best-effort normalizes a time value captured in any of
// the shapes the console produces (native time picker, datetime picker,
// seconds-bearing strings) into zero-padded "HH:MM". A value it cannot
// make sense of is returned unchanged; reporting the malformed value is
// the validator's job, not the formatter's.
func NormalizeClock(s string) string {
	v := strings.TrimSpace(s)
	if v == "" {
		return s
	}

	// Full datetimes: keep only the time of day.
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return FromTime(t).String()
	}
	if t, err := time.Parse("2006-01-02T15:04:05", v); err == nil {
		return FromTime(t).String()
	}
	if t, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
		return FromTime(t).String()
	}

	// HH:MM:SS from some widgets; drop the seconds.
	if t, err := time.Parse("15:04:05", v); err == nil {
		return FromTime(t).String()
	}

	// H:MM or HH:MM, re-padded.
	if t, err := time.Parse("15:04", v); err == nil {
		return FromTime(t).String()
	}

	return s
}
