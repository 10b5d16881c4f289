package timeutil

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		input   string
		want    Clock
		wantErr bool
	}{
		{"00:00", 0, false},
		{"07:05", 7*60 + 5, false},
		{"23:59", 23*60 + 59, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"7:05", 0, true},
		{"12-30", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}
	for _, c := range cases {
		got, err := ParseClock(c.input)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) = %v, want error", c.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q) unexpected error: %v", c.input, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseClock(%q) = %d, want %d", c.input, got, c.want)
		}
	}
}

func TestClockString(t *testing.T) {
	cases := []struct {
		clock Clock
		want  string
	}{
		{0, "00:00"},
		{7*60 + 5, "07:05"},
		{23*60 + 59, "23:59"},
		{25*60 + 30, "25:30"}, // past-midnight arithmetic stays printable
	}
	for _, c := range cases {
		if got := c.clock.String(); got != c.want {
			t.Errorf("Clock(%d).String() = %q, want %q", c.clock, got, c.want)
		}
	}
}

func TestClockRoundTrip(t *testing.T) {
	// Parse -> anchor on a date -> extract -> format must be the identity.
	inputs := []string{"00:00", "07:05", "09:30", "12:00", "23:59"}
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	for _, s := range inputs {
		c, err := ParseClock(s)
		if err != nil {
			t.Fatalf("ParseClock(%q) error: %v", s, err)
		}
		if got := FromTime(c.At(date)).String(); got != s {
			t.Errorf("round trip of %q = %q", s, got)
		}
	}
}

func TestNormalizeClock(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"07:05", "07:05"},
		{"7:05", "07:05"},
		{"07:05:33", "07:05"},
		{"2025-03-14T16:45:00Z", "16:45"},
		{"2025-03-14T16:45:00+02:00", "16:45"},
		{"2025-03-14 16:45:00", "16:45"},
		// Malformed values pass through unchanged; validation reports them.
		{"banana", "banana"},
		{"25:99", "25:99"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeClock(c.input); got != c.want {
			t.Errorf("NormalizeClock(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestMinutesBetween(t *testing.T) {
	start, _ := ParseClock("09:00")
	end, _ := ParseClock("10:30")
	if got := MinutesBetween(start, end); got != 90 {
		t.Errorf("MinutesBetween = %d, want 90", got)
	}
	if got := MinutesBetween(end, start); got != -90 {
		t.Errorf("MinutesBetween reversed = %d, want -90", got)
	}
}

func TestClockAdd(t *testing.T) {
	c, _ := ParseClock("23:00")
	if got := c.Add(90); got < EndOfDay {
		t.Errorf("23:00 + 90min = %v, expected past end of day", got)
	}
}
