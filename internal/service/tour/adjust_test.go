package tour

import (
	"testing"

	"github.com/caredomi/homecare-backend-go/internal/domain/tour"
)

func TestSuggestAdjustments_DefaultTravelBuffer(t *testing.T) {
	// Previous ends 09:30, default 15 minutes of travel, next starts
	// 09:40: too early, push to 09:45.
	events := []tour.Event{
		visit("a", "08:30", "09:30"),
		visit("b", "09:40", "10:40"),
	}

	adjustments := SuggestAdjustments(events, nil, nil)
	if len(adjustments) != 1 {
		t.Fatalf("got %d adjustments, want 1", len(adjustments))
	}
	adj := adjustments[0]
	if adj.EventID != "b" {
		t.Errorf("EventID = %s, want b", adj.EventID)
	}
	if adj.OriginalStart.String() != "09:40" {
		t.Errorf("OriginalStart = %s, want 09:40", adj.OriginalStart)
	}
	if adj.SuggestedStart.String() != "09:45" {
		t.Errorf("SuggestedStart = %s, want 09:45", adj.SuggestedStart)
	}
	if adj.Reason == "" {
		t.Error("adjustment must carry a reason")
	}
}

func TestSuggestAdjustments_SufficientBuffer(t *testing.T) {
	events := []tour.Event{
		visit("a", "08:30", "09:30"),
		visit("b", "09:45", "10:45"),
	}
	if adjustments := SuggestAdjustments(events, nil, nil); len(adjustments) != 0 {
		t.Errorf("got %d adjustments, want 0", len(adjustments))
	}
}

func TestSuggestAdjustments_SegmentDuration(t *testing.T) {
	segments := []tour.TravelSegment{
		{FromEventID: "a", ToEventID: "b", DurationMinutes: 30},
	}
	events := []tour.Event{
		visit("a", "08:30", "09:30"),
		visit("b", "09:45", "10:45"),
	}

	adjustments := SuggestAdjustments(events, nil, segments)
	if len(adjustments) != 1 {
		t.Fatalf("got %d adjustments, want 1", len(adjustments))
	}
	if adjustments[0].SuggestedStart.String() != "10:00" {
		t.Errorf("SuggestedStart = %s, want 10:00", adjustments[0].SuggestedStart)
	}
}

func TestSuggestAdjustments_NotTransitive(t *testing.T) {
	// b needs pushing past a; c is checked against b's CURRENT effective
	// times, not against where b would land after its own adjustment.
	events := []tour.Event{
		visit("a", "08:00", "09:00"),
		visit("b", "09:05", "10:05"),
		visit("c", "10:20", "11:20"),
	}

	adjustments := SuggestAdjustments(events, nil, nil)
	if len(adjustments) != 1 {
		t.Fatalf("got %d adjustments, want 1: c clears b's unadjusted end", len(adjustments))
	}
	if adjustments[0].EventID != "b" {
		t.Errorf("EventID = %s, want b", adjustments[0].EventID)
	}
}

func TestApplyAdjustment_PreservesDuration(t *testing.T) {
	events := []tour.Event{
		visit("a", "08:30", "09:30"),
		visit("b", "09:40", "10:40"),
	}
	adjustments := SuggestAdjustments(events, nil, nil)
	if len(adjustments) != 1 {
		t.Fatalf("got %d adjustments, want 1", len(adjustments))
	}

	ov, ok := ApplyAdjustment(events, nil, adjustments[0])
	if !ok {
		t.Fatal("ApplyAdjustment did not find the event")
	}
	if ov.NewStart.String() != "09:45" || ov.NewEnd.String() != "10:45" {
		t.Errorf("override = [%s, %s), want [09:45, 10:45)", ov.NewStart, ov.NewEnd)
	}

	// Re-running detection with the override staged resolves the flag.
	overrides := map[string]tour.TimeOverride{"b": ov}
	if adjustments := SuggestAdjustments(events, overrides, nil); len(adjustments) != 0 {
		t.Errorf("got %d adjustments after applying, want 0", len(adjustments))
	}
}
