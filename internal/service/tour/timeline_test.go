package tour

import (
	"testing"

	"github.com/caredomi/homecare-backend-go/internal/domain/tour"
	"github.com/caredomi/homecare-backend-go/internal/pkg/timeutil"
)

func clockOf(t *testing.T, s string) timeutil.Clock {
	t.Helper()
	c, err := timeutil.ParseClock(s)
	if err != nil {
		t.Fatalf("ParseClock(%q): %v", s, err)
	}
	return c
}

func dayTour(start, end string) tour.Tour {
	return tour.Tour{ID: "tour-1", TimeStart: start, TimeEnd: end}
}

func assertItem(t *testing.T, item tour.TimelineItem, kind tour.TimelineItemKind, start, end string) {
	t.Helper()
	if item.Kind != kind {
		t.Errorf("kind = %s, want %s", item.Kind, kind)
	}
	if item.Start.String() != start || item.End.String() != end {
		t.Errorf("window = [%s, %s), want [%s, %s)", item.Start, item.End, start, end)
	}
}

func TestBuildTimeline_SingleEventNoTravelData(t *testing.T) {
	items := BuildTimeline(
		dayTour("08:00", "12:00"),
		[]tour.Event{visit("a", "09:00", "09:30")},
		nil, nil, nil,
	)

	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	assertItem(t, items[0], tour.ItemEmpty, "08:00", "09:00")
	assertItem(t, items[1], tour.ItemEvent, "09:00", "09:30")
	assertItem(t, items[2], tour.ItemEmpty, "09:30", "12:00")

	// Leading and trailing gaps have no bounding pair.
	if items[0].PrevEventID != "" || items[0].NextEventID != "" {
		t.Error("leading gap should carry no bounding event ids")
	}
	if items[2].PrevEventID != "" || items[2].NextEventID != "" {
		t.Error("trailing gap should carry no bounding event ids")
	}
}

func TestBuildTimeline_TravelFallbackAndResidualGap(t *testing.T) {
	// No segment data: 15-minute fallback between visits, and the
	// leftover until the next start becomes a bounded gap.
	items := BuildTimeline(
		dayTour("08:00", "12:00"),
		[]tour.Event{
			visit("a", "08:00", "09:00"),
			visit("b", "10:00", "11:00"),
		},
		nil, nil, nil,
	)

	if len(items) != 5 {
		t.Fatalf("got %d items, want 5", len(items))
	}
	assertItem(t, items[0], tour.ItemEvent, "08:00", "09:00")
	assertItem(t, items[1], tour.ItemTravel, "09:00", "09:15")
	assertItem(t, items[2], tour.ItemEmpty, "09:15", "10:00")
	assertItem(t, items[3], tour.ItemEvent, "10:00", "11:00")
	assertItem(t, items[4], tour.ItemEmpty, "11:00", "12:00")

	if items[1].FromEventID != "a" || items[1].ToEventID != "b" {
		t.Errorf("travel hop = %s->%s, want a->b", items[1].FromEventID, items[1].ToEventID)
	}
	if items[2].PrevEventID != "a" || items[2].NextEventID != "b" {
		t.Errorf("gap bounds = %s/%s, want a/b", items[2].PrevEventID, items[2].NextEventID)
	}
}

func TestBuildTimeline_SegmentDataReplacesFallback(t *testing.T) {
	segments := []tour.TravelSegment{
		{FromEventID: "a", ToEventID: "b", DistanceKm: 12.4, DurationMinutes: 25},
	}
	items := BuildTimeline(
		dayTour("08:00", "12:00"),
		[]tour.Event{
			visit("a", "08:00", "09:00"),
			visit("b", "09:30", "10:30"),
		},
		nil, segments, nil,
	)

	// event a, travel 25min, residual gap, event b, trailing gap
	if len(items) != 5 {
		t.Fatalf("got %d items, want 5", len(items))
	}
	assertItem(t, items[1], tour.ItemTravel, "09:00", "09:25")
	assertItem(t, items[2], tour.ItemEmpty, "09:25", "09:30")
}

func TestBuildTimeline_OverridesShiftEvents(t *testing.T) {
	overrides := map[string]tour.TimeOverride{
		"a": {NewStart: clockOf(t, "10:00"), NewEnd: clockOf(t, "10:30")},
	}
	items := BuildTimeline(
		dayTour("08:00", "12:00"),
		[]tour.Event{visit("a", "09:00", "09:30")},
		overrides, nil, nil,
	)

	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	assertItem(t, items[1], tour.ItemEvent, "10:00", "10:30")
}

func TestBuildTimeline_OverlappingEventsFlagged(t *testing.T) {
	events := []tour.Event{
		visit("a", "09:00", "10:00"),
		visit("b", "09:30", "10:30"),
	}
	flagged := OverlappingEventIDs(DetectOverlaps(events, nil))
	items := BuildTimeline(dayTour("08:00", "12:00"), events, nil, nil, flagged)

	var eventItems []tour.TimelineItem
	for _, item := range items {
		if item.Kind == tour.ItemEvent {
			eventItems = append(eventItems, item)
		}
	}
	if len(eventItems) != 2 {
		t.Fatalf("got %d event items, want 2", len(eventItems))
	}
	for _, item := range eventItems {
		if !item.Overlapping {
			t.Errorf("event %s not flagged overlapping", item.EventID)
		}
	}
}

func TestBuildTimeline_EmptyTour(t *testing.T) {
	items := BuildTimeline(dayTour("08:00", "12:00"), nil, nil, nil, nil)
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	assertItem(t, items[0], tour.ItemEmpty, "08:00", "12:00")
}
