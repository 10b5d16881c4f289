package tour

import (
	"testing"

	"github.com/caredomi/homecare-backend-go/internal/domain/tour"
)

func visit(id, start, end string) tour.Event {
	return tour.Event{ID: id, TimeStart: start, TimeEnd: end}
}

func TestDetectOverlaps_PartialOverlap(t *testing.T) {
	events := []tour.Event{
		visit("a", "09:00", "10:00"),
		visit("b", "09:30", "10:30"),
	}

	overlaps := DetectOverlaps(events, nil)
	if len(overlaps) != 1 {
		t.Fatalf("got %d overlaps, want 1", len(overlaps))
	}
	o := overlaps[0]
	if o.Event1ID != "a" || o.Event2ID != "b" {
		t.Errorf("pair = (%s, %s), want (a, b)", o.Event1ID, o.Event2ID)
	}
	if o.OverlapStart.String() != "09:30" || o.OverlapEnd.String() != "10:00" {
		t.Errorf("window = [%s, %s), want [09:30, 10:00)", o.OverlapStart, o.OverlapEnd)
	}
}

func TestDetectOverlaps_TouchingEndpointsDoNotOverlap(t *testing.T) {
	events := []tour.Event{
		visit("a", "09:00", "10:00"),
		visit("b", "10:00", "11:00"),
	}
	if overlaps := DetectOverlaps(events, nil); len(overlaps) != 0 {
		t.Errorf("got %d overlaps, want 0: half-open intervals touch without overlapping", len(overlaps))
	}
}

func TestDetectOverlaps_Containment(t *testing.T) {
	events := []tour.Event{
		visit("a", "09:00", "12:00"),
		visit("b", "10:00", "10:30"),
	}
	overlaps := DetectOverlaps(events, nil)
	if len(overlaps) != 1 {
		t.Fatalf("got %d overlaps, want 1", len(overlaps))
	}
	o := overlaps[0]
	if o.OverlapStart.String() != "10:00" || o.OverlapEnd.String() != "10:30" {
		t.Errorf("window = [%s, %s), want [10:00, 10:30)", o.OverlapStart, o.OverlapEnd)
	}
}

func TestDetectOverlaps_OverrideResolvesOverlap(t *testing.T) {
	events := []tour.Event{
		visit("a", "09:00", "10:00"),
		visit("b", "09:30", "10:30"),
	}
	overrides := map[string]tour.TimeOverride{
		"b": {NewStart: clockOf(t, "10:00"), NewEnd: clockOf(t, "11:00")},
	}
	if overlaps := DetectOverlaps(events, overrides); len(overlaps) != 0 {
		t.Errorf("got %d overlaps, want 0 after staged push-forward", len(overlaps))
	}
}

func TestDetectOverlaps_ThreeWay(t *testing.T) {
	events := []tour.Event{
		visit("a", "09:00", "11:00"),
		visit("b", "09:30", "10:00"),
		visit("c", "10:30", "11:30"),
	}
	overlaps := DetectOverlaps(events, nil)
	if len(overlaps) != 2 {
		t.Fatalf("got %d overlaps, want 2 (a-b, a-c)", len(overlaps))
	}

	flagged := OverlappingEventIDs(overlaps)
	for _, id := range []string{"a", "b", "c"} {
		if !flagged[id] {
			t.Errorf("event %s not flagged", id)
		}
	}
}
