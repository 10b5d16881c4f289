package tour

import (
	"sort"

	"github.com/caredomi/homecare-backend-go/internal/domain/tour"
	"github.com/caredomi/homecare-backend-go/internal/pkg/timeutil"
)

// sortedByEffectiveStart returns the events ordered by their effective
// start time, staged overrides applied. The input slice is not touched.
func sortedByEffectiveStart(events []tour.Event, overrides map[string]tour.TimeOverride) []tour.Event {
	sorted := make([]tour.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, _ := tour.EffectiveTimes(sorted[i], overrides)
		sj, _ := tour.EffectiveTimes(sorted[j], overrides)
		return si < sj
	})
	return sorted
}

type segmentIndex map[[2]string]int

func indexSegments(segments []tour.TravelSegment) segmentIndex {
	idx := make(segmentIndex, len(segments))
	for _, s := range segments {
		idx[[2]string{s.FromEventID, s.ToEventID}] = s.DurationMinutes
	}
	return idx
}

// travelMinutes returns the segment duration for the hop, or the fixed
// fallback when the routing data has no entry for it.
func (idx segmentIndex) travelMinutes(fromEventID, toEventID string) int {
	if d, ok := idx[[2]string{fromEventID, toEventID}]; ok {
		return d
	}
	return tour.DefaultTravelMinutes
}

func minClock(a, b timeutil.Clock) timeutil.Clock {
	if a < b {
		return a
	}
	return b
}

func maxClock(a, b timeutil.Clock) timeutil.Clock {
	if a > b {
		return a
	}
	return b
}
