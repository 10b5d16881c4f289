package tour

import (
	"github.com/caredomi/homecare-backend-go/internal/domain/tour"
)

// DetectOverlaps finds every pair of events whose effective half-open
// [start, end) windows intersect. Touching endpoints do not overlap.
// Pairwise scan; n is a daily visit count, realistically under 30.
func DetectOverlaps(events []tour.Event, overrides map[string]tour.TimeOverride) []tour.Overlap {
	sorted := sortedByEffectiveStart(events, overrides)

	var overlaps []tour.Overlap
	for i := 0; i < len(sorted); i++ {
		s1, e1 := tour.EffectiveTimes(sorted[i], overrides)
		for j := i + 1; j < len(sorted); j++ {
			s2, e2 := tour.EffectiveTimes(sorted[j], overrides)
			if s1 < e2 && s2 < e1 {
				overlaps = append(overlaps, tour.Overlap{
					Event1ID:     sorted[i].ID,
					Event2ID:     sorted[j].ID,
					OverlapStart: maxClock(s1, s2),
					OverlapEnd:   minClock(e1, e2),
				})
			}
		}
	}
	return overlaps
}

// OverlappingEventIDs collects the ids appearing in any overlap pair so
// the timeline builder can flag their event items.
func OverlappingEventIDs(overlaps []tour.Overlap) map[string]bool {
	ids := make(map[string]bool)
	for _, o := range overlaps {
		ids[o.Event1ID] = true
		ids[o.Event2ID] = true
	}
	return ids
}
