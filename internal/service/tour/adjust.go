package tour

import (
	"fmt"

	"github.com/caredomi/homecare-backend-go/internal/domain/tour"
)

// SuggestAdjustments proposes pushing events forward so each one starts
// no earlier than the previous event's end plus the travel buffer.
// Advisory only; suggestions are not applied transitively, so applying
// one may surface new ones on the next detection run.
func SuggestAdjustments(
	events []tour.Event,
	overrides map[string]tour.TimeOverride,
	segments []tour.TravelSegment,
) []tour.Adjustment {
	sorted := sortedByEffectiveStart(events, overrides)
	idx := indexSegments(segments)

	var adjustments []tour.Adjustment
	for i := 1; i < len(sorted); i++ {
		prev := &sorted[i-1]
		current := &sorted[i]

		_, prevEnd := tour.EffectiveTimes(*prev, overrides)
		currentStart, _ := tour.EffectiveTimes(*current, overrides)

		travel := idx.travelMinutes(prev.ID, current.ID)
		minimumStart := prevEnd.Add(travel)

		if currentStart < minimumStart {
			adjustments = append(adjustments, tour.Adjustment{
				EventID:        current.ID,
				OriginalStart:  currentStart,
				SuggestedStart: minimumStart,
				Reason: fmt.Sprintf(
					"visit starts at %s but the previous visit ends at %s and needs %d minutes of travel",
					currentStart, prevEnd, travel,
				),
			})
		}
	}
	return adjustments
}

// ApplyAdjustment stages the suggested start as a time override for the
// event, preserving the event's effective duration.
func ApplyAdjustment(
	events []tour.Event,
	overrides map[string]tour.TimeOverride,
	adj tour.Adjustment,
) (tour.TimeOverride, bool) {
	for i := range events {
		if events[i].ID != adj.EventID {
			continue
		}
		start, end := tour.EffectiveTimes(events[i], overrides)
		duration := int(end - start)
		return tour.TimeOverride{
			NewStart: adj.SuggestedStart,
			NewEnd:   adj.SuggestedStart.Add(duration),
		}, true
	}
	return tour.TimeOverride{}, false
}
