package tour

import (
	"github.com/caredomi/homecare-backend-go/internal/domain/tour"
	"github.com/caredomi/homecare-backend-go/internal/pkg/timeutil"
)

// BuildTimeline lays the tour's events out as an ordered sequence of
// event, travel and empty items covering [tour.TimeStart, tour.TimeEnd].
// A single cursor sweeps forward over the events sorted by effective
// start; travel after the last event is not emitted.
func BuildTimeline(
	t tour.Tour,
	events []tour.Event,
	overrides map[string]tour.TimeOverride,
	segments []tour.TravelSegment,
	overlapping map[string]bool,
) []tour.TimelineItem {
	sorted := sortedByEffectiveStart(events, overrides)
	idx := indexSegments(segments)

	tourStart, _ := timeutil.ParseClock(t.TimeStart)
	tourEnd, _ := timeutil.ParseClock(t.TimeEnd)

	var items []tour.TimelineItem
	cursor := tourStart

	for i := range sorted {
		event := &sorted[i]
		start, end := tour.EffectiveTimes(*event, overrides)

		if cursor < start {
			gap := tour.TimelineItem{
				Kind:  tour.ItemEmpty,
				Start: cursor,
				End:   start,
			}
			// Bounding ids only when the gap sits between two events.
			if i > 0 {
				gap.PrevEventID = sorted[i-1].ID
				gap.NextEventID = event.ID
			}
			items = append(items, gap)
		}

		items = append(items, tour.TimelineItem{
			Kind:        tour.ItemEvent,
			Start:       start,
			End:         end,
			EventID:     event.ID,
			Overlapping: overlapping[event.ID],
		})
		cursor = maxClock(cursor, end)

		if i+1 < len(sorted) {
			next := &sorted[i+1]
			nextStart, _ := tour.EffectiveTimes(*next, overrides)
			travel := idx.travelMinutes(event.ID, next.ID)

			items = append(items, tour.TimelineItem{
				Kind:        tour.ItemTravel,
				Start:       cursor,
				End:         cursor.Add(travel),
				FromEventID: event.ID,
				ToEventID:   next.ID,
			})
			if afterTravel := cursor.Add(travel); afterTravel < nextStart {
				items = append(items, tour.TimelineItem{
					Kind:        tour.ItemEmpty,
					Start:       afterTravel,
					End:         nextStart,
					PrevEventID: event.ID,
					NextEventID: next.ID,
				})
			}
			cursor = nextStart
		}
	}

	if cursor < tourEnd {
		items = append(items, tour.TimelineItem{
			Kind:  tour.ItemEmpty,
			Start: cursor,
			End:   tourEnd,
		})
	}

	return items
}
