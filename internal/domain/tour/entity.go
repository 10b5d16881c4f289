package tour

import (
	"time"

	"github.com/caredomi/homecare-backend-go/internal/pkg/timeutil"
)

// Event is one care visit at a patient's home. Times are zero-padded
// "HH:MM" with TimeStart strictly before TimeEnd; visits never span
// midnight.
type Event struct {
	ID         string
	PatientID  string
	CarePlanID *string
	TourID     *string // nil while unassigned
	Date       time.Time
	TimeStart  string
	TimeEnd    string
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Tour is one employee's ordered set of visits for one date.
type Tour struct {
	ID                   string
	EmployeeID           string
	Date                 time.Time
	TimeStart            string
	TimeEnd              string
	BreakDurationMinutes int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TravelSegment is the estimated hop between two consecutive visit
// locations. Derived by the routing collaborator, never stored.
type TravelSegment struct {
	FromEventID     string
	ToEventID       string
	DistanceKm      float64
	DurationMinutes int
}

// DefaultTravelMinutes is assumed between consecutive visits when the
// routing collaborator has no segment data. Missing data is a fallback,
// not a failure.
const DefaultTravelMinutes = 15

// TimeOverride is one staged, uncommitted change to an event's window.
type TimeOverride struct {
	NewStart timeutil.Clock
	NewEnd   timeutil.Clock
}

// EffectiveTimes resolves the event's window with any staged override
// applied. The canonical event is never mutated before commit.
func EffectiveTimes(e Event, overrides map[string]TimeOverride) (timeutil.Clock, timeutil.Clock) {
	if ov, ok := overrides[e.ID]; ok {
		return ov.NewStart, ov.NewEnd
	}
	start, _ := timeutil.ParseClock(e.TimeStart)
	end, _ := timeutil.ParseClock(e.TimeEnd)
	return start, end
}

type TimelineItemKind string

const (
	ItemEvent  TimelineItemKind = "event"
	ItemTravel TimelineItemKind = "travel"
	ItemEmpty  TimelineItemKind = "empty"
)

// TimelineItem is one segment of a tour's day. The items of a built
// timeline cover [tour.TimeStart, tour.TimeEnd] in order.
type TimelineItem struct {
	Kind  TimelineItemKind
	Start timeutil.Clock
	End   timeutil.Clock

	// event items
	EventID     string
	Overlapping bool

	// travel items
	FromEventID string
	ToEventID   string

	// empty items: bounding events for "remove gap" actions, set only
	// when both neighbours exist.
	PrevEventID string
	NextEventID string
}

// Overlap is one pair of visits whose half-open windows intersect.
type Overlap struct {
	Event1ID     string
	Event2ID     string
	OverlapStart timeutil.Clock
	OverlapEnd   timeutil.Clock
}

// Adjustment proposes pushing one visit forward so it starts no earlier
// than the previous visit's end plus the travel buffer. Advisory only.
type Adjustment struct {
	EventID        string
	OriginalStart  timeutil.Clock
	SuggestedStart timeutil.Clock
	Reason         string
}
