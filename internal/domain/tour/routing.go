package tour

import (
	"context"
	"time"
)

type ProximityHit struct {
	EventID         string  `json:"event_id"`
	Rank            int     `json:"rank"`
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes int     `json:"duration_minutes"`
}

type ProximityResult struct {
	ClosestEvents   []ProximityHit `json:"closest_events"`
	CacheHits       int            `json:"cache_hits"`
	TotalCalculated int            `json:"total_calculated"`
}

type ProposedVisit struct {
	EventID   string `json:"event_id"`
	TimeStart string `json:"time_start"`
	TimeEnd   string `json:"time_end"`
}

type ProposedTour struct {
	TourID     string          `json:"tour_id"`
	EmployeeID string          `json:"employee_id"`
	Date       time.Time       `json:"date"`
	TimeStart  string          `json:"time_start"`
	TimeEnd    string          `json:"time_end"`
	Visits     []ProposedVisit `json:"visits"`
}

type ValidationIssue struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	EventIDs []string `json:"event_ids,omitempty"`
}

type TourStatistics struct {
	TotalVisits   int `json:"total_visits"`
	CareMinutes   int `json:"care_minutes"`
	TravelMinutes int `json:"travel_minutes"`
	IdleMinutes   int `json:"idle_minutes"`
}

// ValidationOutcome is the routing service's authoritative verdict on a
// proposed tour. The local overlap detector is only the immediate
// approximation shown while this round-trip is in flight.
type ValidationOutcome struct {
	IsValid                 bool              `json:"is_valid"`
	Errors                  []ValidationIssue `json:"errors"`
	Warnings                []ValidationIssue `json:"warnings"`
	Statistics              TourStatistics    `json:"statistics"`
	OptimizationSuggestions []string          `json:"optimization_suggestions"`
	TravelSegments          []TravelSegment   `json:"travel_segments"`
}

// TravelProvider supplies travel estimates between visit locations. The
// tour engines only consume its output, they never compute distances.
type TravelProvider interface {
	GetTravelSegments(ctx context.Context, eventIDs []string) ([]TravelSegment, error)
	CalculateProximity(ctx context.Context, sourceEventID string, targetEventIDs []string) (ProximityResult, error)
}

// Validator delegates the authoritative feasibility check to the
// routing service.
type Validator interface {
	ValidateProposedTour(ctx context.Context, proposed ProposedTour) (ValidationOutcome, error)
}
