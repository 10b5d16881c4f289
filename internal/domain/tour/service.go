package tour

import "context"

type Service interface {
	// Tours
	CreateTour(ctx context.Context, req CreateTourRequest) (TourResponse, error)
	GetTour(ctx context.Context, id string) (TourResponse, error)
	ListTours(ctx context.Context, employeeID, date string) ([]TourResponse, error)
	UpdateTour(ctx context.Context, req UpdateTourRequest) (TourResponse, error)
	DeleteTour(ctx context.Context, id string) error

	// Events
	CreateEvent(ctx context.Context, req CreateEventRequest) (EventResponse, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]EventResponse, error)
	UpdateEvent(ctx context.Context, req UpdateEventRequest) (EventResponse, error)
	// EventProximity ranks the unassigned events of the same day by
	// travel distance from the given event.
	EventProximity(ctx context.Context, eventID string) (ProximityResult, error)

	// Planner session: staged changes overlay the committed state until
	// saved or cancelled.
	GetTimeline(ctx context.Context, tourID string) (TimelineResponse, error)
	StageAssign(ctx context.Context, tourID, eventID string) (TimelineResponse, error)
	StageRemove(ctx context.Context, tourID, eventID string) (TimelineResponse, error)
	StageTimeChange(ctx context.Context, req TimeChangeRequest) (TimelineResponse, error)
	CancelChanges(ctx context.Context, tourID string) error
	SaveChanges(ctx context.Context, tourID string) (SaveChangesResponse, error)

	// ValidateTour asks the routing service for the authoritative verdict
	// on the tour as currently staged.
	ValidateTour(ctx context.Context, tourID string) (ValidationOutcome, error)
}
