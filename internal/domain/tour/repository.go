package tour

import (
	"context"
	"time"
)

type EventFilter struct {
	Date         time.Time
	TimeStartGte string // HH:MM, optional
	TimeEndLte   string // HH:MM, optional
	Unassigned   bool
}

type TourRepository interface {
	Create(ctx context.Context, t *Tour) error
	GetByID(ctx context.Context, id string) (*Tour, error)
	ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]Tour, error)
	Update(ctx context.Context, t *Tour) error
	Delete(ctx context.Context, id string) error
}

type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter) ([]Event, error)
	ListByTour(ctx context.Context, tourID string) ([]Event, error)
	// UpdateTimes writes a committed time change back to the event.
	UpdateTimes(ctx context.Context, id, timeStart, timeEnd string) error
	// SetTour assigns or clears (tourID == nil) the event's tour.
	SetTour(ctx context.Context, id string, tourID *string) error
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id string) error
}
