package tour

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/caredomi/homecare-backend-go/internal/domain/tour"
	"github.com/caredomi/homecare-backend-go/internal/pkg/database"
	"github.com/caredomi/homecare-backend-go/internal/pkg/sse"
	"github.com/caredomi/homecare-backend-go/internal/pkg/timeutil"
	"github.com/jackc/pgx/v5"
)

type tourServiceImpl struct {
	db        *database.DB
	tourRepo  tour.TourRepository
	eventRepo tour.EventRepository
	travel    tour.TravelProvider
	validator tour.Validator
	hub       *sse.Hub

	mu       sync.Mutex
	sessions map[string]*plannerSession
}

func NewTourService(
	db *database.DB,
	tourRepo tour.TourRepository,
	eventRepo tour.EventRepository,
	travel tour.TravelProvider,
	validator tour.Validator,
	hub *sse.Hub,
) tour.Service {
	return &tourServiceImpl{
		db:        db,
		tourRepo:  tourRepo,
		eventRepo: eventRepo,
		travel:    travel,
		validator: validator,
		hub:       hub,
		sessions:  make(map[string]*plannerSession),
	}
}

func (s *tourServiceImpl) session(tourID string) *plannerSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[tourID]; ok {
		return sess
	}
	sess := newPlannerSession(func() {
		s.revalidate(tourID)
	})
	s.sessions[tourID] = sess
	return sess
}

// CreateTour implements tour.Service.
func (s *tourServiceImpl) CreateTour(ctx context.Context, req tour.CreateTourRequest) (tour.TourResponse, error) {
	if err := req.Validate(); err != nil {
		return tour.TourResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	t := &tour.Tour{
		EmployeeID:           req.EmployeeID,
		Date:                 date,
		TimeStart:            timeutil.NormalizeClock(req.TimeStart),
		TimeEnd:              timeutil.NormalizeClock(req.TimeEnd),
		BreakDurationMinutes: req.BreakDurationMinutes,
	}
	if err := s.tourRepo.Create(ctx, t); err != nil {
		return tour.TourResponse{}, fmt.Errorf("failed to create tour: %w", err)
	}
	return tourToResponse(t), nil
}

// GetTour implements tour.Service.
func (s *tourServiceImpl) GetTour(ctx context.Context, id string) (tour.TourResponse, error) {
	t, err := s.tourRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tour.TourResponse{}, tour.ErrTourNotFound
		}
		return tour.TourResponse{}, fmt.Errorf("failed to get tour: %w", err)
	}
	return tourToResponse(t), nil
}

// ListTours implements tour.Service.
func (s *tourServiceImpl) ListTours(ctx context.Context, employeeID, date string) ([]tour.TourResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, tour.ErrInvalidRequestData
	}
	tours, err := s.tourRepo.ListByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list tours: %w", err)
	}
	responses := make([]tour.TourResponse, 0, len(tours))
	for i := range tours {
		responses = append(responses, tourToResponse(&tours[i]))
	}
	return responses, nil
}

// UpdateTour implements tour.Service.
func (s *tourServiceImpl) UpdateTour(ctx context.Context, req tour.UpdateTourRequest) (tour.TourResponse, error) {
	if err := req.Validate(); err != nil {
		return tour.TourResponse{}, err
	}

	t, err := s.tourRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tour.TourResponse{}, tour.ErrTourNotFound
		}
		return tour.TourResponse{}, fmt.Errorf("failed to get tour: %w", err)
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	t.EmployeeID = req.EmployeeID
	t.Date = date
	t.TimeStart = timeutil.NormalizeClock(req.TimeStart)
	t.TimeEnd = timeutil.NormalizeClock(req.TimeEnd)
	t.BreakDurationMinutes = req.BreakDurationMinutes

	if err := s.tourRepo.Update(ctx, t); err != nil {
		return tour.TourResponse{}, fmt.Errorf("failed to update tour: %w", err)
	}
	return tourToResponse(t), nil
}

// DeleteTour implements tour.Service.
func (s *tourServiceImpl) DeleteTour(ctx context.Context, id string) error {
	if err := s.tourRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tour.ErrTourNotFound
		}
		return fmt.Errorf("failed to delete tour: %w", err)
	}

	s.mu.Lock()
	if sess, ok := s.sessions[id]; ok {
		sess.stop()
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	return nil
}

// CreateEvent implements tour.Service.
func (s *tourServiceImpl) CreateEvent(ctx context.Context, req tour.CreateEventRequest) (tour.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return tour.EventResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	e := &tour.Event{
		PatientID:  req.PatientID,
		CarePlanID: req.CarePlanID,
		Date:       date,
		TimeStart:  timeutil.NormalizeClock(req.TimeStart),
		TimeEnd:    timeutil.NormalizeClock(req.TimeEnd),
		Notes:      req.Notes,
	}
	if err := s.eventRepo.Create(ctx, e); err != nil {
		return tour.EventResponse{}, fmt.Errorf("failed to create event: %w", err)
	}
	return eventToResponse(e), nil
}

// ListEvents implements tour.Service.
func (s *tourServiceImpl) ListEvents(ctx context.Context, filter tour.EventFilter) ([]tour.EventResponse, error) {
	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	responses := make([]tour.EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, eventToResponse(&events[i]))
	}
	return responses, nil
}

// UpdateEvent implements tour.Service. The final window must still
// satisfy TimeStart < TimeEnd after partial fields are applied.
func (s *tourServiceImpl) UpdateEvent(ctx context.Context, req tour.UpdateEventRequest) (tour.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return tour.EventResponse{}, err
	}

	e, err := s.eventRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tour.EventResponse{}, tour.ErrEventNotFound
		}
		return tour.EventResponse{}, fmt.Errorf("failed to get event: %w", err)
	}

	if req.PatientID != nil {
		e.PatientID = *req.PatientID
	}
	if req.CarePlanID != nil {
		e.CarePlanID = req.CarePlanID
	}
	if req.Date != nil {
		date, _ := time.Parse("2006-01-02", *req.Date)
		e.Date = date
	}
	if req.TimeStart != nil {
		e.TimeStart = timeutil.NormalizeClock(*req.TimeStart)
	}
	if req.TimeEnd != nil {
		e.TimeEnd = timeutil.NormalizeClock(*req.TimeEnd)
	}
	if req.Notes != nil {
		e.Notes = req.Notes
	}
	if e.TimeEnd <= e.TimeStart {
		return tour.EventResponse{}, tour.ErrInvalidRequestData
	}

	if err := s.eventRepo.Update(ctx, e); err != nil {
		return tour.EventResponse{}, fmt.Errorf("failed to update event: %w", err)
	}
	return eventToResponse(e), nil
}

// EventProximity implements tour.Service.
func (s *tourServiceImpl) EventProximity(ctx context.Context, eventID string) (tour.ProximityResult, error) {
	e, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tour.ProximityResult{}, tour.ErrEventNotFound
		}
		return tour.ProximityResult{}, fmt.Errorf("failed to get event: %w", err)
	}

	candidates, err := s.eventRepo.List(ctx, tour.EventFilter{Date: e.Date, Unassigned: true})
	if err != nil {
		return tour.ProximityResult{}, fmt.Errorf("failed to list candidate events: %w", err)
	}

	targetIDs := make([]string, 0, len(candidates))
	for i := range candidates {
		if candidates[i].ID != e.ID {
			targetIDs = append(targetIDs, candidates[i].ID)
		}
	}
	if len(targetIDs) == 0 {
		return tour.ProximityResult{}, nil
	}

	result, err := s.travel.CalculateProximity(ctx, e.ID, targetIDs)
	if err != nil {
		return tour.ProximityResult{}, fmt.Errorf("failed to calculate proximity: %w", err)
	}
	return result, nil
}

// effectiveEvents merges the committed assignment set with the staged
// overlay: assignments added, removals dropped.
func (s *tourServiceImpl) effectiveEvents(ctx context.Context, tourID string, assign, remove map[string]bool) ([]tour.Event, error) {
	committed, err := s.eventRepo.ListByTour(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tour events: %w", err)
	}

	events := make([]tour.Event, 0, len(committed)+len(assign))
	seen := make(map[string]bool, len(committed))
	for _, e := range committed {
		if remove[e.ID] {
			continue
		}
		seen[e.ID] = true
		events = append(events, e)
	}
	for id := range assign {
		if seen[id] {
			continue
		}
		e, err := s.eventRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, tour.ErrEventNotFound
			}
			return nil, fmt.Errorf("failed to get staged event: %w", err)
		}
		events = append(events, *e)
	}
	return events, nil
}

// travelSegments fetches routing data for the given events. Routing
// failures degrade to no segments; the engines fall back to the default
// buffer.
func (s *tourServiceImpl) travelSegments(ctx context.Context, events []tour.Event) []tour.TravelSegment {
	if s.travel == nil || len(events) < 2 {
		return nil
	}
	ids := make([]string, 0, len(events))
	for i := range events {
		ids = append(ids, events[i].ID)
	}
	segments, err := s.travel.GetTravelSegments(ctx, ids)
	if err != nil {
		return nil
	}
	return segments
}

func (s *tourServiceImpl) buildTimeline(ctx context.Context, t *tour.Tour, sess *plannerSession) (tour.TimelineResponse, error) {
	assign, remove, overrides := sess.snapshot()

	events, err := s.effectiveEvents(ctx, t.ID, assign, remove)
	if err != nil {
		return tour.TimelineResponse{}, err
	}
	segments := s.travelSegments(ctx, events)

	overlaps := DetectOverlaps(events, overrides)
	adjustments := SuggestAdjustments(events, overrides, segments)
	items := BuildTimeline(*t, events, overrides, segments, OverlappingEventIDs(overlaps))

	resp := tour.TimelineResponse{
		TourID:    t.ID,
		HasStaged: len(assign)+len(remove)+len(overrides) > 0,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, tour.TimelineItemResponse{
			Kind:        string(item.Kind),
			TimeStart:   item.Start.String(),
			TimeEnd:     item.End.String(),
			EventID:     item.EventID,
			Overlapping: item.Overlapping,
			FromEventID: item.FromEventID,
			ToEventID:   item.ToEventID,
			PrevEventID: item.PrevEventID,
			NextEventID: item.NextEventID,
		})
	}
	for _, o := range overlaps {
		resp.Overlaps = append(resp.Overlaps, tour.OverlapResponse{
			Event1ID:     o.Event1ID,
			Event2ID:     o.Event2ID,
			OverlapStart: o.OverlapStart.String(),
			OverlapEnd:   o.OverlapEnd.String(),
		})
	}
	for _, a := range adjustments {
		resp.Adjustments = append(resp.Adjustments, tour.AdjustmentResponse{
			EventID:        a.EventID,
			OriginalStart:  a.OriginalStart.String(),
			SuggestedStart: a.SuggestedStart.String(),
			Reason:         a.Reason,
		})
	}
	return resp, nil
}

// GetTimeline implements tour.Service.
func (s *tourServiceImpl) GetTimeline(ctx context.Context, tourID string) (tour.TimelineResponse, error) {
	t, err := s.tourRepo.GetByID(ctx, tourID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tour.TimelineResponse{}, tour.ErrTourNotFound
		}
		return tour.TimelineResponse{}, fmt.Errorf("failed to get tour: %w", err)
	}
	return s.buildTimeline(ctx, t, s.session(tourID))
}

// StageAssign implements tour.Service.
func (s *tourServiceImpl) StageAssign(ctx context.Context, tourID, eventID string) (tour.TimelineResponse, error) {
	t, err := s.tourRepo.GetByID(ctx, tourID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tour.TimelineResponse{}, tour.ErrTourNotFound
		}
		return tour.TimelineResponse{}, fmt.Errorf("failed to get tour: %w", err)
	}

	e, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tour.TimelineResponse{}, tour.ErrEventNotFound
		}
		return tour.TimelineResponse{}, fmt.Errorf("failed to get event: %w", err)
	}

	sess := s.session(tourID)
	_, remove, _ := sess.snapshot()
	if e.TourID != nil && *e.TourID == tourID && !remove[eventID] {
		return tour.TimelineResponse{}, tour.ErrEventAlreadyInTour
	}

	sess.stageAssign(eventID)
	sess.scheduleRevalidate()
	return s.buildTimeline(ctx, t, sess)
}

// StageRemove implements tour.Service.
func (s *tourServiceImpl) StageRemove(ctx context.Context, tourID, eventID string) (tour.TimelineResponse, error) {
	t, err := s.tourRepo.GetByID(ctx, tourID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tour.TimelineResponse{}, tour.ErrTourNotFound
		}
		return tour.TimelineResponse{}, fmt.Errorf("failed to get tour: %w", err)
	}

	sess := s.session(tourID)
	assign, _, _ := sess.snapshot()

	e, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tour.TimelineResponse{}, tour.ErrEventNotFound
		}
		return tour.TimelineResponse{}, fmt.Errorf("failed to get event: %w", err)
	}
	assigned := (e.TourID != nil && *e.TourID == tourID) || assign[eventID]
	if !assigned {
		return tour.TimelineResponse{}, tour.ErrEventNotInTour
	}

	sess.stageRemove(eventID)
	sess.scheduleRevalidate()
	return s.buildTimeline(ctx, t, sess)
}

// StageTimeChange implements tour.Service.
func (s *tourServiceImpl) StageTimeChange(ctx context.Context, req tour.TimeChangeRequest) (tour.TimelineResponse, error) {
	req.TimeStart = timeutil.NormalizeClock(req.TimeStart)
	req.TimeEnd = timeutil.NormalizeClock(req.TimeEnd)
	if err := req.Validate(); err != nil {
		return tour.TimelineResponse{}, err
	}

	t, err := s.tourRepo.GetByID(ctx, req.TourID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tour.TimelineResponse{}, tour.ErrTourNotFound
		}
		return tour.TimelineResponse{}, fmt.Errorf("failed to get tour: %w", err)
	}

	start, _ := timeutil.ParseClock(req.TimeStart)
	end, _ := timeutil.ParseClock(req.TimeEnd)

	sess := s.session(req.TourID)
	sess.stageTimeChange(req.EventID, tour.TimeOverride{NewStart: start, NewEnd: end})
	sess.scheduleRevalidate()
	return s.buildTimeline(ctx, t, sess)
}

// CancelChanges implements tour.Service.
func (s *tourServiceImpl) CancelChanges(ctx context.Context, tourID string) error {
	s.session(tourID).clear()
	return nil
}

// SaveChanges implements tour.Service. Each staged change is persisted
// with its own call, in sequence. A failure stops the batch; changes
// already persisted stay committed and are dropped from the session,
// the rest remain staged.
func (s *tourServiceImpl) SaveChanges(ctx context.Context, tourID string) (tour.SaveChangesResponse, error) {
	if _, err := s.tourRepo.GetByID(ctx, tourID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tour.SaveChangesResponse{}, tour.ErrTourNotFound
		}
		return tour.SaveChangesResponse{}, fmt.Errorf("failed to get tour: %w", err)
	}

	sess := s.session(tourID)
	assign, remove, overrides := sess.snapshot()

	var resp tour.SaveChangesResponse

	for id := range assign {
		if err := s.eventRepo.SetTour(ctx, id, &tourID); err != nil {
			resp.Results = append(resp.Results, tour.SaveItemResult{
				Kind: "assign", EventID: id, Error: err.Error(),
			})
			return resp, nil
		}
		resp.Results = append(resp.Results, tour.SaveItemResult{
			Kind: "assign", EventID: id, Success: true,
		})
		sess.mu.Lock()
		delete(sess.toAssign, id)
		sess.mu.Unlock()
	}
	for id := range remove {
		if err := s.eventRepo.SetTour(ctx, id, nil); err != nil {
			resp.Results = append(resp.Results, tour.SaveItemResult{
				Kind: "remove", EventID: id, Error: err.Error(),
			})
			return resp, nil
		}
		resp.Results = append(resp.Results, tour.SaveItemResult{
			Kind: "remove", EventID: id, Success: true,
		})
		sess.mu.Lock()
		delete(sess.toRemove, id)
		sess.mu.Unlock()
	}
	for id, ov := range overrides {
		if err := s.eventRepo.UpdateTimes(ctx, id, ov.NewStart.String(), ov.NewEnd.String()); err != nil {
			resp.Results = append(resp.Results, tour.SaveItemResult{
				Kind: "time_change", EventID: id, Error: err.Error(),
			})
			return resp, nil
		}
		resp.Results = append(resp.Results, tour.SaveItemResult{
			Kind: "time_change", EventID: id, Success: true,
		})
		sess.mu.Lock()
		delete(sess.overrides, id)
		sess.mu.Unlock()
	}

	resp.Completed = true
	return resp, nil
}

// ValidateTour implements tour.Service.
func (s *tourServiceImpl) ValidateTour(ctx context.Context, tourID string) (tour.ValidationOutcome, error) {
	t, err := s.tourRepo.GetByID(ctx, tourID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tour.ValidationOutcome{}, tour.ErrTourNotFound
		}
		return tour.ValidationOutcome{}, fmt.Errorf("failed to get tour: %w", err)
	}

	sess := s.session(tourID)
	seq := sess.nextValidationSeq()

	proposed, err := s.proposedTour(ctx, t, sess)
	if err != nil {
		return tour.ValidationOutcome{}, err
	}

	outcome, err := s.validator.ValidateProposedTour(ctx, proposed)
	if err != nil {
		return tour.ValidationOutcome{}, fmt.Errorf("failed to validate tour: %w", err)
	}
	if !sess.applyValidationOutcome(seq, outcome) {
		return outcome, tour.ErrValidationSuperseded
	}
	s.publishOutcome(tourID, outcome)
	return outcome, nil
}

// revalidate is the debounced background validation pass. Errors are
// dropped; the next staged change schedules another attempt.
func (s *tourServiceImpl) revalidate(tourID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	t, err := s.tourRepo.GetByID(ctx, tourID)
	if err != nil {
		return
	}
	sess := s.session(tourID)
	seq := sess.nextValidationSeq()

	proposed, err := s.proposedTour(ctx, t, sess)
	if err != nil {
		return
	}
	outcome, err := s.validator.ValidateProposedTour(ctx, proposed)
	if err != nil {
		return
	}
	if sess.applyValidationOutcome(seq, outcome) {
		s.publishOutcome(tourID, outcome)
	}
}

// publishOutcome pushes a fresh validation outcome to every open
// planner on the tour.
func (s *tourServiceImpl) publishOutcome(tourID string, outcome tour.ValidationOutcome) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(tourID, sse.Event{
		Topic: tourID,
		Event: "validation_outcome",
		Data:  outcome,
	})
}

func (s *tourServiceImpl) proposedTour(ctx context.Context, t *tour.Tour, sess *plannerSession) (tour.ProposedTour, error) {
	assign, remove, overrides := sess.snapshot()
	events, err := s.effectiveEvents(ctx, t.ID, assign, remove)
	if err != nil {
		return tour.ProposedTour{}, err
	}

	proposed := tour.ProposedTour{
		TourID:     t.ID,
		EmployeeID: t.EmployeeID,
		Date:       t.Date,
		TimeStart:  t.TimeStart,
		TimeEnd:    t.TimeEnd,
	}
	for _, e := range sortedByEffectiveStart(events, overrides) {
		start, end := tour.EffectiveTimes(e, overrides)
		proposed.Visits = append(proposed.Visits, tour.ProposedVisit{
			EventID:   e.ID,
			TimeStart: start.String(),
			TimeEnd:   end.String(),
		})
	}
	return proposed, nil
}

func tourToResponse(t *tour.Tour) tour.TourResponse {
	return tour.TourResponse{
		ID:                   t.ID,
		EmployeeID:           t.EmployeeID,
		Date:                 t.Date.Format("2006-01-02"),
		TimeStart:            t.TimeStart,
		TimeEnd:              t.TimeEnd,
		BreakDurationMinutes: t.BreakDurationMinutes,
		CreatedAt:            t.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:            t.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func eventToResponse(e *tour.Event) tour.EventResponse {
	return tour.EventResponse{
		ID:         e.ID,
		PatientID:  e.PatientID,
		CarePlanID: e.CarePlanID,
		TourID:     e.TourID,
		Date:       e.Date.Format("2006-01-02"),
		TimeStart:  e.TimeStart,
		TimeEnd:    e.TimeEnd,
		Notes:      e.Notes,
	}
}
