package postgresql

import (
	"context"
	"strconv"
	"time"

	"github.com/caredomi/homecare-backend-go/internal/domain/tour"
	"github.com/caredomi/homecare-backend-go/internal/pkg/database"
)

type tourRepositoryImpl struct {
	db *database.DB
}

func NewTourRepository(db *database.DB) tour.TourRepository {
	return &tourRepositoryImpl{db: db}
}

const tourColumns = `id, employee_id, date, time_start, time_end, break_duration_minutes,
		   created_at, updated_at`

func (r *tourRepositoryImpl) scanTour(row interface{ Scan(...any) error }) (*tour.Tour, error) {
	var t tour.Tour
	err := row.Scan(
		&t.ID,
		&t.EmployeeID,
		&t.Date,
		&t.TimeStart,
		&t.TimeEnd,
		&t.BreakDurationMinutes,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create implements tour.TourRepository.
func (r *tourRepositoryImpl) Create(ctx context.Context, t *tour.Tour) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tours (employee_id, date, time_start, time_end, break_duration_minutes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	return q.QueryRow(ctx, query,
		t.EmployeeID,
		t.Date,
		t.TimeStart,
		t.TimeEnd,
		t.BreakDurationMinutes,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// GetByID implements tour.TourRepository.
func (r *tourRepositoryImpl) GetByID(ctx context.Context, id string) (*tour.Tour, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + tourColumns + ` FROM tours WHERE id = $1`
	return r.scanTour(q.QueryRow(ctx, query, id))
}

// ListByEmployeeAndDate implements tour.TourRepository.
func (r *tourRepositoryImpl) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]tour.Tour, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + tourColumns + `
		FROM tours
		WHERE employee_id = $1 AND date = $2
		ORDER BY time_start`

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tours []tour.Tour
	for rows.Next() {
		t, err := r.scanTour(rows)
		if err != nil {
			return nil, err
		}
		tours = append(tours, *t)
	}
	return tours, rows.Err()
}

// Update implements tour.TourRepository.
func (r *tourRepositoryImpl) Update(ctx context.Context, t *tour.Tour) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tours
		SET employee_id = $1, date = $2, time_start = $3, time_end = $4,
			break_duration_minutes = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`
	return q.QueryRow(ctx, query,
		t.EmployeeID,
		t.Date,
		t.TimeStart,
		t.TimeEnd,
		t.BreakDurationMinutes,
		t.ID,
	).Scan(&t.UpdatedAt)
}

// Delete implements tour.TourRepository. Events assigned to the tour
// return to the unassigned pool.
func (r *tourRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `UPDATE events SET tour_id = NULL, updated_at = NOW() WHERE tour_id = $1`, id)
	if err != nil {
		return err
	}

	query := `DELETE FROM tours WHERE id = $1 RETURNING id`
	var deleted string
	return q.QueryRow(ctx, query, id).Scan(&deleted)
}

type eventRepositoryImpl struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) tour.EventRepository {
	return &eventRepositoryImpl{db: db}
}

const eventColumns = `id, patient_id, care_plan_id, tour_id, date, time_start, time_end,
		   notes, created_at, updated_at`

func (r *eventRepositoryImpl) scanEvent(row interface{ Scan(...any) error }) (*tour.Event, error) {
	var e tour.Event
	err := row.Scan(
		&e.ID,
		&e.PatientID,
		&e.CarePlanID,
		&e.TourID,
		&e.Date,
		&e.TimeStart,
		&e.TimeEnd,
		&e.Notes,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create implements tour.EventRepository.
func (r *eventRepositoryImpl) Create(ctx context.Context, e *tour.Event) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO events (patient_id, care_plan_id, tour_id, date, time_start, time_end, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	return q.QueryRow(ctx, query,
		e.PatientID,
		e.CarePlanID,
		e.TourID,
		e.Date,
		e.TimeStart,
		e.TimeEnd,
		e.Notes,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// GetByID implements tour.EventRepository.
func (r *eventRepositoryImpl) GetByID(ctx context.Context, id string) (*tour.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return r.scanEvent(q.QueryRow(ctx, query, id))
}

// List implements tour.EventRepository.
func (r *eventRepositoryImpl) List(ctx context.Context, filter tour.EventFilter) ([]tour.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + eventColumns + ` FROM events WHERE date = $1`
	args := []any{filter.Date}

	if filter.TimeStartGte != "" {
		args = append(args, filter.TimeStartGte)
		query += ` AND time_start >= $` + strconv.Itoa(len(args))
	}
	if filter.TimeEndLte != "" {
		args = append(args, filter.TimeEndLte)
		query += ` AND time_end <= $` + strconv.Itoa(len(args))
	}
	if filter.Unassigned {
		query += ` AND tour_id IS NULL`
	}
	query += ` ORDER BY time_start`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []tour.Event
	for rows.Next() {
		e, err := r.scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// ListByTour implements tour.EventRepository.
func (r *eventRepositoryImpl) ListByTour(ctx context.Context, tourID string) ([]tour.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + eventColumns + ` FROM events WHERE tour_id = $1 ORDER BY time_start`

	rows, err := q.Query(ctx, query, tourID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []tour.Event
	for rows.Next() {
		e, err := r.scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// UpdateTimes implements tour.EventRepository.
func (r *eventRepositoryImpl) UpdateTimes(ctx context.Context, id, timeStart, timeEnd string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE events
		SET time_start = $1, time_end = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id
	`
	var updated string
	return q.QueryRow(ctx, query, timeStart, timeEnd, id).Scan(&updated)
}

// SetTour implements tour.EventRepository.
func (r *eventRepositoryImpl) SetTour(ctx context.Context, id string, tourID *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE events
		SET tour_id = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`
	var updated string
	return q.QueryRow(ctx, query, tourID, id).Scan(&updated)
}

// Update implements tour.EventRepository.
func (r *eventRepositoryImpl) Update(ctx context.Context, e *tour.Event) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE events
		SET patient_id = $1, care_plan_id = $2, tour_id = $3, date = $4,
			time_start = $5, time_end = $6, notes = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`
	return q.QueryRow(ctx, query,
		e.PatientID,
		e.CarePlanID,
		e.TourID,
		e.Date,
		e.TimeStart,
		e.TimeEnd,
		e.Notes,
		e.ID,
	).Scan(&e.UpdatedAt)
}

// Delete implements tour.EventRepository.
func (r *eventRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM events WHERE id = $1 RETURNING id`
	var deleted string
	return q.QueryRow(ctx, query, id).Scan(&deleted)
}
