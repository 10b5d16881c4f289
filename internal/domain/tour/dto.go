package tour

import (
	"github.com/caredomi/homecare-backend-go/internal/pkg/validator"
)

type CreateTourRequest struct {
	EmployeeID           string `json:"employee_id"`
	Date                 string `json:"date"`
	TimeStart            string `json:"time_start"`
	TimeEnd              string `json:"time_end"`
	BreakDurationMinutes int    `json:"break_duration_minutes"`
}

func (r *CreateTourRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be a valid date in YYYY-MM-DD format",
		})
	}
	start, startOK := validator.IsValidClockTime(r.TimeStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "time_start",
			Message: "time_start must be a valid time in HH:MM format",
		})
	}
	end, endOK := validator.IsValidClockTime(r.TimeEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "time_end",
			Message: "time_end must be a valid time in HH:MM format",
		})
	}
	if startOK && endOK && end <= start {
		errs = append(errs, validator.ValidationError{
			Field:   "time_end",
			Message: "time_end must be after time_start",
		})
	}
	if r.BreakDurationMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_duration_minutes",
			Message: "break_duration_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateTourRequest struct {
	ID string `json:"-"`
	CreateTourRequest
}

func (r *UpdateTourRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if err := r.CreateTourRequest.Validate(); err != nil {
		if inner, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, inner...)
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateEventRequest struct {
	PatientID  string  `json:"patient_id"`
	CarePlanID *string `json:"care_plan_id,omitempty"`
	Date       string  `json:"date"`
	TimeStart  string  `json:"time_start"`
	TimeEnd    string  `json:"time_end"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *CreateEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PatientID) {
		errs = append(errs, validator.ValidationError{
			Field:   "patient_id",
			Message: "patient_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be a valid date in YYYY-MM-DD format",
		})
	}
	start, startOK := validator.IsValidClockTime(r.TimeStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "time_start",
			Message: "time_start must be a valid time in HH:MM format",
		})
	}
	end, endOK := validator.IsValidClockTime(r.TimeEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "time_end",
			Message: "time_end must be a valid time in HH:MM format",
		})
	}
	if startOK && endOK && end <= start {
		errs = append(errs, validator.ValidationError{
			Field:   "time_end",
			Message: "time_end must be after time_start",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateEventRequest carries a partial event update. Nil fields are
// left unchanged.
type UpdateEventRequest struct {
	ID         string  `json:"-"`
	PatientID  *string `json:"patient_id,omitempty"`
	CarePlanID *string `json:"care_plan_id,omitempty"`
	Date       *string `json:"date,omitempty"`
	TimeStart  *string `json:"time_start,omitempty"`
	TimeEnd    *string `json:"time_end,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *UpdateEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.PatientID != nil && validator.IsEmpty(*r.PatientID) {
		errs = append(errs, validator.ValidationError{
			Field:   "patient_id",
			Message: "patient_id must not be empty",
		})
	}
	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be a valid date in YYYY-MM-DD format",
			})
		}
	}
	if r.TimeStart != nil {
		if _, ok := validator.IsValidClockTime(*r.TimeStart); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "time_start",
				Message: "time_start must be a valid time in HH:MM format",
			})
		}
	}
	if r.TimeEnd != nil {
		if _, ok := validator.IsValidClockTime(*r.TimeEnd); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "time_end",
				Message: "time_end must be a valid time in HH:MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// TimeChangeRequest stages a new window for one assigned event. Times
// are normalized before validation so datetime-picker values are
// accepted.
type TimeChangeRequest struct {
	TourID    string `json:"-"`
	EventID   string `json:"event_id"`
	TimeStart string `json:"time_start"`
	TimeEnd   string `json:"time_end"`
}

func (r *TimeChangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TourID) {
		errs = append(errs, validator.ValidationError{
			Field:   "tour_id",
			Message: "tour_id is required",
		})
	}
	if validator.IsEmpty(r.EventID) {
		errs = append(errs, validator.ValidationError{
			Field:   "event_id",
			Message: "event_id is required",
		})
	}
	start, startOK := validator.IsValidClockTime(r.TimeStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "time_start",
			Message: "time_start must be a valid time in HH:MM format",
		})
	}
	end, endOK := validator.IsValidClockTime(r.TimeEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "time_end",
			Message: "time_end must be a valid time in HH:MM format",
		})
	}
	if startOK && endOK && end <= start {
		errs = append(errs, validator.ValidationError{
			Field:   "time_end",
			Message: "time_end must be after time_start",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TourResponse struct {
	ID                   string `json:"id"`
	EmployeeID           string `json:"employee_id"`
	Date                 string `json:"date"`
	TimeStart            string `json:"time_start"`
	TimeEnd              string `json:"time_end"`
	BreakDurationMinutes int    `json:"break_duration_minutes"`
	CreatedAt            string `json:"created_at"`
	UpdatedAt            string `json:"updated_at"`
}

type EventResponse struct {
	ID         string  `json:"id"`
	PatientID  string  `json:"patient_id"`
	CarePlanID *string `json:"care_plan_id,omitempty"`
	TourID     *string `json:"tour_id,omitempty"`
	Date       string  `json:"date"`
	TimeStart  string  `json:"time_start"`
	TimeEnd    string  `json:"time_end"`
	Notes      *string `json:"notes,omitempty"`
}

type TimelineItemResponse struct {
	Kind        string `json:"kind"`
	TimeStart   string `json:"time_start"`
	TimeEnd     string `json:"time_end"`
	EventID     string `json:"event_id,omitempty"`
	Overlapping bool   `json:"overlapping,omitempty"`
	FromEventID string `json:"from_event_id,omitempty"`
	ToEventID   string `json:"to_event_id,omitempty"`
	PrevEventID string `json:"prev_event_id,omitempty"`
	NextEventID string `json:"next_event_id,omitempty"`
}

type OverlapResponse struct {
	Event1ID     string `json:"event1_id"`
	Event2ID     string `json:"event2_id"`
	OverlapStart string `json:"overlap_start"`
	OverlapEnd   string `json:"overlap_end"`
}

type AdjustmentResponse struct {
	EventID        string `json:"event_id"`
	OriginalStart  string `json:"original_start"`
	SuggestedStart string `json:"suggested_start"`
	Reason         string `json:"reason"`
}

// TimelineResponse is the planner's working view of one tour: the
// ordered segments with any staged overrides applied, plus the local
// overlap and adjustment feedback.
type TimelineResponse struct {
	TourID      string                 `json:"tour_id"`
	Items       []TimelineItemResponse `json:"items"`
	Overlaps    []OverlapResponse      `json:"overlaps"`
	Adjustments []AdjustmentResponse   `json:"adjustments"`
	HasStaged   bool                   `json:"has_staged_changes"`
}

// SaveItemResult is the outcome of one persisted staged change. Saves
// run sequentially and independently; a failure stops the batch but
// does not roll back items already committed.
type SaveItemResult struct {
	Kind    string `json:"kind"` // assign, remove, time_change
	EventID string `json:"event_id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type SaveChangesResponse struct {
	Results   []SaveItemResult `json:"results"`
	Completed bool             `json:"completed"`
}
