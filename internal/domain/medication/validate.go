package medication

import (
	"strings"

	"github.com/caredomi/homecare-backend-go/internal/pkg/validator"
)

// Validate checks a candidate rule for structural validity before
// persistence. It is pure and total: malformed input yields field-level
// errors, never a panic. Field names match the wire format so the map
// can be surfaced to the console as-is.
func (r *ScheduleRule) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(string(r.Kind), ScheduleKindValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "schedule_kind",
			Message: "schedule_kind must be one of: " + strings.Join(ScheduleKindValues, ", "),
		})
	}
	if r.Dose <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "dose",
			Message: "dose must be greater than 0",
		})
	}
	if r.ValidFrom != nil && r.ValidUntil != nil && r.ValidUntil.Before(*r.ValidFrom) {
		errs = append(errs, validator.ValidationError{
			Field:   "valid_until",
			Message: "valid_until must not be before valid_from",
		})
	}

	errs = append(errs, r.validateExclusivePayload()...)

	switch r.Kind {
	case KindParts:
		errs = append(errs, r.validateParts()...)
	case KindTimes:
		errs = append(errs, r.validateTimes()...)
	case KindWeekly:
		errs = append(errs, r.validateWeekly()...)
	case KindMonthly:
		errs = append(errs, r.validateMonthly()...)
	case KindSpecific:
		errs = append(errs, r.validateSpecific()...)
	case KindPRN:
		errs = append(errs, r.validatePRN()...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// validateExclusivePayload rejects payloads populated for a kind other
// than the declared one. The declared kind's own payload is checked by
// the per-kind validators.
func (r *ScheduleRule) validateExclusivePayload() validator.ValidationErrors {
	var errs validator.ValidationErrors

	stray := func(field string, kind ScheduleKind, populated bool) {
		if populated && r.Kind != kind {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: "must not be set when schedule_kind is " + string(r.Kind),
			})
		}
	}

	stray("parts_of_day", KindParts, r.Parts != nil)
	stray("exact_times", KindTimes, r.Times != nil)
	stray("weekdays", KindWeekly, r.Weekly != nil)
	stray("days_of_month", KindMonthly, r.Monthly != nil)
	stray("specific_datetimes", KindSpecific, r.Specific != nil)
	stray("prn_condition", KindPRN, r.PRN != nil)

	return errs
}

func (r *ScheduleRule) validateParts() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if r.Parts == nil || len(r.Parts.PartsOfDay) == 0 {
		return append(errs, validator.ValidationError{
			Field:   "parts_of_day",
			Message: "at least one part of day is required",
		})
	}
	seen := make(map[PartOfDay]bool)
	for _, p := range r.Parts.PartsOfDay {
		if !validator.IsInSlice(string(p), PartOfDayValues) {
			errs = append(errs, validator.ValidationError{
				Field:   "parts_of_day",
				Message: "parts_of_day entries must be one of: " + strings.Join(PartOfDayValues, ", "),
			})
			break
		}
		if seen[p] {
			errs = append(errs, validator.ValidationError{
				Field:   "parts_of_day",
				Message: "parts_of_day must not contain duplicates",
			})
			break
		}
		seen[p] = true
	}
	return errs
}

func (r *ScheduleRule) validateTimes() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if r.Times == nil || len(r.Times.ExactTimes) == 0 {
		return append(errs, validator.ValidationError{
			Field:   "exact_times",
			Message: "at least one time is required",
		})
	}
	for _, tm := range r.Times.ExactTimes {
		if _, ok := validator.IsValidClockTime(tm); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "exact_times",
				Message: "each time must be a valid time in HH:MM format",
			})
			break
		}
	}
	return errs
}

func (r *ScheduleRule) validateWeekly() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if r.Weekly == nil || len(r.Weekly.Weekdays) == 0 {
		return append(errs, validator.ValidationError{
			Field:   "weekdays",
			Message: "at least one weekday is required",
		})
	}
	seen := make(map[int]bool)
	for _, d := range r.Weekly.Weekdays {
		if d < 0 || d > 6 {
			errs = append(errs, validator.ValidationError{
				Field:   "weekdays",
				Message: "weekdays must be between 0 (Monday) and 6 (Sunday)",
			})
			break
		}
		if seen[d] {
			errs = append(errs, validator.ValidationError{
				Field:   "weekdays",
				Message: "weekdays must not contain duplicates",
			})
			break
		}
		seen[d] = true
	}
	if _, ok := validator.IsValidClockTime(r.Weekly.Time); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "weekly_time",
			Message: "weekly_time must be a valid time in HH:MM format",
		})
	}
	return errs
}

func (r *ScheduleRule) validateMonthly() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if r.Monthly == nil || len(r.Monthly.DaysOfMonth) == 0 {
		return append(errs, validator.ValidationError{
			Field:   "days_of_month",
			Message: "at least one day of month is required",
		})
	}
	seen := make(map[int]bool)
	for _, d := range r.Monthly.DaysOfMonth {
		if d < 1 || d > 31 {
			errs = append(errs, validator.ValidationError{
				Field:   "days_of_month",
				Message: "days_of_month must be between 1 and 31",
			})
			break
		}
		if seen[d] {
			errs = append(errs, validator.ValidationError{
				Field:   "days_of_month",
				Message: "days_of_month must not contain duplicates",
			})
			break
		}
		seen[d] = true
	}
	if _, ok := validator.IsValidClockTime(r.Monthly.Time); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "monthly_time",
			Message: "monthly_time must be a valid time in HH:MM format",
		})
	}
	return errs
}

func (r *ScheduleRule) validateSpecific() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if r.Specific == nil || len(r.Specific.Datetimes) == 0 {
		return append(errs, validator.ValidationError{
			Field:   "specific_datetimes",
			Message: "at least one datetime is required",
		})
	}
	for _, dt := range r.Specific.Datetimes {
		if dt.IsZero() {
			errs = append(errs, validator.ValidationError{
				Field:   "specific_datetimes",
				Message: "each datetime must be a valid ISO 8601 timestamp",
			})
			break
		}
	}
	return errs
}

func (r *ScheduleRule) validatePRN() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if r.PRN == nil || validator.IsEmpty(r.PRN.Condition) {
		errs = append(errs, validator.ValidationError{
			Field:   "prn_condition",
			Message: "prn_condition is required",
		})
	}
	if r.PRN != nil && r.PRN.MaxDosesPerDay != nil && *r.PRN.MaxDosesPerDay <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "prn_max_doses_per_day",
			Message: "prn_max_doses_per_day must be greater than 0",
		})
	}
	if r.PRN != nil && r.PRN.MinIntervalHours != nil && *r.PRN.MinIntervalHours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "prn_min_interval_hours",
			Message: "prn_min_interval_hours must be greater than 0",
		})
	}
	return errs
}
