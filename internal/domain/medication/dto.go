package medication

import (
	"errors"
	"time"

	"github.com/caredomi/homecare-backend-go/internal/pkg/validator"
)

type CreateMedicationRequest struct {
	CarePlanID string  `json:"-"`
	Name       string  `json:"name"`
	Form       string  `json:"form"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *CreateMedicationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CarePlanID) {
		errs = append(errs, validator.ValidationError{
			Field:   "care_plan_id",
			Message: "care_plan_id is required",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateMedicationRequest struct {
	ID    string  `json:"id"`
	Name  *string `json:"name,omitempty"`
	Form  *string `json:"form,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

func (r *UpdateMedicationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MedicationResponse struct {
	ID         string                 `json:"id"`
	CarePlanID string                 `json:"care_plan_id"`
	Name       string                 `json:"name"`
	Form       string                 `json:"form"`
	Notes      *string                `json:"notes,omitempty"`
	Rules      []ScheduleRuleResponse `json:"rules,omitempty"`
	CreatedAt  string                 `json:"created_at"`
	UpdatedAt  string                 `json:"updated_at"`
}

// ScheduleRuleRequest carries one dosing pattern in the wire shape the
// console submits: flat kind-specific fields discriminated by
// schedule_kind. Times are "HH:MM", dates "YYYY-MM-DD", datetimes
// RFC 3339.
type ScheduleRuleRequest struct {
	MedicationID string `json:"-"`
	RuleID       string `json:"-"` // set on update

	ScheduleKind string   `json:"schedule_kind"`
	Dose         *float64 `json:"dose"`
	DoseUnit     string   `json:"dose_unit,omitempty"`
	ValidFrom    *string  `json:"valid_from,omitempty"`
	ValidUntil   *string  `json:"valid_until,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
	RuleOrder    int      `json:"rule_order"`
	Notes        *string  `json:"notes,omitempty"`

	PartsOfDay          []string `json:"parts_of_day,omitempty"`
	ExactTimes          []string `json:"exact_times,omitempty"`
	Weekdays            []int    `json:"weekdays,omitempty"`
	WeeklyTime          string   `json:"weekly_time,omitempty"`
	DaysOfMonth         []int    `json:"days_of_month,omitempty"`
	MonthlyTime         string   `json:"monthly_time,omitempty"`
	SpecificDatetimes   []string `json:"specific_datetimes,omitempty"`
	PRNCondition        string   `json:"prn_condition,omitempty"`
	PRNMaxDosesPerDay   *int     `json:"prn_max_doses_per_day,omitempty"`
	PRNMinIntervalHours *float64 `json:"prn_min_interval_hours,omitempty"`
}

// Validate reports wire-level problems (date and datetime formats) and
// then delegates the structural check to the rule itself.
func (r *ScheduleRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.MedicationID) {
		errs = append(errs, validator.ValidationError{
			Field:   "medication_id",
			Message: "medication_id is required",
		})
	}
	if r.Dose == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "dose",
			Message: "dose is required",
		})
	}
	if r.ValidFrom != nil {
		if _, ok := validator.IsValidDate(*r.ValidFrom); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "valid_from",
				Message: "valid_from must be a valid date in YYYY-MM-DD format",
			})
		}
	}
	if r.ValidUntil != nil {
		if _, ok := validator.IsValidDate(*r.ValidUntil); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "valid_until",
				Message: "valid_until must be a valid date in YYYY-MM-DD format",
			})
		}
	}
	for _, dt := range r.SpecificDatetimes {
		if _, ok := validator.IsValidDateTime(dt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "specific_datetimes",
				Message: "each datetime must be a valid ISO 8601 timestamp",
			})
			break
		}
	}

	rule := r.ToRule()
	if err := rule.Validate(); err != nil {
		var ruleErrs validator.ValidationErrors
		if errors.As(err, &ruleErrs) {
			for _, re := range ruleErrs {
				if !hasField(errs, re.Field) {
					errs = append(errs, re)
				}
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToRule builds the domain rule from the flat request, populating only
// the payload matching the declared kind. Unparseable dates and
// datetimes are left unset here; Validate reports them.
func (r *ScheduleRuleRequest) ToRule() ScheduleRule {
	rule := ScheduleRule{
		ID:           r.RuleID,
		MedicationID: r.MedicationID,
		Kind:         ScheduleKind(r.ScheduleKind),
		DoseUnit:     r.DoseUnit,
		RuleOrder:    r.RuleOrder,
		Notes:        r.Notes,
		IsActive:     true,
	}
	if r.Dose != nil {
		rule.Dose = *r.Dose
	}
	if rule.DoseUnit == "" {
		rule.DoseUnit = DefaultDoseUnit
	}
	if r.IsActive != nil {
		rule.IsActive = *r.IsActive
	}
	if r.ValidFrom != nil {
		if t, ok := validator.IsValidDate(*r.ValidFrom); ok {
			rule.ValidFrom = &t
		}
	}
	if r.ValidUntil != nil {
		if t, ok := validator.IsValidDate(*r.ValidUntil); ok {
			rule.ValidUntil = &t
		}
	}

	switch rule.Kind {
	case KindParts:
		parts := make([]PartOfDay, 0, len(r.PartsOfDay))
		for _, p := range r.PartsOfDay {
			parts = append(parts, PartOfDay(p))
		}
		rule.Parts = &PartsPattern{PartsOfDay: parts}
	case KindTimes:
		rule.Times = &TimesPattern{ExactTimes: r.ExactTimes}
	case KindWeekly:
		rule.Weekly = &WeeklyPattern{Weekdays: r.Weekdays, Time: r.WeeklyTime}
	case KindMonthly:
		rule.Monthly = &MonthlyPattern{DaysOfMonth: r.DaysOfMonth, Time: r.MonthlyTime}
	case KindSpecific:
		var datetimes []time.Time
		for _, dt := range r.SpecificDatetimes {
			if t, ok := validator.IsValidDateTime(dt); ok {
				datetimes = append(datetimes, t)
			} else {
				datetimes = append(datetimes, time.Time{})
			}
		}
		rule.Specific = &SpecificPattern{Datetimes: datetimes}
	case KindPRN:
		rule.PRN = &PRNPattern{
			Condition:        r.PRNCondition,
			MaxDosesPerDay:   r.PRNMaxDosesPerDay,
			MinIntervalHours: r.PRNMinIntervalHours,
		}
	}

	return rule
}

type ScheduleRuleResponse struct {
	ID           string  `json:"id"`
	MedicationID string  `json:"medication_id"`
	ScheduleKind string  `json:"schedule_kind"`
	Dose         float64 `json:"dose"`
	DoseUnit     string  `json:"dose_unit"`
	ValidFrom    *string `json:"valid_from,omitempty"`
	ValidUntil   *string `json:"valid_until,omitempty"`
	IsActive     bool    `json:"is_active"`
	RuleOrder    int     `json:"rule_order"`
	Notes        *string `json:"notes,omitempty"`

	PartsOfDay          []string `json:"parts_of_day,omitempty"`
	ExactTimes          []string `json:"exact_times,omitempty"`
	Weekdays            []int    `json:"weekdays,omitempty"`
	WeeklyTime          string   `json:"weekly_time,omitempty"`
	DaysOfMonth         []int    `json:"days_of_month,omitempty"`
	MonthlyTime         string   `json:"monthly_time,omitempty"`
	SpecificDatetimes   []string `json:"specific_datetimes,omitempty"`
	PRNCondition        string   `json:"prn_condition,omitempty"`
	PRNMaxDosesPerDay   *int     `json:"prn_max_doses_per_day,omitempty"`
	PRNMinIntervalHours *float64 `json:"prn_min_interval_hours,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func hasField(errs validator.ValidationErrors, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}
