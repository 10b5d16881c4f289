package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/caredomi/homecare-backend-go/internal/domain/medication"
	"github.com/caredomi/homecare-backend-go/internal/pkg/database"
)

type medicationRepositoryImpl struct {
	db *database.DB
}

func NewMedicationRepository(db *database.DB) medication.MedicationRepository {
	return &medicationRepositoryImpl{db: db}
}

// Create implements medication.MedicationRepository.
func (r *medicationRepositoryImpl) Create(ctx context.Context, med *medication.Medication) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO medications (care_plan_id, name, form, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return q.QueryRow(ctx, query,
		med.CarePlanID,
		med.Name,
		med.Form,
		med.Notes,
	).Scan(&med.ID, &med.CreatedAt, &med.UpdatedAt)
}

// GetByID implements medication.MedicationRepository. Schedule rules are
// loaded alongside the medication.
func (r *medicationRepositoryImpl) GetByID(ctx context.Context, id string) (*medication.Medication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, care_plan_id, name, form, notes, created_at, updated_at
		FROM medications
		WHERE id = $1 AND deleted_at IS NULL
	`
	var med medication.Medication
	err := q.QueryRow(ctx, query, id).Scan(
		&med.ID,
		&med.CarePlanID,
		&med.Name,
		&med.Form,
		&med.Notes,
		&med.CreatedAt,
		&med.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	ruleRepo := &scheduleRuleRepositoryImpl{db: r.db}
	med.Rules, err = ruleRepo.ListByMedication(ctx, med.ID)
	if err != nil {
		return nil, err
	}
	return &med, nil
}

// ListByCarePlan implements medication.MedicationRepository.
func (r *medicationRepositoryImpl) ListByCarePlan(ctx context.Context, carePlanID string) ([]medication.Medication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, care_plan_id, name, form, notes, created_at, updated_at
		FROM medications
		WHERE care_plan_id = $1 AND deleted_at IS NULL
		ORDER BY name
	`
	rows, err := q.Query(ctx, query, carePlanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meds []medication.Medication
	for rows.Next() {
		var med medication.Medication
		err := rows.Scan(
			&med.ID,
			&med.CarePlanID,
			&med.Name,
			&med.Form,
			&med.Notes,
			&med.CreatedAt,
			&med.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		meds = append(meds, med)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ruleRepo := &scheduleRuleRepositoryImpl{db: r.db}
	for i := range meds {
		meds[i].Rules, err = ruleRepo.ListByMedication(ctx, meds[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return meds, nil
}

// Update implements medication.MedicationRepository.
func (r *medicationRepositoryImpl) Update(ctx context.Context, med *medication.Medication) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE medications
		SET name = $1, form = $2, notes = $3, updated_at = NOW()
		WHERE id = $4 AND deleted_at IS NULL
		RETURNING updated_at
	`
	return q.QueryRow(ctx, query,
		med.Name,
		med.Form,
		med.Notes,
		med.ID,
	).Scan(&med.UpdatedAt)
}

// SoftDelete implements medication.MedicationRepository. The rules are
// removed outright; only the medication row keeps an audit trail.
func (r *medicationRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE medications
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id
	`
	var deleted string
	if err := q.QueryRow(ctx, query, id).Scan(&deleted); err != nil {
		return err
	}

	_, err := q.Exec(ctx, `DELETE FROM medication_schedule_rules WHERE medication_id = $1`, id)
	return err
}

type scheduleRuleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRuleRepository(db *database.DB) medication.ScheduleRuleRepository {
	return &scheduleRuleRepositoryImpl{db: db}
}

// rulePayload marshals the kind-specific pattern into the jsonb column.
func rulePayload(rule *medication.ScheduleRule) ([]byte, error) {
	var pattern any
	switch rule.Kind {
	case medication.KindParts:
		pattern = rule.Parts
	case medication.KindTimes:
		pattern = rule.Times
	case medication.KindWeekly:
		pattern = rule.Weekly
	case medication.KindMonthly:
		pattern = rule.Monthly
	case medication.KindSpecific:
		pattern = rule.Specific
	case medication.KindPRN:
		pattern = rule.PRN
	default:
		return nil, fmt.Errorf("unknown schedule kind %q", rule.Kind)
	}
	return json.Marshal(pattern)
}

// decodePayload unmarshals the jsonb column into the pattern pointer
// matching the rule's kind.
func decodePayload(rule *medication.ScheduleRule, payload []byte) error {
	switch rule.Kind {
	case medication.KindParts:
		rule.Parts = &medication.PartsPattern{}
		return json.Unmarshal(payload, rule.Parts)
	case medication.KindTimes:
		rule.Times = &medication.TimesPattern{}
		return json.Unmarshal(payload, rule.Times)
	case medication.KindWeekly:
		rule.Weekly = &medication.WeeklyPattern{}
		return json.Unmarshal(payload, rule.Weekly)
	case medication.KindMonthly:
		rule.Monthly = &medication.MonthlyPattern{}
		return json.Unmarshal(payload, rule.Monthly)
	case medication.KindSpecific:
		rule.Specific = &medication.SpecificPattern{}
		return json.Unmarshal(payload, rule.Specific)
	case medication.KindPRN:
		rule.PRN = &medication.PRNPattern{}
		return json.Unmarshal(payload, rule.PRN)
	}
	return fmt.Errorf("unknown schedule kind %q", rule.Kind)
}

func (r *scheduleRuleRepositoryImpl) scanRule(row interface{ Scan(...any) error }) (*medication.ScheduleRule, error) {
	var rule medication.ScheduleRule
	var payload []byte
	err := row.Scan(
		&rule.ID,
		&rule.MedicationID,
		&rule.Kind,
		&rule.Dose,
		&rule.DoseUnit,
		&rule.ValidFrom,
		&rule.ValidUntil,
		&rule.IsActive,
		&rule.RuleOrder,
		&rule.Notes,
		&payload,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := decodePayload(&rule, payload); err != nil {
		return nil, err
	}
	return &rule, nil
}

const scheduleRuleColumns = `id, medication_id, kind, dose, dose_unit, valid_from, valid_until,
		   is_active, rule_order, notes, payload, created_at, updated_at`

// Create implements medication.ScheduleRuleRepository.
func (r *scheduleRuleRepositoryImpl) Create(ctx context.Context, rule *medication.ScheduleRule) error {
	q := GetQuerier(ctx, r.db)

	payload, err := rulePayload(rule)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO medication_schedule_rules (
			medication_id, kind, dose, dose_unit, valid_from, valid_until,
			is_active, rule_order, notes, payload
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	return q.QueryRow(ctx, query,
		rule.MedicationID,
		rule.Kind,
		rule.Dose,
		rule.DoseUnit,
		rule.ValidFrom,
		rule.ValidUntil,
		rule.IsActive,
		rule.RuleOrder,
		rule.Notes,
		payload,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
}

// GetByID implements medication.ScheduleRuleRepository.
func (r *scheduleRuleRepositoryImpl) GetByID(ctx context.Context, id string) (*medication.ScheduleRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + scheduleRuleColumns + ` FROM medication_schedule_rules WHERE id = $1`
	return r.scanRule(q.QueryRow(ctx, query, id))
}

// ListByMedication implements medication.ScheduleRuleRepository.
func (r *scheduleRuleRepositoryImpl) ListByMedication(ctx context.Context, medicationID string) ([]medication.ScheduleRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + scheduleRuleColumns + `
		FROM medication_schedule_rules
		WHERE medication_id = $1
		ORDER BY rule_order, created_at`

	rows, err := q.Query(ctx, query, medicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []medication.ScheduleRule
	for rows.Next() {
		rule, err := r.scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, *rule)
	}
	return rules, rows.Err()
}

// Update implements medication.ScheduleRuleRepository.
func (r *scheduleRuleRepositoryImpl) Update(ctx context.Context, rule *medication.ScheduleRule) error {
	q := GetQuerier(ctx, r.db)

	payload, err := rulePayload(rule)
	if err != nil {
		return err
	}

	query := `
		UPDATE medication_schedule_rules
		SET kind = $1, dose = $2, dose_unit = $3, valid_from = $4, valid_until = $5,
			is_active = $6, rule_order = $7, notes = $8, payload = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at
	`
	return q.QueryRow(ctx, query,
		rule.Kind,
		rule.Dose,
		rule.DoseUnit,
		rule.ValidFrom,
		rule.ValidUntil,
		rule.IsActive,
		rule.RuleOrder,
		rule.Notes,
		payload,
		rule.ID,
	).Scan(&rule.UpdatedAt)
}

// Delete implements medication.ScheduleRuleRepository.
func (r *scheduleRuleRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM medication_schedule_rules WHERE id = $1 RETURNING id`
	var deleted string
	return q.QueryRow(ctx, query, id).Scan(&deleted)
}
