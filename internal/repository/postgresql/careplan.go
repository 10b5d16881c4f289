package postgresql

import (
	"context"

	"github.com/caredomi/homecare-backend-go/internal/domain/careplan"
	"github.com/caredomi/homecare-backend-go/internal/pkg/database"
)

type carePlanRepositoryImpl struct {
	db *database.DB
}

func NewCarePlanRepository(db *database.DB) careplan.CarePlanRepository {
	return &carePlanRepositoryImpl{db: db}
}

const carePlanColumns = `id, patient_id, status, cns_plan_number, cns_approved_at,
		   valid_from, valid_until, notes, created_at, updated_at`

func (r *carePlanRepositoryImpl) scanPlan(row interface{ Scan(...any) error }) (*careplan.CarePlan, error) {
	var plan careplan.CarePlan
	err := row.Scan(
		&plan.ID,
		&plan.PatientID,
		&plan.Status,
		&plan.CNSPlanNumber,
		&plan.CNSApprovedAt,
		&plan.ValidFrom,
		&plan.ValidUntil,
		&plan.Notes,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Create implements careplan.CarePlanRepository.
func (r *carePlanRepositoryImpl) Create(ctx context.Context, plan *careplan.CarePlan) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO care_plans (patient_id, status, cns_plan_number, cns_approved_at, valid_from, valid_until, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	return q.QueryRow(ctx, query,
		plan.PatientID,
		plan.Status,
		plan.CNSPlanNumber,
		plan.CNSApprovedAt,
		plan.ValidFrom,
		plan.ValidUntil,
		plan.Notes,
	).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
}

// GetByID implements careplan.CarePlanRepository.
func (r *carePlanRepositoryImpl) GetByID(ctx context.Context, id string) (*careplan.CarePlan, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + carePlanColumns + ` FROM care_plans WHERE id = $1 AND deleted_at IS NULL`
	return r.scanPlan(q.QueryRow(ctx, query, id))
}

// GetByIDWithItems implements careplan.CarePlanRepository.
func (r *carePlanRepositoryImpl) GetByIDWithItems(ctx context.Context, id string) (*careplan.CarePlan, error) {
	plan, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	itemRepo := &carePlanItemRepositoryImpl{db: r.db}
	items, err := itemRepo.ListByCarePlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	plan.Items = items
	return plan, nil
}

// ListByPatient implements careplan.CarePlanRepository.
func (r *carePlanRepositoryImpl) ListByPatient(ctx context.Context, patientID string) ([]careplan.CarePlan, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + carePlanColumns + `
		FROM care_plans
		WHERE patient_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []careplan.CarePlan
	for rows.Next() {
		plan, err := r.scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}
	return plans, rows.Err()
}

// Update implements careplan.CarePlanRepository.
func (r *carePlanRepositoryImpl) Update(ctx context.Context, plan *careplan.CarePlan) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE care_plans
		SET status = $1, cns_plan_number = $2, cns_approved_at = $3,
			valid_from = $4, valid_until = $5, notes = $6, updated_at = NOW()
		WHERE id = $7 AND deleted_at IS NULL
		RETURNING updated_at
	`
	return q.QueryRow(ctx, query,
		plan.Status,
		plan.CNSPlanNumber,
		plan.CNSApprovedAt,
		plan.ValidFrom,
		plan.ValidUntil,
		plan.Notes,
		plan.ID,
	).Scan(&plan.UpdatedAt)
}

// SoftDelete implements careplan.CarePlanRepository.
func (r *carePlanRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE care_plans
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id
	`
	var deleted string
	return q.QueryRow(ctx, query, id).Scan(&deleted)
}

type carePlanItemRepositoryImpl struct {
	db *database.DB
}

func NewCarePlanItemRepository(db *database.DB) careplan.CarePlanItemRepository {
	return &carePlanItemRepositoryImpl{db: db}
}

const carePlanItemColumns = `id, care_plan_id, package_code, label, weekly_package_minutes,
		   quantity, created_at, updated_at`

func (r *carePlanItemRepositoryImpl) scanItem(row interface{ Scan(...any) error }) (*careplan.CarePlanItem, error) {
	var item careplan.CarePlanItem
	err := row.Scan(
		&item.ID,
		&item.CarePlanID,
		&item.PackageCode,
		&item.Label,
		&item.WeeklyPackageMinutes,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create implements careplan.CarePlanItemRepository.
func (r *carePlanItemRepositoryImpl) Create(ctx context.Context, item *careplan.CarePlanItem) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO care_plan_items (care_plan_id, package_code, label, weekly_package_minutes, quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	return q.QueryRow(ctx, query,
		item.CarePlanID,
		item.PackageCode,
		item.Label,
		item.WeeklyPackageMinutes,
		item.Quantity,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

// GetByID implements careplan.CarePlanItemRepository.
func (r *carePlanItemRepositoryImpl) GetByID(ctx context.Context, id string) (*careplan.CarePlanItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + carePlanItemColumns + ` FROM care_plan_items WHERE id = $1`
	item, err := r.scanItem(q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	occurrences, err := r.occurrencesByItem(ctx, []string{item.ID})
	if err != nil {
		return nil, err
	}
	item.Occurrences = occurrences[item.ID]
	return item, nil
}

// ListByCarePlan implements careplan.CarePlanItemRepository. Occurrences
// are loaded in one extra query for all items.
func (r *carePlanItemRepositoryImpl) ListByCarePlan(ctx context.Context, carePlanID string) ([]careplan.CarePlanItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + carePlanItemColumns + `
		FROM care_plan_items
		WHERE care_plan_id = $1
		ORDER BY created_at`

	rows, err := q.Query(ctx, query, carePlanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []careplan.CarePlanItem
	var itemIDs []string
	for rows.Next() {
		item, err := r.scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
		itemIDs = append(itemIDs, item.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return items, nil
	}

	occurrences, err := r.occurrencesByItem(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Occurrences = occurrences[items[i].ID]
	}
	return items, nil
}

func (r *carePlanItemRepositoryImpl) occurrencesByItem(ctx context.Context, itemIDs []string) (map[string][]careplan.Occurrence, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, care_plan_item_id, name, value, created_at, updated_at
		FROM care_plan_item_occurrences
		WHERE care_plan_item_id = ANY($1)
		ORDER BY created_at
	`
	rows, err := q.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byItem := make(map[string][]careplan.Occurrence)
	for rows.Next() {
		var occ careplan.Occurrence
		err := rows.Scan(
			&occ.ID,
			&occ.CarePlanItemID,
			&occ.Name,
			&occ.Value,
			&occ.CreatedAt,
			&occ.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		byItem[occ.CarePlanItemID] = append(byItem[occ.CarePlanItemID], occ)
	}
	return byItem, rows.Err()
}

// Update implements careplan.CarePlanItemRepository.
func (r *carePlanItemRepositoryImpl) Update(ctx context.Context, item *careplan.CarePlanItem) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE care_plan_items
		SET package_code = $1, label = $2, weekly_package_minutes = $3, quantity = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`
	return q.QueryRow(ctx, query,
		item.PackageCode,
		item.Label,
		item.WeeklyPackageMinutes,
		item.Quantity,
		item.ID,
	).Scan(&item.UpdatedAt)
}

// Delete implements careplan.CarePlanItemRepository.
func (r *carePlanItemRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM care_plan_item_occurrences WHERE care_plan_item_id = $1`, id)
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx, `DELETE FROM care_plan_items WHERE id = $1`, id)
	return err
}

// ReplaceOccurrences implements careplan.CarePlanItemRepository. The
// occurrence set is small, so replace-all keeps the write path simple.
func (r *carePlanItemRepositoryImpl) ReplaceOccurrences(ctx context.Context, itemID string, occurrences []careplan.Occurrence) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM care_plan_item_occurrences WHERE care_plan_item_id = $1`, itemID)
	if err != nil {
		return err
	}

	for i := range occurrences {
		occ := &occurrences[i]
		err := q.QueryRow(ctx, `
			INSERT INTO care_plan_item_occurrences (care_plan_item_id, name, value)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at
		`, itemID, occ.Name, occ.Value).Scan(&occ.ID, &occ.CreatedAt, &occ.UpdatedAt)
		if err != nil {
			return err
		}
		occ.CarePlanItemID = itemID
	}
	return nil
}
