package postgresql

import (
	"context"

	"github.com/caredomi/homecare-backend-go/internal/domain/prescription"
	"github.com/caredomi/homecare-backend-go/internal/pkg/database"
)

type prescriptionRepositoryImpl struct {
	db *database.DB
}

func NewPrescriptionRepository(db *database.DB) prescription.PrescriptionRepository {
	return &prescriptionRepositoryImpl{db: db}
}

const prescriptionColumns = `id, patient_id, care_plan_id, prescriber_name, issued_at, expires_at,
		   document_path, notes, created_at, updated_at`

func (r *prescriptionRepositoryImpl) scanPrescription(row interface{ Scan(...any) error }) (*prescription.Prescription, error) {
	var p prescription.Prescription
	err := row.Scan(
		&p.ID,
		&p.PatientID,
		&p.CarePlanID,
		&p.PrescriberName,
		&p.IssuedAt,
		&p.ExpiresAt,
		&p.DocumentPath,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create implements prescription.PrescriptionRepository.
func (r *prescriptionRepositoryImpl) Create(ctx context.Context, p *prescription.Prescription) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO prescriptions (patient_id, care_plan_id, prescriber_name, issued_at, expires_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	return q.QueryRow(ctx, query,
		p.PatientID,
		p.CarePlanID,
		p.PrescriberName,
		p.IssuedAt,
		p.ExpiresAt,
		p.Notes,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetByID implements prescription.PrescriptionRepository.
func (r *prescriptionRepositoryImpl) GetByID(ctx context.Context, id string) (*prescription.Prescription, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + prescriptionColumns + ` FROM prescriptions WHERE id = $1 AND deleted_at IS NULL`
	return r.scanPrescription(q.QueryRow(ctx, query, id))
}

// ListByPatient implements prescription.PrescriptionRepository.
func (r *prescriptionRepositoryImpl) ListByPatient(ctx context.Context, patientID string) ([]prescription.Prescription, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + prescriptionColumns + `
		FROM prescriptions
		WHERE patient_id = $1 AND deleted_at IS NULL
		ORDER BY issued_at DESC`

	rows, err := q.Query(ctx, query, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prescriptions []prescription.Prescription
	for rows.Next() {
		p, err := r.scanPrescription(rows)
		if err != nil {
			return nil, err
		}
		prescriptions = append(prescriptions, *p)
	}
	return prescriptions, rows.Err()
}

// Update implements prescription.PrescriptionRepository.
func (r *prescriptionRepositoryImpl) Update(ctx context.Context, p *prescription.Prescription) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE prescriptions
		SET patient_id = $1, care_plan_id = $2, prescriber_name = $3, issued_at = $4,
			expires_at = $5, notes = $6, updated_at = NOW()
		WHERE id = $7 AND deleted_at IS NULL
		RETURNING updated_at
	`
	return q.QueryRow(ctx, query,
		p.PatientID,
		p.CarePlanID,
		p.PrescriberName,
		p.IssuedAt,
		p.ExpiresAt,
		p.Notes,
		p.ID,
	).Scan(&p.UpdatedAt)
}

// SetDocumentPath implements prescription.PrescriptionRepository.
func (r *prescriptionRepositoryImpl) SetDocumentPath(ctx context.Context, id string, path *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE prescriptions
		SET document_path = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
		RETURNING id
	`
	var updated string
	return q.QueryRow(ctx, query, path, id).Scan(&updated)
}

// SoftDelete implements prescription.PrescriptionRepository.
func (r *prescriptionRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE prescriptions
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id
	`
	var deleted string
	return q.QueryRow(ctx, query, id).Scan(&deleted)
}
