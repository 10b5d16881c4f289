package postgresql

import (
	"context"

	"github.com/caredomi/homecare-backend-go/internal/domain/patient"
	"github.com/caredomi/homecare-backend-go/internal/pkg/database"
)

type patientRepositoryImpl struct {
	db *database.DB
}

func NewPatientRepository(db *database.DB) patient.PatientRepository {
	return &patientRepositoryImpl{db: db}
}

const patientColumns = `id, first_name, last_name, cns_number, birth_date, phone, email,
		   address_line, postal_code, city, latitude, longitude, notes,
		   created_at, updated_at`

func (r *patientRepositoryImpl) scanPatient(row interface{ Scan(...any) error }) (*patient.Patient, error) {
	var p patient.Patient
	err := row.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.CNSNumber,
		&p.BirthDate,
		&p.Phone,
		&p.Email,
		&p.AddressLine,
		&p.PostalCode,
		&p.City,
		&p.Latitude,
		&p.Longitude,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create implements patient.PatientRepository.
func (r *patientRepositoryImpl) Create(ctx context.Context, p *patient.Patient) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO patients (
			first_name, last_name, cns_number, birth_date, phone, email,
			address_line, postal_code, city, latitude, longitude, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`
	return q.QueryRow(ctx, query,
		p.FirstName,
		p.LastName,
		p.CNSNumber,
		p.BirthDate,
		p.Phone,
		p.Email,
		p.AddressLine,
		p.PostalCode,
		p.City,
		p.Latitude,
		p.Longitude,
		p.Notes,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetByID implements patient.PatientRepository.
func (r *patientRepositoryImpl) GetByID(ctx context.Context, id string) (*patient.Patient, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1 AND deleted_at IS NULL`
	return r.scanPatient(q.QueryRow(ctx, query, id))
}

// List implements patient.PatientRepository. Search matches name or CNS
// number, case-insensitively.
func (r *patientRepositoryImpl) List(ctx context.Context, search string, limit, offset int) ([]patient.Patient, int, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE deleted_at IS NULL`
	args := []any{}
	if search != "" {
		where += ` AND (first_name ILIKE '%' || $1 || '%' OR last_name ILIKE '%' || $1 || '%' OR cns_number LIKE '%' || $1 || '%')`
		args = append(args, search)
	}

	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM patients`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + patientColumns + ` FROM patients` + where +
		` ORDER BY last_name, first_name`
	if search != "" {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var patients []patient.Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		patients = append(patients, *p)
	}
	return patients, total, rows.Err()
}

// Update implements patient.PatientRepository.
func (r *patientRepositoryImpl) Update(ctx context.Context, p *patient.Patient) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE patients
		SET first_name = $1, last_name = $2, cns_number = $3, birth_date = $4,
			phone = $5, email = $6, address_line = $7, postal_code = $8, city = $9,
			latitude = $10, longitude = $11, notes = $12, updated_at = NOW()
		WHERE id = $13 AND deleted_at IS NULL
		RETURNING updated_at
	`
	return q.QueryRow(ctx, query,
		p.FirstName,
		p.LastName,
		p.CNSNumber,
		p.BirthDate,
		p.Phone,
		p.Email,
		p.AddressLine,
		p.PostalCode,
		p.City,
		p.Latitude,
		p.Longitude,
		p.Notes,
		p.ID,
	).Scan(&p.UpdatedAt)
}

// SoftDelete implements patient.PatientRepository.
func (r *patientRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE patients
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id
	`
	var deleted string
	return q.QueryRow(ctx, query, id).Scan(&deleted)
}
