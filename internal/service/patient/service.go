package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/caredomi/homecare-backend-go/internal/domain/patient"
	"github.com/caredomi/homecare-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type patientServiceImpl struct {
	patientRepo patient.PatientRepository
}

func NewPatientService(patientRepo patient.PatientRepository) patient.Service {
	return &patientServiceImpl{patientRepo: patientRepo}
}

// CreatePatient implements patient.Service.
func (s *patientServiceImpl) CreatePatient(ctx context.Context, req patient.CreatePatientRequest) (patient.PatientResponse, error) {
	if err := req.Validate(); err != nil {
		return patient.PatientResponse{}, err
	}

	p := patientFromRequest(&req)
	if err := s.patientRepo.Create(ctx, p); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return patient.PatientResponse{}, patient.ErrPatientCNSExists
		}
		return patient.PatientResponse{}, fmt.Errorf("failed to create patient: %w", err)
	}
	return patientToResponse(p), nil
}

// GetPatient implements patient.Service.
func (s *patientServiceImpl) GetPatient(ctx context.Context, id string) (patient.PatientResponse, error) {
	p, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return patient.PatientResponse{}, patient.ErrPatientNotFound
		}
		return patient.PatientResponse{}, fmt.Errorf("failed to get patient: %w", err)
	}
	return patientToResponse(p), nil
}

// ListPatients implements patient.Service.
func (s *patientServiceImpl) ListPatients(ctx context.Context, search string, limit, offset int) (patient.ListPatientsResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	patients, total, err := s.patientRepo.List(ctx, search, limit, offset)
	if err != nil {
		return patient.ListPatientsResponse{}, fmt.Errorf("failed to list patients: %w", err)
	}

	resp := patient.ListPatientsResponse{Total: total}
	for i := range patients {
		resp.Patients = append(resp.Patients, patientToResponse(&patients[i]))
	}
	return resp, nil
}

// UpdatePatient implements patient.Service.
func (s *patientServiceImpl) UpdatePatient(ctx context.Context, req patient.UpdatePatientRequest) (patient.PatientResponse, error) {
	if err := req.Validate(); err != nil {
		return patient.PatientResponse{}, err
	}

	existing, err := s.patientRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return patient.PatientResponse{}, patient.ErrPatientNotFound
		}
		return patient.PatientResponse{}, fmt.Errorf("failed to get patient: %w", err)
	}

	p := patientFromRequest(&req.CreatePatientRequest)
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt

	if err := s.patientRepo.Update(ctx, p); err != nil {
		return patient.PatientResponse{}, fmt.Errorf("failed to update patient: %w", err)
	}
	return patientToResponse(p), nil
}

// DeletePatient implements patient.Service.
func (s *patientServiceImpl) DeletePatient(ctx context.Context, id string) error {
	if err := s.patientRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return patient.ErrPatientNotFound
		}
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}

func patientFromRequest(req *patient.CreatePatientRequest) *patient.Patient {
	p := &patient.Patient{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		Email:       req.Email,
		AddressLine: req.AddressLine,
		PostalCode:  req.PostalCode,
		City:        req.City,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Notes:       req.Notes,
	}
	if req.CNSNumber != "" {
		p.CNSNumber = &req.CNSNumber
	}
	if t, ok := validator.IsValidDate(req.BirthDate); ok {
		p.BirthDate = &t
	}
	return p
}

func patientToResponse(p *patient.Patient) patient.PatientResponse {
	return patient.PatientResponse{
		ID:          p.ID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		CNSNumber:   p.CNSNumber,
		BirthDate:   p.BirthDate,
		Phone:       p.Phone,
		Email:       p.Email,
		AddressLine: p.AddressLine,
		PostalCode:  p.PostalCode,
		City:        p.City,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
