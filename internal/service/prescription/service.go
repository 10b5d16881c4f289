package prescription

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/caredomi/homecare-backend-go/internal/domain/prescription"
	"github.com/caredomi/homecare-backend-go/internal/pkg/storage"
	"github.com/caredomi/homecare-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const maxDocumentSize = 10 << 20 // 10 MiB

var allowedDocumentExts = []string{".pdf", ".jpg", ".jpeg", ".png"}

type prescriptionServiceImpl struct {
	prescriptionRepo prescription.PrescriptionRepository
	fileStorage      storage.FileStorage
}

func NewPrescriptionService(
	prescriptionRepo prescription.PrescriptionRepository,
	fileStorage storage.FileStorage,
) prescription.Service {
	return &prescriptionServiceImpl{
		prescriptionRepo: prescriptionRepo,
		fileStorage:      fileStorage,
	}
}

// CreatePrescription implements prescription.Service.
func (s *prescriptionServiceImpl) CreatePrescription(ctx context.Context, req prescription.CreatePrescriptionRequest) (prescription.PrescriptionResponse, error) {
	if err := req.Validate(); err != nil {
		return prescription.PrescriptionResponse{}, err
	}

	issuedAt, _ := validator.IsValidDate(req.IssuedAt)
	p := &prescription.Prescription{
		PatientID:      req.PatientID,
		CarePlanID:     req.CarePlanID,
		PrescriberName: req.PrescriberName,
		IssuedAt:       issuedAt,
		Notes:          req.Notes,
	}
	if req.ExpiresAt != "" {
		if t, ok := validator.IsValidDate(req.ExpiresAt); ok {
			p.ExpiresAt = &t
		}
	}

	if err := s.prescriptionRepo.Create(ctx, p); err != nil {
		return prescription.PrescriptionResponse{}, fmt.Errorf("failed to create prescription: %w", err)
	}
	return s.toResponse(ctx, p), nil
}

// GetPrescription implements prescription.Service.
func (s *prescriptionServiceImpl) GetPrescription(ctx context.Context, id string) (prescription.PrescriptionResponse, error) {
	p, err := s.prescriptionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return prescription.PrescriptionResponse{}, prescription.ErrPrescriptionNotFound
		}
		return prescription.PrescriptionResponse{}, fmt.Errorf("failed to get prescription: %w", err)
	}
	return s.toResponse(ctx, p), nil
}

// ListPrescriptions implements prescription.Service.
func (s *prescriptionServiceImpl) ListPrescriptions(ctx context.Context, patientID string) ([]prescription.PrescriptionResponse, error) {
	prescriptions, err := s.prescriptionRepo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	responses := make([]prescription.PrescriptionResponse, 0, len(prescriptions))
	for i := range prescriptions {
		responses = append(responses, s.toResponse(ctx, &prescriptions[i]))
	}
	return responses, nil
}

// DeletePrescription implements prescription.Service. The stored scan
// is removed as well; a storage failure there is not fatal.
func (s *prescriptionServiceImpl) DeletePrescription(ctx context.Context, id string) error {
	p, err := s.prescriptionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return prescription.ErrPrescriptionNotFound
		}
		return fmt.Errorf("failed to get prescription: %w", err)
	}

	if err := s.prescriptionRepo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete prescription: %w", err)
	}
	if p.DocumentPath != nil {
		_ = s.fileStorage.Delete(ctx, *p.DocumentPath)
	}
	return nil
}

// UploadDocument implements prescription.Service.
func (s *prescriptionServiceImpl) UploadDocument(ctx context.Context, req prescription.UploadDocumentRequest) (prescription.PrescriptionResponse, error) {
	p, err := s.prescriptionRepo.GetByID(ctx, req.PrescriptionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return prescription.PrescriptionResponse{}, prescription.ErrPrescriptionNotFound
		}
		return prescription.PrescriptionResponse{}, fmt.Errorf("failed to get prescription: %w", err)
	}

	if req.Size > maxDocumentSize {
		return prescription.PrescriptionResponse{}, prescription.ErrDocumentTooLarge
	}
	ext := strings.ToLower(filepath.Ext(req.Filename))
	if !extAllowed(ext) {
		return prescription.PrescriptionResponse{}, prescription.ErrUnsupportedDocument
	}

	path := fmt.Sprintf("prescriptions/%s/%s%s", p.ID, uuid.NewString(), ext)
	stored, err := s.fileStorage.Upload(ctx, req.File, path, req.ContentType)
	if err != nil {
		return prescription.PrescriptionResponse{}, fmt.Errorf("failed to store document: %w", err)
	}

	// Replacing an existing scan drops the old file.
	old := p.DocumentPath
	if err := s.prescriptionRepo.SetDocumentPath(ctx, p.ID, &stored); err != nil {
		_ = s.fileStorage.Delete(ctx, stored)
		return prescription.PrescriptionResponse{}, fmt.Errorf("failed to attach document: %w", err)
	}
	if old != nil && *old != stored {
		_ = s.fileStorage.Delete(ctx, *old)
	}

	p.DocumentPath = &stored
	return s.toResponse(ctx, p), nil
}

// DownloadDocument implements prescription.Service.
func (s *prescriptionServiceImpl) DownloadDocument(ctx context.Context, id string) (io.ReadCloser, string, error) {
	p, err := s.prescriptionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", prescription.ErrPrescriptionNotFound
		}
		return nil, "", fmt.Errorf("failed to get prescription: %w", err)
	}
	if p.DocumentPath == nil {
		return nil, "", prescription.ErrDocumentNotFound
	}

	reader, err := s.fileStorage.Download(ctx, *p.DocumentPath)
	if err != nil {
		return nil, "", prescription.ErrDocumentNotFound
	}
	return reader, filepath.Base(*p.DocumentPath), nil
}

// RemoveDocument implements prescription.Service.
func (s *prescriptionServiceImpl) RemoveDocument(ctx context.Context, id string) error {
	p, err := s.prescriptionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return prescription.ErrPrescriptionNotFound
		}
		return fmt.Errorf("failed to get prescription: %w", err)
	}
	if p.DocumentPath == nil {
		return prescription.ErrDocumentNotFound
	}

	if err := s.prescriptionRepo.SetDocumentPath(ctx, id, nil); err != nil {
		return fmt.Errorf("failed to detach document: %w", err)
	}
	_ = s.fileStorage.Delete(ctx, *p.DocumentPath)
	return nil
}

func extAllowed(ext string) bool {
	for _, allowed := range allowedDocumentExts {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (s *prescriptionServiceImpl) toResponse(ctx context.Context, p *prescription.Prescription) prescription.PrescriptionResponse {
	resp := prescription.PrescriptionResponse{
		ID:             p.ID,
		PatientID:      p.PatientID,
		CarePlanID:     p.CarePlanID,
		PrescriberName: p.PrescriberName,
		IssuedAt:       p.IssuedAt,
		ExpiresAt:      p.ExpiresAt,
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.DocumentPath != nil {
		if url, err := s.fileStorage.GetURL(ctx, *p.DocumentPath, time.Hour); err == nil {
			resp.DocumentURL = &url
		}
	}
	return resp
}
