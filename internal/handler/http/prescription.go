package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/caredomi/homecare-backend-go/internal/domain/prescription"
	"github.com/caredomi/homecare-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// Multipart uploads are buffered to disk past this threshold.
const uploadMemoryLimit = 10 << 20

type PrescriptionHandler interface {
	CreatePrescription(w http.ResponseWriter, r *http.Request)
	GetPrescription(w http.ResponseWriter, r *http.Request)
	ListPrescriptions(w http.ResponseWriter, r *http.Request)
	DeletePrescription(w http.ResponseWriter, r *http.Request)
	UploadDocument(w http.ResponseWriter, r *http.Request)
	DownloadDocument(w http.ResponseWriter, r *http.Request)
	RemoveDocument(w http.ResponseWriter, r *http.Request)
}

type PrescriptionHandlerImpl struct {
	prescriptionService prescription.Service
}

func NewPrescriptionHandler(prescriptionService prescription.Service) PrescriptionHandler {
	return &PrescriptionHandlerImpl{prescriptionService: prescriptionService}
}

// CreatePrescription implements PrescriptionHandler.
func (h *PrescriptionHandlerImpl) CreatePrescription(w http.ResponseWriter, r *http.Request) {
	var req prescription.CreatePrescriptionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreatePrescription decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	prescriptionResponse, err := h.prescriptionService.CreatePrescription(r.Context(), req)
	if err != nil {
		slog.Error("CreatePrescription service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Prescription created successfully", prescriptionResponse)
}

// GetPrescription implements PrescriptionHandler.
func (h *PrescriptionHandlerImpl) GetPrescription(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	prescriptionResponse, err := h.prescriptionService.GetPrescription(r.Context(), id)
	if err != nil {
		slog.Error("GetPrescription service error", "error", err, "prescription_id", id)
		response.HandleError(w, err)
		return
	}

	response.Success(w, prescriptionResponse)
}

// ListPrescriptions implements PrescriptionHandler.
func (h *PrescriptionHandlerImpl) ListPrescriptions(w http.ResponseWriter, r *http.Request) {
	patientID := r.URL.Query().Get("patient_id")

	prescriptions, err := h.prescriptionService.ListPrescriptions(r.Context(), patientID)
	if err != nil {
		slog.Error("ListPrescriptions service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, prescriptions)
}

// DeletePrescription implements PrescriptionHandler.
func (h *PrescriptionHandlerImpl) DeletePrescription(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.prescriptionService.DeletePrescription(r.Context(), id); err != nil {
		slog.Error("DeletePrescription service error", "error", err, "prescription_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Prescription deleted successfully", nil)
}

// UploadDocument implements PrescriptionHandler.
func (h *PrescriptionHandlerImpl) UploadDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
		slog.Error("UploadDocument multipart parse error", "error", err, "prescription_id", id)
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		slog.Error("UploadDocument missing file", "error", err, "prescription_id", id)
		response.BadRequest(w, "document file is required", nil)
		return
	}
	defer file.Close()

	req := prescription.UploadDocumentRequest{
		PrescriptionID: id,
		Filename:       header.Filename,
		ContentType:    header.Header.Get("Content-Type"),
		Size:           header.Size,
		File:           file,
	}

	prescriptionResponse, err := h.prescriptionService.UploadDocument(r.Context(), req)
	if err != nil {
		slog.Error("UploadDocument service error", "error", err, "prescription_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document uploaded successfully", prescriptionResponse)
}

// DownloadDocument implements PrescriptionHandler.
func (h *PrescriptionHandlerImpl) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	reader, filename, err := h.prescriptionService.DownloadDocument(r.Context(), id)
	if err != nil {
		slog.Error("DownloadDocument service error", "error", err, "prescription_id", id)
		response.HandleError(w, err)
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := io.Copy(w, reader); err != nil {
		slog.Error("DownloadDocument stream error", "error", err, "prescription_id", id)
	}
}

// RemoveDocument implements PrescriptionHandler.
func (h *PrescriptionHandlerImpl) RemoveDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.prescriptionService.RemoveDocument(r.Context(), id); err != nil {
		slog.Error("RemoveDocument service error", "error", err, "prescription_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document removed successfully", nil)
}
