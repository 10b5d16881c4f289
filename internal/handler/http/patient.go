package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/caredomi/homecare-backend-go/internal/domain/patient"
	"github.com/caredomi/homecare-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PatientHandler interface {
	CreatePatient(w http.ResponseWriter, r *http.Request)
	GetPatient(w http.ResponseWriter, r *http.Request)
	ListPatients(w http.ResponseWriter, r *http.Request)
	UpdatePatient(w http.ResponseWriter, r *http.Request)
	DeletePatient(w http.ResponseWriter, r *http.Request)
}

type PatientHandlerImpl struct {
	patientService patient.Service
}

func NewPatientHandler(patientService patient.Service) PatientHandler {
	return &PatientHandlerImpl{patientService: patientService}
}

// CreatePatient implements PatientHandler.
func (h *PatientHandlerImpl) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req patient.CreatePatientRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreatePatient decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	patientResponse, err := h.patientService.CreatePatient(r.Context(), req)
	if err != nil {
		slog.Error("CreatePatient service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Patient created successfully", patientResponse)
}

// GetPatient implements PatientHandler.
func (h *PatientHandlerImpl) GetPatient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	patientResponse, err := h.patientService.GetPatient(r.Context(), id)
	if err != nil {
		slog.Error("GetPatient service error", "error", err, "patient_id", id)
		response.HandleError(w, err)
		return
	}

	response.Success(w, patientResponse)
}

// ListPatients implements PatientHandler.
func (h *PatientHandlerImpl) ListPatients(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	listResponse, err := h.patientService.ListPatients(r.Context(), search, limit, offset)
	if err != nil {
		slog.Error("ListPatients service error", "error", err)
		response.HandleError(w, err)
		return
	}

	totalPages := (listResponse.Total + limit - 1) / limit
	response.SuccessWithMeta(w, listResponse.Patients, &response.Meta{
		Page:       offset/limit + 1,
		Limit:      limit,
		TotalItems: int64(listResponse.Total),
		TotalPages: totalPages,
	})
}

// UpdatePatient implements PatientHandler.
func (h *PatientHandlerImpl) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	var req patient.UpdatePatientRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdatePatient decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	patientResponse, err := h.patientService.UpdatePatient(r.Context(), req)
	if err != nil {
		slog.Error("UpdatePatient service error", "error", err, "patient_id", req.ID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Patient updated successfully", patientResponse)
}

// DeletePatient implements PatientHandler.
func (h *PatientHandlerImpl) DeletePatient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.patientService.DeletePatient(r.Context(), id); err != nil {
		slog.Error("DeletePatient service error", "error", err, "patient_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Patient deleted successfully", nil)
}
