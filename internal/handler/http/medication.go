package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/caredomi/homecare-backend-go/internal/domain/medication"
	"github.com/caredomi/homecare-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type MedicationHandler interface {
	CreateMedication(w http.ResponseWriter, r *http.Request)
	GetMedication(w http.ResponseWriter, r *http.Request)
	ListMedications(w http.ResponseWriter, r *http.Request)
	UpdateMedication(w http.ResponseWriter, r *http.Request)
	DeleteMedication(w http.ResponseWriter, r *http.Request)
	CreateScheduleRule(w http.ResponseWriter, r *http.Request)
	ListScheduleRules(w http.ResponseWriter, r *http.Request)
	UpdateScheduleRule(w http.ResponseWriter, r *http.Request)
	DeleteScheduleRule(w http.ResponseWriter, r *http.Request)
	GetDoseSchedule(w http.ResponseWriter, r *http.Request)
}

type MedicationHandlerImpl struct {
	medicationService medication.Service
}

func NewMedicationHandler(medicationService medication.Service) MedicationHandler {
	return &MedicationHandlerImpl{medicationService: medicationService}
}

// CreateMedication implements MedicationHandler.
func (h *MedicationHandlerImpl) CreateMedication(w http.ResponseWriter, r *http.Request) {
	var req medication.CreateMedicationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateMedication decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CarePlanID = chi.URLParam(r, "planID")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	medicationResponse, err := h.medicationService.CreateMedication(r.Context(), req)
	if err != nil {
		slog.Error("CreateMedication service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Medication created successfully", medicationResponse)
}

// GetMedication implements MedicationHandler.
func (h *MedicationHandlerImpl) GetMedication(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	medicationResponse, err := h.medicationService.GetMedication(r.Context(), id)
	if err != nil {
		slog.Error("GetMedication service error", "error", err, "medication_id", id)
		response.HandleError(w, err)
		return
	}

	response.Success(w, medicationResponse)
}

// ListMedications implements MedicationHandler.
func (h *MedicationHandlerImpl) ListMedications(w http.ResponseWriter, r *http.Request) {
	carePlanID := chi.URLParam(r, "planID")

	medications, err := h.medicationService.ListMedications(r.Context(), carePlanID)
	if err != nil {
		slog.Error("ListMedications service error", "error", err, "care_plan_id", carePlanID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, medications)
}

// UpdateMedication implements MedicationHandler.
func (h *MedicationHandlerImpl) UpdateMedication(w http.ResponseWriter, r *http.Request) {
	var req medication.UpdateMedicationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateMedication decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	medicationResponse, err := h.medicationService.UpdateMedication(r.Context(), req)
	if err != nil {
		slog.Error("UpdateMedication service error", "error", err, "medication_id", req.ID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Medication updated successfully", medicationResponse)
}

// DeleteMedication implements MedicationHandler.
func (h *MedicationHandlerImpl) DeleteMedication(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.medicationService.DeleteMedication(r.Context(), id); err != nil {
		slog.Error("DeleteMedication service error", "error", err, "medication_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Medication deleted successfully", nil)
}

// CreateScheduleRule implements MedicationHandler.
func (h *MedicationHandlerImpl) CreateScheduleRule(w http.ResponseWriter, r *http.Request) {
	var req medication.ScheduleRuleRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateScheduleRule decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.MedicationID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	ruleResponse, err := h.medicationService.CreateScheduleRule(r.Context(), req)
	if err != nil {
		slog.Error("CreateScheduleRule service error", "error", err, "medication_id", req.MedicationID)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Schedule rule created successfully", ruleResponse)
}

// ListScheduleRules implements MedicationHandler.
func (h *MedicationHandlerImpl) ListScheduleRules(w http.ResponseWriter, r *http.Request) {
	medicationID := chi.URLParam(r, "id")

	rules, err := h.medicationService.ListScheduleRules(r.Context(), medicationID)
	if err != nil {
		slog.Error("ListScheduleRules service error", "error", err, "medication_id", medicationID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, rules)
}

// UpdateScheduleRule implements MedicationHandler.
func (h *MedicationHandlerImpl) UpdateScheduleRule(w http.ResponseWriter, r *http.Request) {
	var req medication.ScheduleRuleRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateScheduleRule decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.MedicationID = chi.URLParam(r, "id")
	req.RuleID = chi.URLParam(r, "ruleID")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	ruleResponse, err := h.medicationService.UpdateScheduleRule(r.Context(), req)
	if err != nil {
		slog.Error("UpdateScheduleRule service error", "error", err, "rule_id", req.RuleID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule rule updated successfully", ruleResponse)
}

// DeleteScheduleRule implements MedicationHandler.
func (h *MedicationHandlerImpl) DeleteScheduleRule(w http.ResponseWriter, r *http.Request) {
	medicationID := chi.URLParam(r, "id")
	ruleID := chi.URLParam(r, "ruleID")

	if err := h.medicationService.DeleteScheduleRule(r.Context(), ruleID, medicationID); err != nil {
		slog.Error("DeleteScheduleRule service error", "error", err, "rule_id", ruleID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule rule deleted successfully", nil)
}

// GetDoseSchedule implements MedicationHandler.
func (h *MedicationHandlerImpl) GetDoseSchedule(w http.ResponseWriter, r *http.Request) {
	carePlanID := chi.URLParam(r, "planID")
	date := r.URL.Query().Get("date")

	doses, err := h.medicationService.GetDoseSchedule(r.Context(), carePlanID, date)
	if err != nil {
		slog.Error("GetDoseSchedule service error", "error", err, "care_plan_id", carePlanID, "date", date)
		response.HandleError(w, err)
		return
	}

	response.Success(w, doses)
}
