package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/caredomi/homecare-backend-go/internal/domain/careplan"
	"github.com/caredomi/homecare-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CarePlanHandler interface {
	CreateCarePlan(w http.ResponseWriter, r *http.Request)
	GetCarePlan(w http.ResponseWriter, r *http.Request)
	ListCarePlans(w http.ResponseWriter, r *http.Request)
	UpdateCarePlan(w http.ResponseWriter, r *http.Request)
	DeleteCarePlan(w http.ResponseWriter, r *http.Request)
	GetDurationSummary(w http.ResponseWriter, r *http.Request)
	CheckSessionDuration(w http.ResponseWriter, r *http.Request)
}

type CarePlanHandlerImpl struct {
	carePlanService careplan.Service
}

func NewCarePlanHandler(carePlanService careplan.Service) CarePlanHandler {
	return &CarePlanHandlerImpl{carePlanService: carePlanService}
}

// CreateCarePlan implements CarePlanHandler.
func (h *CarePlanHandlerImpl) CreateCarePlan(w http.ResponseWriter, r *http.Request) {
	var req careplan.CreateCarePlanRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateCarePlan decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	planResponse, err := h.carePlanService.CreateCarePlan(r.Context(), req)
	if err != nil {
		slog.Error("CreateCarePlan service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Care plan created successfully", planResponse)
}

// GetCarePlan implements CarePlanHandler.
func (h *CarePlanHandlerImpl) GetCarePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	planResponse, err := h.carePlanService.GetCarePlan(r.Context(), id)
	if err != nil {
		slog.Error("GetCarePlan service error", "error", err, "care_plan_id", id)
		response.HandleError(w, err)
		return
	}

	response.Success(w, planResponse)
}

// ListCarePlans implements CarePlanHandler.
func (h *CarePlanHandlerImpl) ListCarePlans(w http.ResponseWriter, r *http.Request) {
	patientID := r.URL.Query().Get("patient_id")

	plans, err := h.carePlanService.ListCarePlans(r.Context(), patientID)
	if err != nil {
		slog.Error("ListCarePlans service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, plans)
}

// UpdateCarePlan implements CarePlanHandler.
func (h *CarePlanHandlerImpl) UpdateCarePlan(w http.ResponseWriter, r *http.Request) {
	var req careplan.UpdateCarePlanRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateCarePlan decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	planResponse, err := h.carePlanService.UpdateCarePlan(r.Context(), req)
	if err != nil {
		slog.Error("UpdateCarePlan service error", "error", err, "care_plan_id", req.ID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Care plan updated successfully", planResponse)
}

// DeleteCarePlan implements CarePlanHandler.
func (h *CarePlanHandlerImpl) DeleteCarePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.carePlanService.DeleteCarePlan(r.Context(), id); err != nil {
		slog.Error("DeleteCarePlan service error", "error", err, "care_plan_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Care plan deleted successfully", nil)
}

// GetDurationSummary implements CarePlanHandler.
func (h *CarePlanHandlerImpl) GetDurationSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	summary, err := h.carePlanService.GetDurationSummary(r.Context(), id)
	if err != nil {
		slog.Error("GetDurationSummary service error", "error", err, "care_plan_id", id)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// CheckSessionDuration implements CarePlanHandler.
func (h *CarePlanHandlerImpl) CheckSessionDuration(w http.ResponseWriter, r *http.Request) {
	var req careplan.SessionCheckRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CheckSessionDuration decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CarePlanID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	checkResponse, err := h.carePlanService.CheckSessionDuration(r.Context(), req)
	if err != nil {
		slog.Error("CheckSessionDuration service error", "error", err, "care_plan_id", req.CarePlanID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, checkResponse)
}
