package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/caredomi/homecare-backend-go/internal/domain/tour"
	"github.com/caredomi/homecare-backend-go/internal/handler/http/response"
	"github.com/caredomi/homecare-backend-go/internal/pkg/jwt"
	"github.com/caredomi/homecare-backend-go/internal/pkg/sse"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type TourHandler interface {
	CreateTour(w http.ResponseWriter, r *http.Request)
	GetTour(w http.ResponseWriter, r *http.Request)
	ListTours(w http.ResponseWriter, r *http.Request)
	UpdateTour(w http.ResponseWriter, r *http.Request)
	DeleteTour(w http.ResponseWriter, r *http.Request)

	CreateEvent(w http.ResponseWriter, r *http.Request)
	ListEvents(w http.ResponseWriter, r *http.Request)
	UpdateEvent(w http.ResponseWriter, r *http.Request)
	GetEventProximity(w http.ResponseWriter, r *http.Request)

	GetTimeline(w http.ResponseWriter, r *http.Request)
	StageAssign(w http.ResponseWriter, r *http.Request)
	StageRemove(w http.ResponseWriter, r *http.Request)
	StageTimeChange(w http.ResponseWriter, r *http.Request)
	CancelChanges(w http.ResponseWriter, r *http.Request)
	SaveChanges(w http.ResponseWriter, r *http.Request)
	ValidateTour(w http.ResponseWriter, r *http.Request)

	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type TourHandlerImpl struct {
	tourService tour.Service
	jwtService  jwt.Service
	hub         *sse.Hub
}

func NewTourHandler(tourService tour.Service, jwtService jwt.Service, hub *sse.Hub) TourHandler {
	return &TourHandlerImpl{
		tourService: tourService,
		jwtService:  jwtService,
		hub:         hub,
	}
}

func getUserIDFromContext(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if userID, ok := claims["user_id"].(string); ok {
		return userID
	}
	return ""
}

// CreateTour implements TourHandler.
func (h *TourHandlerImpl) CreateTour(w http.ResponseWriter, r *http.Request) {
	var req tour.CreateTourRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateTour decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tourResponse, err := h.tourService.CreateTour(r.Context(), req)
	if err != nil {
		slog.Error("CreateTour service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Tour created successfully", tourResponse)
}

// GetTour implements TourHandler.
func (h *TourHandlerImpl) GetTour(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	tourResponse, err := h.tourService.GetTour(r.Context(), id)
	if err != nil {
		slog.Error("GetTour service error", "error", err, "tour_id", id)
		response.HandleError(w, err)
		return
	}

	response.Success(w, tourResponse)
}

// ListTours implements TourHandler.
func (h *TourHandlerImpl) ListTours(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	date := r.URL.Query().Get("date")

	tours, err := h.tourService.ListTours(r.Context(), employeeID, date)
	if err != nil {
		slog.Error("ListTours service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, tours)
}

// UpdateTour implements TourHandler.
func (h *TourHandlerImpl) UpdateTour(w http.ResponseWriter, r *http.Request) {
	var req tour.UpdateTourRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateTour decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tourResponse, err := h.tourService.UpdateTour(r.Context(), req)
	if err != nil {
		slog.Error("UpdateTour service error", "error", err, "tour_id", req.ID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Tour updated successfully", tourResponse)
}

// DeleteTour implements TourHandler.
func (h *TourHandlerImpl) DeleteTour(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.tourService.DeleteTour(r.Context(), id); err != nil {
		slog.Error("DeleteTour service error", "error", err, "tour_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Tour deleted successfully", nil)
}

// CreateEvent implements TourHandler.
func (h *TourHandlerImpl) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req tour.CreateEventRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateEvent decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	eventResponse, err := h.tourService.CreateEvent(r.Context(), req)
	if err != nil {
		slog.Error("CreateEvent service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Event created successfully", eventResponse)
}

// ListEvents implements TourHandler.
func (h *TourHandlerImpl) ListEvents(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		response.BadRequest(w, "date must be a valid date in YYYY-MM-DD format", nil)
		return
	}

	filter := tour.EventFilter{
		Date:         date,
		TimeStartGte: r.URL.Query().Get("time_start_gte"),
		TimeEndLte:   r.URL.Query().Get("time_end_lte"),
		Unassigned:   r.URL.Query().Get("unassigned") == "true",
	}

	events, err := h.tourService.ListEvents(r.Context(), filter)
	if err != nil {
		slog.Error("ListEvents service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, events)
}

// UpdateEvent implements TourHandler.
func (h *TourHandlerImpl) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req tour.UpdateEventRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateEvent decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	eventResponse, err := h.tourService.UpdateEvent(r.Context(), req)
	if err != nil {
		slog.Error("UpdateEvent service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Event updated successfully", eventResponse)
}

// GetEventProximity implements TourHandler.
func (h *TourHandlerImpl) GetEventProximity(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	result, err := h.tourService.EventProximity(r.Context(), eventID)
	if err != nil {
		slog.Error("GetEventProximity service error", "error", err, "event_id", eventID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetTimeline implements TourHandler.
func (h *TourHandlerImpl) GetTimeline(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "id")

	timeline, err := h.tourService.GetTimeline(r.Context(), tourID)
	if err != nil {
		slog.Error("GetTimeline service error", "error", err, "tour_id", tourID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, timeline)
}

// StageAssign implements TourHandler.
func (h *TourHandlerImpl) StageAssign(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "id")
	eventID := chi.URLParam(r, "eventID")

	timeline, err := h.tourService.StageAssign(r.Context(), tourID, eventID)
	if err != nil {
		slog.Error("StageAssign service error", "error", err, "tour_id", tourID, "event_id", eventID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Event assignment staged", timeline)
}

// StageRemove implements TourHandler.
func (h *TourHandlerImpl) StageRemove(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "id")
	eventID := chi.URLParam(r, "eventID")

	timeline, err := h.tourService.StageRemove(r.Context(), tourID, eventID)
	if err != nil {
		slog.Error("StageRemove service error", "error", err, "tour_id", tourID, "event_id", eventID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Event removal staged", timeline)
}

// StageTimeChange implements TourHandler.
func (h *TourHandlerImpl) StageTimeChange(w http.ResponseWriter, r *http.Request) {
	var req tour.TimeChangeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("StageTimeChange decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.TourID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	timeline, err := h.tourService.StageTimeChange(r.Context(), req)
	if err != nil {
		slog.Error("StageTimeChange service error", "error", err, "tour_id", req.TourID, "event_id", req.EventID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time change staged", timeline)
}

// CancelChanges implements TourHandler.
func (h *TourHandlerImpl) CancelChanges(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "id")

	if err := h.tourService.CancelChanges(r.Context(), tourID); err != nil {
		slog.Error("CancelChanges service error", "error", err, "tour_id", tourID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Staged changes discarded", nil)
}

// SaveChanges implements TourHandler.
func (h *TourHandlerImpl) SaveChanges(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "id")

	saveResponse, err := h.tourService.SaveChanges(r.Context(), tourID)
	if err != nil {
		slog.Error("SaveChanges service error", "error", err, "tour_id", tourID)
		response.HandleError(w, err)
		return
	}

	if !saveResponse.Completed {
		slog.Warn("SaveChanges completed partially", "tour_id", tourID)
	}
	response.SuccessWithMessage(w, "Staged changes saved", saveResponse)
}

// ValidateTour implements TourHandler.
func (h *TourHandlerImpl) ValidateTour(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "id")

	outcome, err := h.tourService.ValidateTour(r.Context(), tourID)
	if err != nil {
		slog.Error("ValidateTour service error", "error", err, "tour_id", tourID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, outcome)
}

// GetSSEToken generates a short-lived token for SSE connections
func (h *TourHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(userID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, map[string]interface{}{
		"token":      token,
		"expires_in": expiresIn,
	})
}

// Stream handles the SSE connection for a tour's planner updates
func (h *TourHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	tourID := chi.URLParam(r, "id")

	// Token comes from a query parameter (SSE doesn't support custom headers)
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	userID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	events, cleanup := h.hub.Subscribe(tourID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"tour_id\":\"%s\",\"user_id\":\"%s\"}\n\n", tourID, userID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()
		case <-keepalive.C:
			fmt.Fprintf(w, ": keepalive\n\n")
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
