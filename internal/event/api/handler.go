package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"event-manager/internal/auth"
	"event-manager/internal/event"
	"event-manager/internal/logger"
	"event-manager/internal/models"
	"event-manager/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Service *event.Service
	Logger  *logger.Logger
}

func NewHandler(service *event.Service, logger *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: logger}
}

// ListEvents serves GET /api/events. With type=registered&attendeeId=N
// it returns the attendee's events; otherwise all events, optionally
// restricted to those with at least one session.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if query.Get("type") == "registered" && query.Get("attendeeId") != "" {
		attendeeID, err := strconv.ParseInt(query.Get("attendeeId"), 10, 64)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid attendee id")
			return
		}

		events, err := h.Service.ListRegisteredEvents(r.Context(), attendeeID)
		if err != nil {
			h.Logger.Error("API", fmt.Sprintf("ListEvents: registered query failed: %v", err))
			utils.Error(w, http.StatusInternalServerError, "Failed to list events")
			return
		}
		utils.JSON(w, http.StatusOK, events)
		return
	}

	events, err := h.Service.ListEvents(r.Context(), query.Get("hasSessions") == "true")
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListEvents: query failed: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to list events")
		return
	}
	utils.JSON(w, http.StatusOK, events)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	detail, err := h.Service.GetEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			utils.Error(w, http.StatusNotFound, "Event not found")
			return
		}
		h.Logger.Error("API", fmt.Sprintf("GetEvent: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to load event")
		return
	}
	utils.JSON(w, http.StatusOK, detail)
}

// ListSchedules serves GET /api/events/{id}/schedules. The optional
// attendeeId query parameter drives the is_registered annotation.
func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	var attendeeID int64
	if raw := r.URL.Query().Get("attendeeId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid attendee id")
			return
		}
		attendeeID = parsed
	}

	schedules, err := h.Service.ListSchedules(r.Context(), id, attendeeID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListSchedules: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to list schedules")
		return
	}
	utils.JSON(w, http.StatusOK, schedules)
}

func (h *Handler) ListAttendees(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	attendees, err := h.Service.ListAttendees(r.Context(), id)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListAttendees: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to list attendees")
		return
	}
	utils.JSON(w, http.StatusOK, attendees)
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// A missing organizer_id is a validation error, not an identity
	// mismatch.
	if req.OrganizerID == 0 {
		utils.Error(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if !auth.IsCaller(r.Context(), auth.RoleOrganizer, req.OrganizerID) {
		utils.Error(w, http.StatusForbidden, "Caller is not this organizer")
		return
	}

	id, err := h.Service.CreateEvent(r.Context(), req)
	if err != nil {
		if errors.Is(err, event.ErrMissingFields) {
			utils.Error(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		h.Logger.Error("API", fmt.Sprintf("CreateEvent: %v", err))
		utils.Error(w, http.StatusBadRequest, "Failed to create event")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Event created successfully",
		"id":      id,
	})
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	callerID, callerOK := auth.UserID(r.Context())
	if !callerOK || auth.Role(r.Context()) != auth.RoleOrganizer {
		utils.Error(w, http.StatusForbidden, "Organizer account required")
		return
	}

	var patch models.EventPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Service.UpdateEvent(r.Context(), id, callerID, patch); err != nil {
		h.writeEventError(w, "UpdateEvent", err)
		return
	}
	utils.Message(w, http.StatusOK, "Event updated successfully")
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	callerID, callerOK := auth.UserID(r.Context())
	if !callerOK || auth.Role(r.Context()) != auth.RoleOrganizer {
		utils.Error(w, http.StatusForbidden, "Organizer account required")
		return
	}

	if err := h.Service.DeleteEvent(r.Context(), id, callerID); err != nil {
		h.writeEventError(w, "DeleteEvent", err)
		return
	}
	utils.Message(w, http.StatusOK, "Event and all related data deleted successfully")
}

func (h *Handler) eventID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid event id")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeEventError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, event.ErrEventNotFound):
		utils.Error(w, http.StatusNotFound, "Event not found")
	case errors.Is(err, event.ErrEmptyPatch):
		utils.Error(w, http.StatusBadRequest, "No fields to update")
	case errors.Is(err, event.ErrNotOwner):
		utils.Error(w, http.StatusForbidden, "Caller does not own this event")
	default:
		h.Logger.Error("API", fmt.Sprintf("%s: %v", op, err))
		utils.Error(w, http.StatusInternalServerError, "Operation failed")
	}
}
