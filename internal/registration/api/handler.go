package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"event-manager/internal/auth"
	"event-manager/internal/logger"
	"event-manager/internal/models"
	"event-manager/internal/registration"
	"event-manager/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Service *registration.Service
	Logger  *logger.Logger
}

func NewHandler(service *registration.Service, logger *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: logger}
}

// Register serves POST /api/registrations.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// A missing attendee_id is a validation error, not an identity
	// mismatch.
	if req.AttendeeID == 0 {
		utils.Error(w, http.StatusBadRequest, "Missing fields")
		return
	}

	if !auth.IsCaller(r.Context(), auth.RoleAttendee, req.AttendeeID) {
		utils.Error(w, http.StatusForbidden, "Caller is not this attendee")
		return
	}

	reg, err := h.Service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, registration.ErrMissingFields):
			utils.Error(w, http.StatusBadRequest, "Missing fields")
		case errors.Is(err, registration.ErrScheduleNotFound):
			utils.Error(w, http.StatusNotFound, "Schedule not found")
		case errors.Is(err, registration.ErrAlreadyRegistered):
			utils.Error(w, http.StatusConflict, "Already registered for this session")
		default:
			h.Logger.Error("API", fmt.Sprintf("Register: %v", err))
			utils.Error(w, http.StatusBadRequest, "Registration failed")
		}
		return
	}

	utils.JSON(w, http.StatusOK, models.RegisterResponse{
		Message:        "Registration successful",
		RegistrationID: reg.ID,
		ScheduleID:     reg.ScheduleID,
	})
}

// Unregister serves DELETE /api/registrations/{eventId}. With a
// scheduleId query parameter exactly that session registration goes
// away; without one the attendee leaves every session of the event.
func (h *Handler) Unregister(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(chi.URLParam(r, "eventId"), 10, 64)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid event id")
		return
	}

	rawAttendee := r.URL.Query().Get("attendeeId")
	if rawAttendee == "" {
		utils.Error(w, http.StatusBadRequest, "Missing eventId or attendeeId")
		return
	}
	attendeeID, err := strconv.ParseInt(rawAttendee, 10, 64)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid attendee id")
		return
	}

	if !auth.IsCaller(r.Context(), auth.RoleAttendee, attendeeID) {
		utils.Error(w, http.StatusForbidden, "Caller is not this attendee")
		return
	}

	var scheduleID *int64
	if raw := r.URL.Query().Get("scheduleId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid schedule id")
			return
		}
		scheduleID = &parsed
	}

	if err := h.Service.Unregister(r.Context(), eventID, attendeeID, scheduleID); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Unregister: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to unregister")
		return
	}
	utils.Message(w, http.StatusOK, "Unregistered successfully")
}

// Pass serves GET /api/registrations/{id}/pass with a QR PNG.
func (h *Handler) Pass(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid registration id")
		return
	}

	callerID, ok := auth.UserID(r.Context())
	if !ok || auth.Role(r.Context()) != auth.RoleAttendee {
		utils.Error(w, http.StatusForbidden, "Attendee account required")
		return
	}

	png, err := h.Service.Pass(r.Context(), id, callerID)
	if err != nil {
		if errors.Is(err, registration.ErrRegistrationNotFound) {
			utils.Error(w, http.StatusNotFound, "Registration not found")
			return
		}
		h.Logger.Error("API", fmt.Sprintf("Pass: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to generate pass")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
