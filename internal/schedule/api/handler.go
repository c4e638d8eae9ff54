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
	"event-manager/internal/schedule"
	"event-manager/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Service *schedule.Service
	Logger  *logger.Logger
}

func NewHandler(service *schedule.Service, logger *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: logger}
}

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	if auth.Role(r.Context()) != auth.RoleOrganizer {
		utils.Error(w, http.StatusForbidden, "Organizer account required")
		return
	}

	var req models.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.Service.CreateSchedule(r.Context(), req)
	if err != nil {
		if errors.Is(err, schedule.ErrMissingFields) {
			utils.Error(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		h.Logger.Error("API", fmt.Sprintf("CreateSchedule: %v", err))
		utils.Error(w, http.StatusBadRequest, "Failed to create session")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Session created successfully",
		"id":      id,
	})
}

func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.Service.ListSchedules(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListSchedules: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to list schedules")
		return
	}
	utils.JSON(w, http.StatusOK, schedules)
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid schedule id")
		return
	}

	callerID, ok := auth.UserID(r.Context())
	if !ok || auth.Role(r.Context()) != auth.RoleOrganizer {
		utils.Error(w, http.StatusForbidden, "Organizer account required")
		return
	}

	if err := h.Service.DeleteSchedule(r.Context(), id, callerID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrScheduleNotFound):
			utils.Error(w, http.StatusNotFound, "Schedule not found")
		case errors.Is(err, schedule.ErrNotOwner):
			utils.Error(w, http.StatusForbidden, "Caller does not own this schedule's event")
		default:
			h.Logger.Error("API", fmt.Sprintf("DeleteSchedule: %v", err))
			utils.Error(w, http.StatusInternalServerError, "Failed to delete session")
		}
		return
	}
	utils.Message(w, http.StatusOK, "Session deleted successfully")
}
