package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"event-manager/internal/analytics"
	"event-manager/internal/auth"
	"event-manager/internal/logger"
	"event-manager/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Service *analytics.Service
	Logger  *logger.Logger
}

func NewHandler(service *analytics.Service, logger *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: logger}
}

// RegisterRoutes mounts the dashboard endpoints. All routes require an
// organizer token; the middleware runs on the parent router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/analytics", func(r chi.Router) {
		r.Get("/organizers/{id}/summary", h.OrganizerSummary)
		r.Get("/events/{id}", h.EventSummary)
	})
}

func (h *Handler) OrganizerSummary(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid organizer id")
		return
	}

	if !auth.IsCaller(r.Context(), auth.RoleOrganizer, id) {
		utils.Error(w, http.StatusForbidden, "Caller identity does not match organizer")
		return
	}

	summary, err := h.Service.OrganizerSummary(r.Context(), id)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("OrganizerSummary: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to compute summary")
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}

func (h *Handler) EventSummary(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid event id")
		return
	}

	callerID, ok := auth.UserID(r.Context())
	if !ok || auth.Role(r.Context()) != auth.RoleOrganizer {
		utils.Error(w, http.StatusForbidden, "Organizer account required")
		return
	}

	summary, err := h.Service.EventSummary(r.Context(), id, callerID)
	if err != nil {
		switch {
		case errors.Is(err, analytics.ErrEventNotFound):
			utils.Error(w, http.StatusNotFound, "Event not found")
		case errors.Is(err, analytics.ErrNotOwner):
			utils.Error(w, http.StatusForbidden, "Caller does not own this event")
		default:
			h.Logger.Error("API", fmt.Sprintf("EventSummary: %v", err))
			utils.Error(w, http.StatusInternalServerError, "Failed to compute summary")
		}
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}
