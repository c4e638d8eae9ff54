package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"event-manager/internal/auth"
	"event-manager/internal/logger"
	"event-manager/internal/models"
	"event-manager/internal/planning"
	"event-manager/internal/utils"
)

type Handler struct {
	Service *planning.Service
	Logger  *logger.Logger
}

func NewHandler(service *planning.Service, logger *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: logger}
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	if auth.Role(r.Context()) != auth.RoleOrganizer {
		utils.Error(w, http.StatusForbidden, "Organizer account required")
		return
	}

	var req models.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.Service.CreateTask(r.Context(), req)
	if err != nil {
		if errors.Is(err, planning.ErrMissingFields) {
			utils.Error(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		h.Logger.Error("API", fmt.Sprintf("CreateTask: %v", err))
		utils.Error(w, http.StatusBadRequest, "Failed to create task")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Task created successfully",
		"id":      id,
	})
}

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Service.ListTasks(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListTasks: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to list tasks")
		return
	}
	utils.JSON(w, http.StatusOK, tasks)
}

func (h *Handler) CreateBudgetItem(w http.ResponseWriter, r *http.Request) {
	if auth.Role(r.Context()) != auth.RoleOrganizer {
		utils.Error(w, http.StatusForbidden, "Organizer account required")
		return
	}

	var req models.CreateBudgetItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.Service.CreateBudgetItem(r.Context(), req)
	if err != nil {
		if errors.Is(err, planning.ErrMissingFields) {
			utils.Error(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		h.Logger.Error("API", fmt.Sprintf("CreateBudgetItem: %v", err))
		utils.Error(w, http.StatusBadRequest, "Failed to create budget item")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Budget item created successfully",
		"id":      id,
	})
}

func (h *Handler) ListBudgetItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListBudgetItems(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListBudgetItems: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to list budget items")
		return
	}
	utils.JSON(w, http.StatusOK, items)
}
