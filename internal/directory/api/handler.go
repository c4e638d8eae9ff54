package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"event-manager/internal/directory"
	"event-manager/internal/logger"
	"event-manager/internal/models"
	"event-manager/internal/utils"
)

type Handler struct {
	Service *directory.Service
	Logger  *logger.Logger
}

func NewHandler(service *directory.Service, logger *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: logger}
}

func (h *Handler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.Service.CreateVenue(r.Context(), req)
	if err != nil {
		if errors.Is(err, directory.ErrMissingFields) {
			utils.Error(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		h.Logger.Error("API", fmt.Sprintf("CreateVenue: %v", err))
		utils.Error(w, http.StatusBadRequest, "Failed to create venue")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Venue created successfully",
		"id":      id,
	})
}

func (h *Handler) ListVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := h.Service.ListVenues(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListVenues: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to list venues")
		return
	}
	utils.JSON(w, http.StatusOK, venues)
}

func (h *Handler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.Service.CreateVendor(r.Context(), req)
	if err != nil {
		if errors.Is(err, directory.ErrMissingFields) {
			utils.Error(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		h.Logger.Error("API", fmt.Sprintf("CreateVendor: %v", err))
		utils.Error(w, http.StatusBadRequest, "Failed to create vendor")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Vendor created successfully",
		"id":      id,
	})
}

func (h *Handler) ListVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.Service.ListVendors(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListVendors: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to list vendors")
		return
	}
	utils.JSON(w, http.StatusOK, vendors)
}
