package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"event-manager/internal/auth"
	"event-manager/internal/logger"
	"event-manager/internal/models"
	"event-manager/internal/utils"
)

type Handler struct {
	Service *auth.Service
	Logger  *logger.Logger
}

func NewHandler(service *auth.Service, logger *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: logger}
}

func (h *Handler) OrganizerSignup(w http.ResponseWriter, r *http.Request) {
	h.signup(w, r, h.Service.SignupOrganizer, "Organizer signup successful")
}

func (h *Handler) AttendeeSignup(w http.ResponseWriter, r *http.Request) {
	h.signup(w, r, h.Service.SignupAttendee, "Attendee signup successful")
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request,
	signup func(ctx context.Context, req models.SignupRequest) error, message string) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := signup(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields):
			utils.Error(w, http.StatusBadRequest, "Missing required fields")
		case errors.Is(err, auth.ErrEmailTaken):
			utils.Error(w, http.StatusBadRequest, "Email already exists")
		default:
			h.Logger.Error("AUTH", fmt.Sprintf("Signup failed: %v", err))
			utils.Error(w, http.StatusInternalServerError, "Signup failed")
		}
		return
	}

	utils.Message(w, http.StatusOK, message)
}

func (h *Handler) OrganizerLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.Service.LoginOrganizer(r.Context(), req)
	if err != nil {
		h.loginError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, models.LoginResponse{
		Message: "Organizer login successful",
		User:    *user,
		Token:   token,
	})
}

func (h *Handler) AttendeeLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.Service.LoginAttendee(r.Context(), req)
	if err != nil {
		h.loginError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, models.LoginResponse{
		Message: "Attendee login successful",
		User:    *user,
		Token:   token,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	jti := auth.JTI(r.Context())
	if err := h.Service.Logout(r.Context(), jti); err != nil {
		h.Logger.Error("AUTH", fmt.Sprintf("Logout: failed to revoke session: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to log out")
		return
	}
	utils.Message(w, http.StatusOK, "Logged out")
}

func (h *Handler) loginError(w http.ResponseWriter, err error) {
	if errors.Is(err, auth.ErrInvalidCredentials) {
		utils.Error(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	h.Logger.Error("AUTH", fmt.Sprintf("Login failed: %v", err))
	utils.Error(w, http.StatusInternalServerError, "Login failed")
}
