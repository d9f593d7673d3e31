package http

import (
	"net/http"

	"github.com/reelist/backend/internal/service"
	"github.com/reelist/backend/pkg/middleware"
)

// AuthHandler handles HTTP requests for registration and authentication.
type AuthHandler struct {
	service *service.UserService
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(svc *service.UserService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// --- Request DTOs ---

// RegisterRequest is the JSON request body for creating an account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest is the JSON request body for logging in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest is the JSON request body for changing the password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=128"`
}

// authResponse is the JSON payload returned after register and login.
type authResponse struct {
	User        any    `json:"user"`
	AccessToken string `json:"access_token"`
}

// --- Handlers ---

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.service.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: authResponse{User: user, AccessToken: token}})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.service.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: authResponse{User: user, AccessToken: token}})
}

// ChangePassword handles POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "user not authenticated")
		return
	}

	var req ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]string{"status": "password changed"}})
}
