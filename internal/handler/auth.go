package handler

import (
	"context"
	"net/http"

	"github.com/Amorphous121/jobboard/internal/model"
	"github.com/Amorphous121/jobboard/internal/service"
)

// AuthService is the subset of service.AuthService used by AuthHandler
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*service.RegisterResult, error)
	Login(ctx context.Context, req model.LoginRequest) (string, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles POST /api/v1/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError(model.MsgInvalidBody))
		return
	}

	result, err := h.authService.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, model.TokenResponse{Token: result.Token})
}

// Login handles POST /api/v1/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError(model.MsgInvalidBody))
		return
	}

	token, err := h.authService.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, model.TokenResponse{Token: token})
}

// Test handles GET /api/v1/test
func (h *AuthHandler) Test(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "Hello"})
}
