// Package handlers implements the HTTP layer of the escotech API.
// Each resource gets a handler struct wired with its repositories and
// adapters plus a RegisterRoutes method; every response uses the
// Envelope shape.
package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/escotech/escotech-api/pkg/apperrors"
	"github.com/escotech/escotech-api/pkg/auth"
	"github.com/escotech/escotech-api/pkg/models"
	"github.com/escotech/escotech-api/pkg/repositories"
	"github.com/escotech/escotech-api/pkg/validation"
)

// LoginResponse is the response for POST /api/auth/login.
type LoginResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// RegisterResponse is the response for POST /api/auth/register.
type RegisterResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthHandler handles admin authentication requests.
type AuthHandler struct {
	admins repositories.AdminRepository
	tokens *auth.Service
	logger *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(admins repositories.AdminRepository, tokens *auth.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{admins: admins, tokens: tokens, logger: logger}
}

// RegisterRoutes registers the auth handler's routes on the given mux.
// Registration is gated so only an existing admin can mint a new one.
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/register", authMiddleware.RequireAdmin(h.Register))
	mux.HandleFunc("GET /api/auth/me", authMiddleware.RequireAdmin(h.Me))
}

// Login handles POST /api/auth/login. A wrong email and a wrong
// password produce the same 401 so the response leaks nothing about
// which admin accounts exist.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeJSON(r)
	if err != nil {
		_ = writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if failures := validation.Run(payload, validation.LoginRules); len(failures) > 0 {
		_ = writeValidationErrors(w, failures)
		return
	}

	email := payloadString(payload, "email")
	password := payloadRawString(payload, "password")

	admin, err := h.admins.FindByEmail(r.Context(), email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			h.logger.Error("Failed to look up admin", zap.Error(err))
			_ = writeError(w, http.StatusInternalServerError, "Failed to login")
			return
		}
		_ = writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if !auth.CheckPassword(admin.Password, password) {
		_ = writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.tokens.IssueToken(admin.ID)
	if err != nil {
		h.logger.Error("Failed to issue token", zap.Int64("admin_id", admin.ID), zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to login")
		return
	}

	h.logger.Info("Admin logged in", zap.Int64("admin_id", admin.ID))
	_ = writeData(w, http.StatusOK, LoginResponse{
		ID:    admin.ID,
		Name:  admin.Name,
		Email: admin.Email,
		Token: token,
	})
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeJSON(r)
	if err != nil {
		_ = writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if failures := validation.Run(payload, validation.RegisterRules); len(failures) > 0 {
		_ = writeValidationErrors(w, failures)
		return
	}

	hash, err := auth.HashPassword(payloadRawString(payload, "password"))
	if err != nil {
		h.logger.Error("Failed to hash password", zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to register admin")
		return
	}

	admin := &models.Admin{
		Email:    payloadString(payload, "email"),
		Password: hash,
		Name:     payloadString(payload, "name"),
	}

	if err := h.admins.Create(r.Context(), admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailTaken) {
			_ = writeError(w, http.StatusBadRequest, "Admin with this email already exists")
			return
		}
		h.logger.Error("Failed to create admin", zap.Error(err))
		_ = writeError(w, http.StatusInternalServerError, "Failed to register admin")
		return
	}

	h.logger.Info("Admin registered", zap.Int64("admin_id", admin.ID))
	_ = writeData(w, http.StatusCreated, RegisterResponse{
		ID:    admin.ID,
		Name:  admin.Name,
		Email: admin.Email,
	})
}

// Me handles GET /api/auth/me. The middleware already resolved the
// admin, so this only echoes its identity back.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	admin, ok := auth.GetAdmin(r.Context())
	if !ok {
		_ = writeError(w, http.StatusUnauthorized, "Not authorized, no token provided")
		return
	}

	_ = writeData(w, http.StatusOK, RegisterResponse{
		ID:    admin.ID,
		Name:  admin.Name,
		Email: admin.Email,
	})
}
