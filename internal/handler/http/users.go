package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/desistore/storefront/internal/gateway"
	"github.com/desistore/storefront/internal/service"
	apperrors "github.com/desistore/storefront/pkg/errors"
	"github.com/desistore/storefront/pkg/httputil"
	"github.com/desistore/storefront/pkg/validator"
)

// UserHandler handles caller identity and profile endpoints.
type UserHandler struct {
	service *service.UserService
	logger  *slog.Logger
}

// NewUserHandler creates a new user HTTP handler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		service: svc,
		logger:  logger,
	}
}

// ProfileRequest is the JSON request body for a profile update.
type ProfileRequest struct {
	Name string `json:"name" validate:"required"`
}

// GetRole handles GET /api/v1/me/role.
func (h *UserHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	role, err := h.service.GetRole(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	admin := role == gateway.RoleAdmin
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"role":     role,
		"is_admin": admin,
	}})
}

// GetProfile handles GET /api/v1/me/profile.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetProfile(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: profile})
}

// SaveProfile handles PUT /api/v1/me/profile.
func (h *UserHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.service.SaveProfile(r.Context(), gateway.UserProfile{Name: req.Name}); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "saved"}})
}
