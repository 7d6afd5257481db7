package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/internal/service/user"
)

type userService interface {
	Me(ctx context.Context) (*domain.User, error)
	ChangePassword(ctx context.Context, input user.ChangePasswordInput) error
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, input user.CreateInput) (*domain.User, error)
	UpdateRole(ctx context.Context, targetUserID uuid.UUID, role domain.UserRole) (*domain.User, error)
	UpdatePermissions(ctx context.Context, targetUserID uuid.UUID, grants []domain.PermissionGrant) (*domain.User, error)
	SetActive(ctx context.Context, targetUserID uuid.UUID, active bool) error
}

// UserHandler serves the profile and user administration endpoints.
type UserHandler struct {
	svc userService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "user")}
}

type changePasswordRequest struct {
	Current string `json:"currentPassword" validate:"required"`
	New     string `json:"newPassword" validate:"required,max=72"`
}

type createUserRequest struct {
	Username    string                   `json:"username" validate:"required,max=100"`
	Name        string                   `json:"name" validate:"required,max=255"`
	Password    string                   `json:"password" validate:"required,max=72"`
	Role        string                   `json:"role" validate:"required,oneof=admin manager sales warehouse"`
	Series      string                   `json:"series" validate:"max=20"`
	Permissions []domain.PermissionGrant `json:"permissions"`
}

type roleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin manager sales warehouse"`
}

type permissionsRequest struct {
	Permissions []domain.PermissionGrant `json:"permissions" validate:"required"`
}

type activeRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// Me handles GET /api/v1/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Me(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}

// ChangePassword handles PUT /api/v1/me/password.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if err := h.svc.ChangePassword(r.Context(), user.ChangePasswordInput{Current: req.Current, New: req.New}); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/v1/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(users, toUserDTO))
}

// Create handles POST /api/v1/users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	u, err := h.svc.Create(r.Context(), user.CreateInput{
		Username:    req.Username,
		Name:        req.Name,
		Password:    req.Password,
		Role:        domain.UserRole(req.Role),
		Series:      req.Series,
		Permissions: req.Permissions,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserDTO(u))
}

// UpdateRole handles PUT /api/v1/users/{id}/role.
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req roleRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	u, err := h.svc.UpdateRole(r.Context(), id, domain.UserRole(req.Role))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}

// UpdatePermissions handles PUT /api/v1/users/{id}/permissions.
func (h *UserHandler) UpdatePermissions(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req permissionsRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	u, err := h.svc.UpdatePermissions(r.Context(), id, req.Permissions)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}

// SetActive handles PUT /api/v1/users/{id}/active.
func (h *UserHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req activeRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if err := h.svc.SetActive(r.Context(), id, *req.Active); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
