package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/mikro-backoffice/internal/service/auth"
)

type authService interface {
	Login(ctx context.Context, input auth.LoginInput) (*auth.Session, error)
	Refresh(ctx context.Context, input auth.RefreshInput) (*auth.Session, error)
	Logout(ctx context.Context) error
}

// AuthHandler serves login, refresh and logout. Login and refresh are the
// only /api/v1 routes reachable without a token.
type AuthHandler struct {
	svc authService
	log *slog.Logger
	now func() time.Time
}

func NewAuthHandler(svc authService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: logger.With("handler", "auth"), now: time.Now}
}

type loginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required,max=512"`
}

type sessionResponse struct {
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
	TokenType    string  `json:"tokenType"`
	ExpiresIn    int     `json:"expiresIn"`
	User         userDTO `json:"user"`
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	h.respond(w, r)(h.svc.Login(r.Context(), auth.LoginInput{Username: req.Username, Password: req.Password}))
}

// Refresh handles POST /api/v1/auth/refresh.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	h.respond(w, r)(h.svc.Refresh(r.Context(), auth.RefreshInput{RefreshToken: req.RefreshToken}))
}

// Logout handles POST /api/v1/auth/logout for the caller of the access
// token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context()); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) respond(w http.ResponseWriter, r *http.Request) func(*auth.Session, error) {
	return func(s *auth.Session, err error) {
		if err != nil {
			handleError(w, r, h.log, err)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, sessionResponse{
			AccessToken:  s.AccessToken,
			RefreshToken: s.RefreshToken,
			TokenType:    "Bearer",
			ExpiresIn:    s.ExpiresIn(h.now()),
			User:         toUserDTO(s.User),
		})
	}
}
