package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/pkg/ctxutil"
)

type permissionChecker interface {
	Check(ctx context.Context, userID uuid.UUID, perm domain.Permission) error
}

// Permissions guards handlers with resource:action checks.
type Permissions struct {
	checker permissionChecker
	log     *slog.Logger
}

// NewPermissions creates a permission guard backed by checker.
func NewPermissions(checker permissionChecker, logger *slog.Logger) *Permissions {
	return &Permissions{checker: checker, log: logger}
}

// Require returns middleware that answers 401 for anonymous requests and
// 403 when the user lacks perm.
func (p *Permissions) Require(perm domain.Permission) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := ctxutil.UserIDFromCtx(r.Context())
			if !ok {
				challenge(w, "Bearer")
				return
			}

			err := p.checker.Check(r.Context(), userID, perm)
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, domain.ErrForbidden):
				p.log.WarnContext(r.Context(), "permission denied",
					slog.String("user_id", userID.String()),
					slog.String("role", ctxutil.UserRoleFromCtx(r.Context())),
					slog.String("permission", perm.String()))
				writeError(w, http.StatusForbidden, "permission "+perm.String()+" required")
			default:
				p.log.ErrorContext(r.Context(), "permission check failed",
					slog.String("permission", perm.String()),
					slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
					slog.String("error", err.Error()))
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		})
	}
}
