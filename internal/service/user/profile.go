package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/mikro-backoffice/internal/auth"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/pkg/ctxutil"
)

// Me returns the authenticated user.
func (s *Service) Me(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user.Me: %w", err)
	}
	return user, nil
}

// ChangePassword replaces the authenticated user's password after checking
// the current one. Existing refresh tokens stop working; the access token in
// hand stays valid until it expires.
func (s *Service) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("user.ChangePassword: %w", err)
	}

	match, err := auth.CheckPassword(user.PasswordHash, input.Current)
	if err != nil {
		return fmt.Errorf("user.ChangePassword: %w", err)
	}
	if !match {
		return domain.NewValidationError("current_password", "does not match")
	}

	hash, err := auth.HashPassword(input.New, s.hashCost)
	if err != nil {
		return fmt.Errorf("user.ChangePassword: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("user.ChangePassword: %w", err)
	}
	if err := s.endSessions(ctx, userID); err != nil {
		return fmt.Errorf("user.ChangePassword: %w", err)
	}

	s.log.InfoContext(ctx, "password changed", slog.String("user_id", userID.String()))
	return nil
}
