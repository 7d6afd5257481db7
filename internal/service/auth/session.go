package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/mikro-backoffice/internal/auth"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/pkg/ctxutil"
)

// Login checks username and password and opens a session. Unknown users,
// inactive users and wrong passwords all yield domain.ErrUnauthorized.
func (s *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	u, err := s.users.GetByUsername(ctx, input.Username)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil, domain.ErrUnauthorized
	case err != nil:
		return nil, fmt.Errorf("auth.Login: %w", err)
	}

	ok, err := auth.CheckPassword(u.PasswordHash, input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !u.Active {
		s.log.WarnContext(ctx, "login refused for inactive user", slog.String("user_id", u.ID.String()))
		return nil, domain.ErrUnauthorized
	}

	sess, err := s.open(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}
	s.log.InfoContext(ctx, "user logged in",
		slog.String("user_id", u.ID.String()),
		slog.String("role", u.Role.String()))
	return sess, nil
}

// Refresh trades a refresh token for a new session and revokes the old
// token. Presenting a token that was already rotated away is treated as
// theft: every live token of its owner is revoked.
func (s *Service) Refresh(ctx context.Context, input RefreshInput) (*Session, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		sess     *Session
		replayed bool
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		tok, err := s.tokens.GetByHash(ctx, auth.HashToken(input.RefreshToken))
		if err != nil {
			return err
		}

		if tok.IsRevoked() {
			n, err := s.tokens.RevokeAllByUser(ctx, tok.UserID)
			if err != nil {
				return err
			}
			replayed = true
			s.log.WarnContext(ctx, "revoked refresh token replayed",
				slog.String("user_id", tok.UserID.String()),
				slog.Int("revoked", n))
			return nil
		}
		if tok.IsExpired(s.now()) {
			return domain.ErrUnauthorized
		}

		u, err := s.users.GetByID(ctx, tok.UserID)
		if err != nil {
			return err
		}
		if !u.Active {
			return domain.ErrUnauthorized
		}

		if err := s.tokens.RevokeByID(ctx, tok.ID); err != nil {
			return err
		}
		sess, err = s.open(ctx, u)
		return err
	})

	switch {
	case replayed, errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrNotFound):
		return nil, domain.ErrUnauthorized
	case err != nil:
		return nil, fmt.Errorf("auth.Refresh: %w", err)
	}
	return sess, nil
}

// Logout revokes every refresh token of the caller.
func (s *Service) Logout(ctx context.Context) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if _, err := s.tokens.RevokeAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("auth.Logout: %w", err)
	}
	s.log.InfoContext(ctx, "user logged out", slog.String("user_id", userID.String()))
	return nil
}

// ValidateToken resolves an access token into claims for the auth
// middleware.
func (s *Service) ValidateToken(_ context.Context, token string) (auth.Claims, error) {
	claims, err := s.access.ParseAccess(token)
	if err != nil {
		return auth.Claims{}, domain.ErrUnauthorized
	}
	return claims, nil
}

// CleanupExpiredTokens purges expired refresh tokens.
func (s *Service) CleanupExpiredTokens(ctx context.Context) (int, error) {
	n, err := s.tokens.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("auth.CleanupExpiredTokens: %w", err)
	}
	s.log.InfoContext(ctx, "expired refresh tokens purged", slog.Int("count", n))
	return n, nil
}

func (s *Service) open(ctx context.Context, u *domain.User) (*Session, error) {
	access, exp, err := s.access.IssueAccess(u)
	if err != nil {
		return nil, err
	}

	raw, hash := auth.NewRefreshToken()
	if err := s.tokens.Create(ctx, &domain.RefreshToken{
		UserID:    u.ID,
		TokenHash: hash,
		ExpiresAt: s.now().Add(s.refreshTTL),
	}); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &Session{AccessToken: access, RefreshToken: raw, ExpiresAt: exp, User: u}, nil
}
