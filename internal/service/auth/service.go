// Package auth runs the session lifecycle: password login, refresh token
// rotation with replay detection, and logout.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/mikro-backoffice/internal/auth"
	"github.com/heartmarshall/mikro-backoffice/internal/config"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type tokenRepo interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error)
	RevokeByID(ctx context.Context, id uuid.UUID) error
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) (int, error)
	DeleteExpired(ctx context.Context) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type accessTokens interface {
	IssueAccess(u *domain.User) (string, time.Time, error)
	ParseAccess(token string) (auth.Claims, error)
}

type Service struct {
	log        *slog.Logger
	users      userRepo
	tokens     tokenRepo
	tx         txManager
	access     accessTokens
	refreshTTL time.Duration
	now        func() time.Time
}

func NewService(
	logger *slog.Logger,
	users userRepo,
	tokens tokenRepo,
	tx txManager,
	access accessTokens,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:        logger.With("service", "auth"),
		users:      users,
		tokens:     tokens,
		tx:         tx,
		access:     access,
		refreshTTL: cfg.RefreshTokenTTL,
		now:        time.Now,
	}
}

// Session is the token pair handed to a client after login or refresh.
// RefreshToken is the raw value; only its hash is stored.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         *domain.User
}

// ExpiresIn is the remaining access token lifetime in whole seconds.
func (s Session) ExpiresIn(now time.Time) int {
	if d := s.ExpiresAt.Sub(now); d > 0 {
		return int(d.Seconds())
	}
	return 0
}
