package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres"
	tokenrepo "github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres/token"
	userrepo "github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres/user"
	"github.com/heartmarshall/mikro-backoffice/internal/auth"
	"github.com/heartmarshall/mikro-backoffice/internal/config"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	authsvc "github.com/heartmarshall/mikro-backoffice/internal/service/auth"
	"github.com/heartmarshall/mikro-backoffice/internal/service/user"
)

// Maintenance commands only need the application store, so they skip the
// ERP, Redis and Pub/Sub connections.
func openStore(ctx context.Context) (*config.Config, *slog.Logger, *infra, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	logger := NewLogger(cfg.Log)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}
	in := &infra{pool: pool, closers: []func(){pool.Close}}

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			in.Close()
			return nil, nil, nil, err
		}
	}
	return cfg, logger, in, nil
}

// Promote grants the admin role to input.Username, creating the account
// when it does not exist and a password is given.
func Promote(ctx context.Context, input user.PromoteInput) (*domain.User, bool, error) {
	cfg, logger, in, err := openStore(ctx)
	if err != nil {
		return nil, false, err
	}
	defer in.Close()

	users := userrepo.New(in.pool)
	perms := auth.NewPermissionResolver(users, 1, cfg.Auth.PermissionTTL)
	svc := user.NewService(logger, users, perms, tokenrepo.New(in.pool), cfg.Auth.PasswordHashCost)

	u, created, err := svc.Promote(ctx, input)
	if err != nil {
		return nil, false, fmt.Errorf("app: promote: %w", err)
	}
	return u, created, nil
}

// CleanupTokens purges expired refresh tokens and returns how
// many were removed.
func CleanupTokens(ctx context.Context) (int, error) {
	cfg, logger, in, err := openStore(ctx)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	svc := authsvc.NewService(logger, userrepo.New(in.pool), tokenrepo.New(in.pool),
		postgres.NewTxManager(in.pool), jwt, cfg.Auth)

	return svc.CleanupExpiredTokens(ctx)
}
