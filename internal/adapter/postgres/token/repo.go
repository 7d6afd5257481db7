// Package token persists hashed refresh tokens.
package token

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

const entity = "refresh_token"

const (
	columns = `id, user_id, token_hash, expires_at, created_at, revoked_at`

	insertSQL = `INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES ($1, $2, $3) RETURNING ` + columns
	byHashSQL = `SELECT ` + columns + ` FROM refresh_tokens WHERE token_hash = $1`

	revokeSQL     = `UPDATE refresh_tokens SET revoked_at = now() WHERE id = $1 AND revoked_at IS NULL`
	revokeUserSQL = `UPDATE refresh_tokens SET revoked_at = now() WHERE user_id = $1 AND revoked_at IS NULL`

	// Revoked tokens are kept until they expire so a replayed token is
	// still recognised.
	purgeSQL = `DELETE FROM refresh_tokens WHERE expires_at < now()`
)

type Repo struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create stores t and fills its generated ID and CreatedAt.
func (r *Repo) Create(ctx context.Context, t *domain.RefreshToken) error {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, insertSQL, t.UserID, t.TokenHash, t.ExpiresAt)
	if err != nil {
		return postgres.MapError(err, entity, t.UserID)
	}
	created, err := pgx.CollectExactlyOneRow(rows, scanToken)
	if err != nil {
		return postgres.MapError(err, entity, t.UserID)
	}
	*t = created
	return nil
}

// GetByHash finds a token by hash whatever its state. Callers decide what a
// revoked or expired token means.
func (r *Repo) GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, byHashSQL, hash)
	if err != nil {
		return nil, postgres.MapError(err, entity, "by-hash")
	}
	t, err := pgx.CollectExactlyOneRow(rows, scanToken)
	if err != nil {
		return nil, postgres.MapError(err, entity, "by-hash")
	}
	return &t, nil
}

// RevokeByID is a no-op for a token that is already revoked.
func (r *Repo) RevokeByID(ctx context.Context, id uuid.UUID) error {
	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, revokeSQL, id); err != nil {
		return postgres.MapError(err, entity, id)
	}
	return nil
}

// RevokeAllByUser revokes every live token of userID and reports how many
// were affected.
func (r *Repo) RevokeAllByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, revokeUserSQL, userID)
	if err != nil {
		return 0, postgres.MapError(err, entity, userID)
	}
	return int(tag.RowsAffected()), nil
}

// DeleteExpired purges expired tokens.
func (r *Repo) DeleteExpired(ctx context.Context) (int, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, purgeSQL)
	if err != nil {
		return 0, postgres.MapError(err, entity, "expired")
	}
	return int(tag.RowsAffected()), nil
}

func scanToken(row pgx.CollectableRow) (domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := row.Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt, &t.RevokedAt)
	return t, err
}
