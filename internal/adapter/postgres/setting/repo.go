// Package setting implements the runtime settings key/value store using PostgreSQL.
package setting

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres"
)

// Repo provides settings persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new settings repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const (
	getSQL = `SELECT value FROM settings WHERE key = $1`

	setSQL = `
INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
)

// Get returns the raw JSON value of key, or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, key string) (json.RawMessage, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var raw []byte
	if err := q.QueryRow(ctx, getSQL, key).Scan(&raw); err != nil {
		return nil, postgres.MapError(err, "setting", key)
	}
	return raw, nil
}

// Set stores value under key.
func (r *Repo) Set(ctx context.Context, key string, value json.RawMessage) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, setSQL, key, []byte(value)); err != nil {
		return postgres.MapError(err, "setting", key)
	}
	return nil
}
