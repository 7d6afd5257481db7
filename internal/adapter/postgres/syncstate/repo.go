// Package syncstate stores per-table pull-sync watermarks in PostgreSQL.
package syncstate

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

// Repo provides watermark persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new sync state repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const (
	getSQL  = `SELECT table_name, last_sync, last_run_at, last_error, row_count FROM sync_state WHERE table_name = $1`
	listSQL = `SELECT table_name, last_sync, last_run_at, last_error, row_count FROM sync_state ORDER BY table_name`

	saveSQL = `
INSERT INTO sync_state (table_name, last_sync, last_run_at, last_error, row_count)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (table_name) DO UPDATE SET
	last_sync   = EXCLUDED.last_sync,
	last_run_at = EXCLUDED.last_run_at,
	last_error  = EXCLUDED.last_error,
	row_count   = EXCLUDED.row_count`
)

// Get returns the watermark of table. A table never synced yields a state
// with a nil LastSync rather than an error.
func (r *Repo) Get(ctx context.Context, table domain.SyncTable) (domain.SyncState, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanState(q.QueryRow(ctx, getSQL, string(table)))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.SyncState{Table: table}, nil
	}
	if err != nil {
		return domain.SyncState{}, postgres.MapError(err, "sync_state", table)
	}
	return s, nil
}

// List returns every stored watermark.
func (r *Repo) List(ctx context.Context) ([]domain.SyncState, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list sync state: %w", err)
	}
	defer rows.Close()

	out := make([]domain.SyncState, 0, len(domain.AllSyncTables))
	for rows.Next() {
		s, err := scanState(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sync state: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Save upserts the watermark of s.Table.
func (r *Repo) Save(ctx context.Context, s domain.SyncState) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, saveSQL, string(s.Table), s.LastSync, s.LastRunAt, s.LastError, s.RowCount); err != nil {
		return postgres.MapError(err, "sync_state", s.Table)
	}
	return nil
}

func scanState(row pgx.Row) (domain.SyncState, error) {
	var (
		s     domain.SyncState
		table string
	)
	if err := row.Scan(&table, &s.LastSync, &s.LastRunAt, &s.LastError, &s.RowCount); err != nil {
		return domain.SyncState{}, err
	}
	s.Table = domain.SyncTable(table)
	return s, nil
}
