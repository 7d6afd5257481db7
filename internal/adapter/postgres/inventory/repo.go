// Package inventory implements inventory count sessions using PostgreSQL.
package inventory

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

// Repo provides inventory list persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new inventory repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const listColumns = `id, name, status, items, total_items, total_value, approval_id, created_by, created_at, updated_at`

const (
	createSQL = `
INSERT INTO inventory_lists (id, name, status, items, total_items, total_value, approval_id, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	getSQL          = `SELECT ` + listColumns + ` FROM inventory_lists WHERE id = $1`
	getForUpdateSQL = `SELECT ` + listColumns + ` FROM inventory_lists WHERE id = $1 FOR UPDATE`

	updateSQL = `
UPDATE inventory_lists SET name = $2, status = $3, items = $4, total_items = $5, total_value = $6,
	approval_id = $7, updated_at = $8
WHERE id = $1`

	deleteSQL = `DELETE FROM inventory_lists WHERE id = $1`
)

// Create inserts a new count session.
func (r *Repo) Create(ctx context.Context, l *domain.InventoryList) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	items, err := marshalItems(l.Items)
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, createSQL,
		l.ID, l.Name, string(l.Status), items, l.TotalItems, l.TotalValue, l.ApprovalID, l.CreatedBy, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "inventory_list", l.ID)
	}
	return nil
}

// Get returns a count session by ID.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*domain.InventoryList, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	l, err := scanList(q.QueryRow(ctx, getSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "inventory_list", id)
	}
	return l, nil
}

// GetForUpdate returns a count session row-locked until the transaction ends.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.InventoryList, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	l, err := scanList(q.QueryRow(ctx, getForUpdateSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "inventory_list", id)
	}
	return l, nil
}

// Update persists a count session.
func (r *Repo) Update(ctx context.Context, l *domain.InventoryList) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	items, err := marshalItems(l.Items)
	if err != nil {
		return err
	}

	tag, err := q.Exec(ctx, updateSQL,
		l.ID, l.Name, string(l.Status), items, l.TotalItems, l.TotalValue, l.ApprovalID, l.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "inventory_list", l.ID)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "inventory_list", l.ID)
	}
	return nil
}

// Delete removes a count session.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "inventory_list", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "inventory_list", id)
	}
	return nil
}

// List returns count sessions newest first, optionally narrowed by status.
func (r *Repo) List(ctx context.Context, status *domain.InventoryStatus) ([]domain.InventoryList, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := psql.Select(listColumns).From("inventory_lists").OrderBy("created_at DESC", "id")
	if status != nil {
		b = b.Where(sq.Eq{"status": string(*status)})
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build inventory list: %w", err)
	}

	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	out := make([]domain.InventoryList, 0)
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory list: %w", err)
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

func scanList(row pgx.Row) (*domain.InventoryList, error) {
	var (
		l      domain.InventoryList
		status string
		items  []byte
	)
	err := row.Scan(&l.ID, &l.Name, &status, &items, &l.TotalItems, &l.TotalValue, &l.ApprovalID,
		&l.CreatedBy, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	l.Status = domain.InventoryStatus(status)
	l.Items = make([]domain.CountedProduct, 0)
	if len(items) > 0 {
		if err := json.Unmarshal(items, &l.Items); err != nil {
			return nil, fmt.Errorf("inventory list %s unmarshal items: %w", l.ID, err)
		}
	}
	return &l, nil
}

func marshalItems(items []domain.CountedProduct) ([]byte, error) {
	if items == nil {
		items = []domain.CountedProduct{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal counted items: %w", err)
	}
	return b, nil
}
