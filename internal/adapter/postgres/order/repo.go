// Package order implements fulfilment orders using PostgreSQL.
package order

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

// Repo provides order persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new order repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const orderColumns = `id, status, customer_code, items, discount, total_amount, transaction_id, pending_change, note, created_at, updated_at, delivered_at`

const (
	createSQL = `
INSERT INTO orders (id, status, customer_code, items, discount, total_amount, transaction_id,
	pending_change, note, created_at, updated_at, delivered_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	getSQL          = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	getForUpdateSQL = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`

	updateSQL = `
UPDATE orders SET status = $2, items = $3, discount = $4, total_amount = $5, pending_change = $6,
	note = $7, updated_at = $8, delivered_at = $9
WHERE id = $1`
)

// Create inserts a new order.
func (r *Repo) Create(ctx context.Context, o *domain.Order) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	items, err := marshalItems(o.Items)
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, createSQL,
		o.ID, string(o.Status), o.CustomerCode, items, o.Discount, o.TotalAmount, o.TransactionID,
		o.PendingChange, o.Note, o.CreatedAt, o.UpdatedAt, o.DeliveredAt,
	)
	if err != nil {
		return postgres.MapError(err, "order", o.ID)
	}
	return nil
}

// Get returns an order by ID.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	o, err := scanOrder(q.QueryRow(ctx, getSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "order", id)
	}
	return o, nil
}

// GetForUpdate returns an order row-locked until the transaction ends.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	o, err := scanOrder(q.QueryRow(ctx, getForUpdateSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "order", id)
	}
	return o, nil
}

// Update persists the mutable fields of an order.
func (r *Repo) Update(ctx context.Context, o *domain.Order) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	items, err := marshalItems(o.Items)
	if err != nil {
		return err
	}

	tag, err := q.Exec(ctx, updateSQL,
		o.ID, string(o.Status), items, o.Discount, o.TotalAmount, o.PendingChange, o.Note, o.UpdatedAt, o.DeliveredAt,
	)
	if err != nil {
		return postgres.MapError(err, "order", o.ID)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "order", o.ID)
	}
	return nil
}

// List returns orders newest first.
func (r *Repo) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := psql.Select(orderColumns).From("orders").OrderBy("created_at DESC", "id")
	if f.Status != nil {
		b = b.Where(sq.Eq{"status": string(*f.Status)})
	}
	if f.CustomerCode != nil {
		b = b.Where(sq.Eq{"customer_code": *f.CustomerCode})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build order list: %w", err)
	}

	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o      domain.Order
		status string
		items  []byte
	)
	err := row.Scan(&o.ID, &status, &o.CustomerCode, &items, &o.Discount, &o.TotalAmount, &o.TransactionID,
		&o.PendingChange, &o.Note, &o.CreatedAt, &o.UpdatedAt, &o.DeliveredAt)
	if err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	o.Items = make([]domain.LineItem, 0)
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("order %s unmarshal items: %w", o.ID, err)
		}
	}
	return &o, nil
}

func marshalItems(items []domain.LineItem) ([]byte, error) {
	if items == nil {
		items = []domain.LineItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}
	return b, nil
}
