// Package cart implements per-user sales baskets using PostgreSQL.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	postgres "github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

// Repo provides cart persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new cart repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const (
	getSQL = `
SELECT user_id, customer_code, items, discount, order_note, updated_at
FROM carts WHERE user_id = $1`

	getForUpdateSQL = getSQL + ` FOR UPDATE`

	saveSQL = `
INSERT INTO carts (user_id, customer_code, items, discount, order_note, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id) DO UPDATE SET
	customer_code = EXCLUDED.customer_code,
	items         = EXCLUDED.items,
	discount      = EXCLUDED.discount,
	order_note    = EXCLUDED.order_note,
	updated_at    = EXCLUDED.updated_at`

	deleteSQL = `DELETE FROM carts WHERE user_id = $1`
)

// Get returns the user's cart. A user without a stored cart gets an empty one.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	return r.get(ctx, getSQL, userID)
}

// GetForUpdate is Get with a row lock held until the surrounding
// transaction ends. A concurrent checkout of the same cart waits and then
// reads the committed state.
func (r *Repo) GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	return r.get(ctx, getForUpdateSQL, userID)
}

func (r *Repo) get(ctx context.Context, query string, userID uuid.UUID) (*domain.Cart, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		c     domain.Cart
		items []byte
	)
	err := q.QueryRow(ctx, query, userID).Scan(&c.UserID, &c.CustomerCode, &items, &c.Discount, &c.OrderNote, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return &domain.Cart{UserID: userID, Items: []domain.LineItem{}, Discount: decimal.Zero}, nil
	}
	if err != nil {
		return nil, postgres.MapError(err, "cart", userID)
	}

	c.Items = make([]domain.LineItem, 0)
	if len(items) > 0 {
		if err := json.Unmarshal(items, &c.Items); err != nil {
			return nil, fmt.Errorf("cart %s unmarshal items: %w", userID, err)
		}
	}
	return &c, nil
}

// Save upserts the user's cart.
func (r *Repo) Save(ctx context.Context, c *domain.Cart) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	items := c.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart items: %w", err)
	}

	if _, err := q.Exec(ctx, saveSQL, c.UserID, c.CustomerCode, raw, c.Discount, c.OrderNote, c.UpdatedAt); err != nil {
		return postgres.MapError(err, "cart", c.UserID)
	}
	return nil
}

// Delete removes the user's cart. Deleting a missing cart is not an error.
func (r *Repo) Delete(ctx context.Context, userID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, deleteSQL, userID); err != nil {
		return postgres.MapError(err, "cart", userID)
	}
	return nil
}
