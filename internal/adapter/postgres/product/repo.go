// Package product implements the local catalog using PostgreSQL.
package product

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	postgres "github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

// Repo provides product persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new product repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const productColumns = `code, name, unit, price, price_list_no, stock, lastup_date, last_sync, updated_at`

const (
	getSQL           = `SELECT ` + productColumns + ` FROM products WHERE code = $1`
	getManySQL       = `SELECT ` + productColumns + ` FROM products WHERE code = ANY($1)`
	lockForUpdateSQL = `SELECT ` + productColumns + ` FROM products WHERE code = ANY($1) ORDER BY code FOR UPDATE`

	adjustStockSQL = `
UPDATE products SET stock = stock + $2, updated_at = now()
WHERE code = $1
RETURNING ` + productColumns

	applyChangeSQL = `
UPDATE products SET
	name       = COALESCE($2, name),
	price      = COALESCE($3, price),
	stock      = COALESCE($4, stock),
	updated_at = now()
WHERE code = $1
RETURNING ` + productColumns

	// Stock is owned locally and never overwritten by the ERP mirror.
	upsertFromERPSQL = `
INSERT INTO products (code, name, unit, price, price_list_no, stock, lastup_date, last_sync, updated_at)
VALUES ($1, $2, $3, $4, $5, 0, $6, $7, now())
ON CONFLICT (code) DO UPDATE SET
	name          = CASE WHEN EXCLUDED.name = '' THEN products.name ELSE EXCLUDED.name END,
	unit          = CASE WHEN EXCLUDED.unit = '' THEN products.unit ELSE EXCLUDED.unit END,
	price         = EXCLUDED.price,
	price_list_no = EXCLUDED.price_list_no,
	lastup_date   = EXCLUDED.lastup_date,
	last_sync     = EXCLUDED.last_sync,
	updated_at    = now()`
)

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Get returns a product by code.
func (r *Repo) Get(ctx context.Context, code string) (*domain.Product, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanProduct(q.QueryRow(ctx, getSQL, code))
	if err != nil {
		return nil, postgres.MapError(err, "product", code)
	}
	return p, nil
}

// GetMany returns the products found for codes keyed by code.
func (r *Repo) GetMany(ctx context.Context, codes []string) (map[string]domain.Product, error) {
	return r.queryMany(ctx, getManySQL, codes)
}

// LockForUpdate row-locks the given products in code order for the rest of
// the transaction and returns them keyed by code.
func (r *Repo) LockForUpdate(ctx context.Context, codes []string) (map[string]domain.Product, error) {
	return r.queryMany(ctx, lockForUpdateSQL, codes)
}

// List returns a page of products ordered by code. Pagination is keyset on
// code: Cursor is the last code of the previous page.
func (r *Repo) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := psql.Select(productColumns).From("products").OrderBy("code")
	if f.Search != nil && strings.TrimSpace(*f.Search) != "" {
		pattern := "%" + escapeLike(strings.TrimSpace(*f.Search)) + "%"
		b = b.Where(sq.Or{sq.ILike{"code": pattern}, sq.ILike{"name": pattern}})
	}
	if f.Cursor != "" {
		b = b.Where(sq.Gt{"code": f.Cursor})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build product list: %w", err)
	}

	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// AdjustStock adds delta (possibly negative) to the stock of a product.
func (r *Repo) AdjustStock(ctx context.Context, code string, delta decimal.Decimal) (*domain.Product, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanProduct(q.QueryRow(ctx, adjustStockSQL, code, delta))
	if err != nil {
		return nil, postgres.MapError(err, "product", code)
	}
	return p, nil
}

// ApplyChange writes the non-nil fields of change.
func (r *Repo) ApplyChange(ctx context.Context, change domain.ProductChangePayload) (*domain.Product, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanProduct(q.QueryRow(ctx, applyChangeSQL,
		change.ProductCode, change.Name, nullDecimal(change.Price), nullDecimal(change.Stock)))
	if err != nil {
		return nil, postgres.MapError(err, "product", change.ProductCode)
	}
	return p, nil
}

// UpsertFromERP mirrors price list rows in one batch. Existing stock is kept.
func (r *Repo) UpsertFromERP(ctx context.Context, entries []domain.PriceListEntry, syncedAt time.Time) error {
	if len(entries) == 0 {
		return nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(upsertFromERPSQL,
			e.ProductCode, e.ProductName, e.Unit, e.Price, e.ListNo, e.LastupDate, syncedAt)
	}

	br := q.SendBatch(ctx, batch)
	defer br.Close()

	for _, e := range entries {
		if _, err := br.Exec(); err != nil {
			return postgres.MapError(err, "product", e.ProductCode)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) queryMany(ctx context.Context, query string, codes []string) (map[string]domain.Product, error) {
	out := make(map[string]domain.Product, len(codes))
	if len(codes) == 0 {
		return out, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, query, codes)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out[p.Code] = *p
	}
	return out, rows.Err()
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.Code, &p.Name, &p.Unit, &p.Price, &p.PriceListNo, &p.Stock,
		&p.LastupDate, &p.LastSync, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
