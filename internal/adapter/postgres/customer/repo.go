// Package customer implements the local cari mirror using PostgreSQL.
package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

// Repo provides customer persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new customer repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const customerColumns = `code, name, name2, tax_office, tax_number, phone, email, city, district, lastup_date, version, last_sync, updated_at`

const (
	getSQL          = `SELECT ` + customerColumns + ` FROM customers WHERE code = $1`
	getForUpdateSQL = `SELECT ` + customerColumns + ` FROM customers WHERE code = $1 FOR UPDATE`

	namesSQL = `SELECT code, name, name2 FROM customers WHERE code = ANY($1)`

	// ERP rows overwrite the mirror. version moves only when lastup_date changed.
	upsertFromERPSQL = `
INSERT INTO customers (code, name, name2, tax_office, tax_number, phone, email, city, district,
	lastup_date, version, last_sync, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1, $11, now())
ON CONFLICT (code) DO UPDATE SET
	name        = EXCLUDED.name,
	name2       = EXCLUDED.name2,
	tax_office  = EXCLUDED.tax_office,
	tax_number  = EXCLUDED.tax_number,
	phone       = EXCLUDED.phone,
	email       = EXCLUDED.email,
	city        = EXCLUDED.city,
	district    = EXCLUDED.district,
	lastup_date = EXCLUDED.lastup_date,
	last_sync   = EXCLUDED.last_sync,
	version     = CASE WHEN customers.lastup_date <> EXCLUDED.lastup_date
	                   THEN customers.version + 1 ELSE customers.version END,
	updated_at  = now()`

	updateVersionedSQL = `
UPDATE customers SET
	name = $3, name2 = $4, tax_office = $5, tax_number = $6, phone = $7, email = $8,
	city = $9, district = $10, version = version + 1, updated_at = now()
WHERE code = $1 AND version = $2
RETURNING ` + customerColumns
)

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Get returns a customer by code.
func (r *Repo) Get(ctx context.Context, code string) (*domain.Customer, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanCustomer(q.QueryRow(ctx, getSQL, code))
	if err != nil {
		return nil, postgres.MapError(err, "customer", code)
	}
	return c, nil
}

// Search matches query against code and title (case-insensitive substring).
// An empty query lists customers ordered by code. Returns an empty slice
// (not nil) when nothing matches.
func (r *Repo) Search(ctx context.Context, query string, limit int) ([]domain.Customer, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := psql.Select(customerColumns).
		From("customers").
		OrderBy("code")
	if query = strings.TrimSpace(query); query != "" {
		pattern := "%" + escapeLike(query) + "%"
		b = b.Where(sq.Or{
			sq.ILike{"code": pattern},
			sq.ILike{"name": pattern},
			sq.ILike{"name2": pattern},
		})
	}
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build customer search: %w", err)
	}

	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	return out, nil
}

// NamesByCodes returns display names keyed by customer code. Unknown codes
// are absent from the map.
func (r *Repo) NamesByCodes(ctx context.Context, codes []string) (map[string]string, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	out := make(map[string]string, len(codes))
	if len(codes) == 0 {
		return out, nil
	}

	rows, err := q.Query(ctx, namesSQL, codes)
	if err != nil {
		return nil, fmt.Errorf("customer names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.Code, &c.Name, &c.Name2); err != nil {
			return nil, fmt.Errorf("scan customer name: %w", err)
		}
		out[c.Code] = c.DisplayName()
	}
	return out, rows.Err()
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// UpsertFromERP mirrors ERP rows in one batch and stamps them with syncedAt.
func (r *Repo) UpsertFromERP(ctx context.Context, customers []domain.Customer, syncedAt time.Time) error {
	if len(customers) == 0 {
		return nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, c := range customers {
		batch.Queue(upsertFromERPSQL,
			c.Code, c.Name, c.Name2, c.TaxOffice, c.TaxNumber, c.Phone, c.Email, c.City, c.District,
			c.LastupDate, syncedAt,
		)
	}

	br := q.SendBatch(ctx, batch)
	defer br.Close()

	for _, c := range customers {
		if _, err := br.Exec(); err != nil {
			return postgres.MapError(err, "customer", c.Code)
		}
	}
	return nil
}

// UpdateVersioned writes c when the stored version equals expected and bumps
// the version. A stale version yields *domain.VersionConflictError carrying
// the stored row.
func (r *Repo) UpdateVersioned(ctx context.Context, c *domain.Customer, expected int64) (*domain.Customer, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	updated, err := scanCustomer(q.QueryRow(ctx, updateVersionedSQL,
		c.Code, expected, c.Name, c.Name2, c.TaxOffice, c.TaxNumber, c.Phone, c.Email, c.City, c.District,
	))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, postgres.MapError(err, "customer", c.Code)
	}

	current, getErr := r.Get(ctx, c.Code)
	if getErr != nil {
		return nil, getErr
	}
	return nil, &domain.VersionConflictError{
		Entity:          "customer",
		Key:             c.Code,
		ExpectedVersion: expected,
		CurrentVersion:  current.Version,
		Current:         current,
	}
}

// GetForUpdate locks the customer row for the rest of the transaction.
func (r *Repo) GetForUpdate(ctx context.Context, code string) (*domain.Customer, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanCustomer(q.QueryRow(ctx, getForUpdateSQL, code))
	if err != nil {
		return nil, postgres.MapError(err, "customer", code)
	}
	return c, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.Code, &c.Name, &c.Name2, &c.TaxOffice, &c.TaxNumber, &c.Phone, &c.Email,
		&c.City, &c.District, &c.LastupDate, &c.Version, &c.LastSync, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
