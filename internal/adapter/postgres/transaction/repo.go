// Package transaction implements the local ledger using PostgreSQL.
package transaction

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	postgres "github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

// sequenceLock names the advisory lock serialising sequence allocation.
const sequenceLock = "transactions.sequence"

// Repo provides ledger persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new transaction repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const txColumns = `id, type, customer_code, amount, items, sequence, series, description, payment_method, approval_id, created_by, date, updated_at`

const (
	nextSequenceSQL = `SELECT COALESCE(MAX(sequence), 0) + 1 FROM transactions`

	createSQL = `
INSERT INTO transactions (id, type, customer_code, amount, items, sequence, series, description,
	payment_method, approval_id, created_by, date, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	getSQL = `SELECT ` + txColumns + ` FROM transactions WHERE id = $1`

	updateSQL = `
UPDATE transactions SET amount = $2, items = $3, description = $4, updated_at = $5
WHERE id = $1`

	totalsSQL = `
SELECT type, COALESCE(SUM(amount), 0)
FROM transactions
WHERE customer_code = $1
GROUP BY type`
)

// ---------------------------------------------------------------------------
// Sequence
// ---------------------------------------------------------------------------

// NextSequence returns max(sequence)+1, or 1 on an empty ledger. Inside a
// transaction it first takes the ledger advisory lock so concurrent writers
// cannot allocate the same number; the lock is held until commit.
func (r *Repo) NextSequence(ctx context.Context) (int64, error) {
	if postgres.InTx(ctx) {
		if err := postgres.AdvisoryXactLock(ctx, r.pool, sequenceLock); err != nil {
			return 0, err
		}
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var next int64
	if err := q.QueryRow(ctx, nextSequenceSQL).Scan(&next); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return next, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a transaction. Sequence must already be allocated.
func (r *Repo) Create(ctx context.Context, t *domain.Transaction) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	items, err := marshalItems(t.Items)
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, createSQL,
		t.ID, string(t.Type), t.CustomerCode, t.Amount, items, t.Sequence, t.Series, t.Description,
		methodArg(t.PaymentMethod), t.ApprovalID, t.CreatedBy, t.Date, t.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "transaction", t.ID)
	}
	return nil
}

// Update rewrites the amount, items and description of a transaction.
func (r *Repo) Update(ctx context.Context, t *domain.Transaction) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	items, err := marshalItems(t.Items)
	if err != nil {
		return err
	}

	tag, err := q.Exec(ctx, updateSQL, t.ID, t.Amount, items, t.Description, t.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "transaction", t.ID)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "transaction", t.ID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Get returns a transaction by ID.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanTransaction(q.QueryRow(ctx, getSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "transaction", id)
	}
	return t, nil
}

// List returns transactions matching f, newest first.
func (r *Repo) List(ctx context.Context, f domain.TransactionFilter) ([]domain.Transaction, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := psql.Select(txColumns).From("transactions").OrderBy("date DESC", "sequence DESC")
	if f.CustomerCode != nil {
		b = b.Where(sq.Eq{"customer_code": *f.CustomerCode})
	}
	if f.Type != nil {
		b = b.Where(sq.Eq{"type": string(*f.Type)})
	}
	if f.From != nil {
		b = b.Where(sq.GtOrEq{"date": *f.From})
	}
	if f.To != nil {
		b = b.Where(sq.Lt{"date": *f.To})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build transaction list: %w", err)
	}

	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// TotalsByCustomer sums amounts per transaction type for one customer.
func (r *Repo) TotalsByCustomer(ctx context.Context, code string) (map[domain.TransactionType]decimal.Decimal, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, totalsSQL, code)
	if err != nil {
		return nil, fmt.Errorf("transaction totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[domain.TransactionType]decimal.Decimal, 4)
	for rows.Next() {
		var (
			typ string
			sum decimal.Decimal
		)
		if err := rows.Scan(&typ, &sum); err != nil {
			return nil, fmt.Errorf("scan totals: %w", err)
		}
		totals[domain.TransactionType(typ)] = sum
	}
	return totals, rows.Err()
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		t      domain.Transaction
		typ    string
		items  []byte
		method *string
	)
	err := row.Scan(&t.ID, &typ, &t.CustomerCode, &t.Amount, &items, &t.Sequence, &t.Series,
		&t.Description, &method, &t.ApprovalID, &t.CreatedBy, &t.Date, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Type = domain.TransactionType(typ)
	if method != nil {
		m := domain.PaymentMethod(*method)
		t.PaymentMethod = &m
	}
	t.Items = make([]domain.LineItem, 0)
	if len(items) > 0 {
		if err := json.Unmarshal(items, &t.Items); err != nil {
			return nil, fmt.Errorf("transaction %s unmarshal items: %w", t.ID, err)
		}
	}
	return &t, nil
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

func methodArg(m *domain.PaymentMethod) *string {
	if m == nil {
		return nil
	}
	s := string(*m)
	return &s
}
