// Package approval implements the approvals queue using PostgreSQL.
package approval

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	postgres "github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

// Repo provides approval persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new approval repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const approvalColumns = `id, type, status, processed, requested_by, decided_by, description, amount, customer_code, old_data, new_data, created_at, decided_at`

const (
	createSQL = `
INSERT INTO approvals (id, type, status, processed, requested_by, decided_by, description, amount,
	customer_code, old_data, new_data, created_at, decided_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	getSQL          = `SELECT ` + approvalColumns + ` FROM approvals WHERE id = $1`
	getForUpdateSQL = `SELECT ` + approvalColumns + ` FROM approvals WHERE id = $1 FOR UPDATE`

	updateDecisionSQL = `
UPDATE approvals SET status = $2, processed = $3, decided_by = $4, decided_at = $5
WHERE id = $1`

	countPendingSQL = `SELECT count(*) FROM approvals WHERE status = 'pending'`
)

// Create inserts a new approval.
func (r *Repo) Create(ctx context.Context, a *domain.Approval) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, createSQL,
		a.ID, string(a.Type), string(a.Status), a.Processed, a.RequestedBy, a.DecidedBy, a.Description,
		nullDecimal(a.Amount), a.CustomerCode, nullJSON(a.OldData), nullJSON(a.NewData), a.CreatedAt, a.DecidedAt,
	)
	if err != nil {
		return postgres.MapError(err, "approval", a.ID)
	}
	return nil
}

// Get returns an approval by ID.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*domain.Approval, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	a, err := scanApproval(q.QueryRow(ctx, getSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "approval", id)
	}
	return a, nil
}

// GetForUpdate returns an approval and row-locks it until the transaction ends.
// Concurrent deciders serialise on this lock.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Approval, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	a, err := scanApproval(q.QueryRow(ctx, getForUpdateSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "approval", id)
	}
	return a, nil
}

// UpdateDecision persists status, processed and the decision stamp.
func (r *Repo) UpdateDecision(ctx context.Context, a *domain.Approval) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, updateDecisionSQL, a.ID, string(a.Status), a.Processed, a.DecidedBy, a.DecidedAt)
	if err != nil {
		return postgres.MapError(err, "approval", a.ID)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "approval", a.ID)
	}
	return nil
}

// List returns approvals newest first.
func (r *Repo) List(ctx context.Context, f domain.ApprovalFilter) ([]domain.Approval, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := psql.Select(approvalColumns).From("approvals").OrderBy("created_at DESC", "id")
	if f.Status != nil {
		b = b.Where(sq.Eq{"status": string(*f.Status)})
	}
	if f.Type != nil {
		b = b.Where(sq.Eq{"type": string(*f.Type)})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build approval list: %w", err)
	}

	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list approvals: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Approval, 0)
	for rows.Next() {
		a, err := scanApproval(rows)
		if err != nil {
			return nil, fmt.Errorf("scan approval: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// CountPending returns the number of approvals awaiting a decision.
func (r *Repo) CountPending(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	if err := q.QueryRow(ctx, countPendingSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count pending approvals: %w", err)
	}
	return n, nil
}

func scanApproval(row pgx.Row) (*domain.Approval, error) {
	var (
		a      domain.Approval
		typ    string
		status string
		amount decimal.NullDecimal
	)
	err := row.Scan(&a.ID, &typ, &status, &a.Processed, &a.RequestedBy, &a.DecidedBy, &a.Description,
		&amount, &a.CustomerCode, &a.OldData, &a.NewData, &a.CreatedAt, &a.DecidedAt)
	if err != nil {
		return nil, err
	}
	a.Type = domain.ApprovalType(typ)
	a.Status = domain.ApprovalStatus(status)
	if amount.Valid {
		a.Amount = &amount.Decimal
	}
	return &a, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

// nullJSON maps an empty payload to SQL NULL instead of an invalid jsonb literal.
func nullJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
