// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const userColumns = `id, username, name, password_hash, role, series, permissions, active, created_at, updated_at`

const (
	getByIDSQL       = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	getByUsernameSQL = `SELECT ` + userColumns + ` FROM users WHERE lower(username) = lower($1)`
	listSQL          = `SELECT ` + userColumns + ` FROM users ORDER BY username`

	createSQL = `
INSERT INTO users (id, username, name, password_hash, role, series, permissions, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + userColumns

	updateRoleSQL = `
UPDATE users SET role = $2, updated_at = now()
WHERE id = $1
RETURNING ` + userColumns

	updatePermissionsSQL = `
UPDATE users SET permissions = $2, updated_at = now()
WHERE id = $1
RETURNING ` + userColumns

	updatePasswordSQL = `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`
	setActiveSQL      = `UPDATE users SET active = $2, updated_at = now() WHERE id = $1`
)

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// GetByUsername returns a user by case-insensitive username.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx, getByUsernameSQL, strings.TrimSpace(username)))
	if err != nil {
		return nil, postgres.MapError(err, "user", username)
	}
	return u, nil
}

// List returns all users ordered by username.
// Returns an empty slice (not nil) when there are none.
func (r *Repo) List(ctx context.Context) ([]*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new user. A duplicate username yields domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	perms, err := marshalGrants(u.Permissions)
	if err != nil {
		return nil, err
	}

	created, err := scanUser(q.QueryRow(ctx, createSQL,
		u.ID, u.Username, u.Name, u.PasswordHash, string(u.Role), u.Series, perms, u.Active, u.CreatedAt, u.UpdatedAt,
	))
	if err != nil {
		return nil, postgres.MapError(err, "user", u.Username)
	}
	return created, nil
}

// UpdateRole changes a user's role.
func (r *Repo) UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx, updateRoleSQL, id, string(role)))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// UpdatePermissions replaces a user's explicit permission grants.
func (r *Repo) UpdatePermissions(ctx context.Context, id uuid.UUID, grants []domain.PermissionGrant) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	perms, err := marshalGrants(grants)
	if err != nil {
		return nil, err
	}

	u, err := scanUser(q.QueryRow(ctx, updatePermissionsSQL, id, perms))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// UpdatePassword stores a new password hash.
func (r *Repo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, updatePasswordSQL, id, hash)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "user", id)
	}
	return nil
}

// SetActive enables or disables a user account.
func (r *Repo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, setActiveSQL, id, active)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "user", id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Scan helpers
// ---------------------------------------------------------------------------

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u     domain.User
		role  string
		perms []byte
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &role, &u.Series, &perms,
		&u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = domain.UserRole(role)

	u.Permissions = make([]domain.PermissionGrant, 0)
	if len(perms) > 0 {
		if err := json.Unmarshal(perms, &u.Permissions); err != nil {
			return nil, fmt.Errorf("user %s unmarshal permissions: %w", u.ID, err)
		}
	}
	return &u, nil
}

func marshalGrants(grants []domain.PermissionGrant) ([]byte, error) {
	if grants == nil {
		grants = []domain.PermissionGrant{}
	}
	b, err := json.Marshal(grants)
	if err != nil {
		return nil, fmt.Errorf("marshal permissions: %w", err)
	}
	return b, nil
}
