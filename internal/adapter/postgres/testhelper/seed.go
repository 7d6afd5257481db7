package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

// UniqueSuffix returns a short unique string for generating non-conflicting test data.
func UniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser inserts an active user with the given role.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role domain.UserRole) domain.User {
	t.Helper()

	suffix := UniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Username:     "user-" + suffix,
		Name:         "Test User " + suffix,
		PasswordHash: "$2a$04$invalidinvalidinvalidinvalidinvalidinvalidinvalidinva",
		Role:         role,
		Series:       "T",
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, username, name, password_hash, role, series, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.Username, user.Name, user.PasswordHash, string(user.Role), user.Series,
		user.Active, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return user
}

// SeedProduct inserts a product with the given stock and a unique code.
func SeedProduct(t *testing.T, pool *pgxpool.Pool, stock string) domain.Product {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	p := domain.Product{
		Code:        "P-" + UniqueSuffix(),
		Name:        "Test Product",
		Unit:        "ADET",
		Price:       decimal.RequireFromString("12.50"),
		PriceListNo: 1,
		Stock:       decimal.RequireFromString(stock),
		LastupDate:  now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO products (code, name, unit, price, price_list_no, stock, lastup_date, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.Code, p.Name, p.Unit, p.Price, p.PriceListNo, p.Stock, p.LastupDate, p.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProduct: %v", err)
	}

	return p
}

// SeedCustomer inserts a customer at version 1.
func SeedCustomer(t *testing.T, pool *pgxpool.Pool) domain.Customer {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	c := domain.Customer{
		Code:       "120." + UniqueSuffix(),
		Name:       "Test Cari",
		City:       "İstanbul",
		LastupDate: now,
		Version:    1,
		UpdatedAt:  now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO customers (code, name, city, lastup_date, version, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.Code, c.Name, c.City, c.LastupDate, c.Version, c.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCustomer: %v", err)
	}

	return c
}
