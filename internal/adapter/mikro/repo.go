package mikro

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	mssql "github.com/microsoft/go-mssqldb"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

// Repo runs read-only queries against the ERP.
type Repo struct {
	db      *sql.DB
	log     *slog.Logger
	timeout time.Duration
}

// New creates an ERP repository. timeout bounds every query.
func New(db *sql.DB, log *slog.Logger, timeout time.Duration) *Repo {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Repo{db: db, log: log.With("adapter", "mikro"), timeout: timeout}
}

// Ping verifies the ERP connection.
func (r *Repo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// ---------------------------------------------------------------------------
// Customers
// ---------------------------------------------------------------------------

// SearchCustomers lists customers whose code or title contains search.
func (r *Repo) SearchCustomers(ctx context.Context, search string, limit int) ([]domain.Customer, error) {
	return queryAll(ctx, r, customersQuery(search, limit), scanCustomer)
}

// GetCustomer returns one customer or domain.ErrNotFound.
func (r *Repo) GetCustomer(ctx context.Context, code string) (*domain.Customer, error) {
	rows, err := queryAll(ctx, r, customerQuery(code), scanCustomer)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("erp customer %s: %w", code, domain.ErrNotFound)
	}
	return &rows[0], nil
}

// CustomersAfter returns customers changed after the watermark, oldest first.
// A nil watermark returns every customer.
func (r *Repo) CustomersAfter(ctx context.Context, after *time.Time) ([]domain.Customer, error) {
	return queryAll(ctx, r, customersAfterQuery(after), scanCustomer)
}

// Balance aggregates the ERP movements of a customer. Debit minus credit is
// what the customer owes.
func (r *Repo) Balance(ctx context.Context, code string) (domain.ERPBalance, error) {
	rows, err := queryAll(ctx, r, balanceQuery(code), func(s scanner) (domain.ERPBalance, error) {
		b := domain.ERPBalance{CustomerCode: code}
		if err := s.Scan(&b.Debit, &b.Credit); err != nil {
			return b, err
		}
		b.Balance = b.Debit.Sub(b.Credit)
		return b, nil
	})
	if err != nil {
		return domain.ERPBalance{}, err
	}
	if len(rows) == 0 {
		return domain.ERPBalance{CustomerCode: code}, nil
	}
	return rows[0], nil
}

// Names lists (code, title) pairs whose title contains search.
func (r *Repo) Names(ctx context.Context, search string, limit int) ([]domain.CustomerName, error) {
	return queryAll(ctx, r, namesQuery(search, limit), func(s scanner) (domain.CustomerName, error) {
		var n domain.CustomerName
		err := s.Scan(&n.Code, &n.Name)
		return n, err
	})
}

// ---------------------------------------------------------------------------
// Addresses
// ---------------------------------------------------------------------------

// Addresses lists addresses, optionally of one customer.
func (r *Repo) Addresses(ctx context.Context, customerCode string, limit int) ([]domain.CustomerAddress, error) {
	return queryAll(ctx, r, addressesQuery(customerCode, limit), scanAddress)
}

// AddressesAfter returns addresses changed after the watermark.
func (r *Repo) AddressesAfter(ctx context.Context, after *time.Time) ([]domain.CustomerAddress, error) {
	return queryAll(ctx, r, addressesAfterQuery(after), scanAddress)
}

// ---------------------------------------------------------------------------
// Movements
// ---------------------------------------------------------------------------

// Movements lists ERP ledger movements.
func (r *Repo) Movements(ctx context.Context, f MovementFilter) ([]domain.CustomerMovement, error) {
	return queryAll(ctx, r, movementsQuery(f), scanMovement)
}

// MovementsAfter returns movements changed after the watermark.
func (r *Repo) MovementsAfter(ctx context.Context, after *time.Time) ([]domain.CustomerMovement, error) {
	return queryAll(ctx, r, movementsAfterQuery(after), scanMovement)
}

// ---------------------------------------------------------------------------
// Prices
// ---------------------------------------------------------------------------

// Prices lists price list rows, optionally narrowed by product and list number.
func (r *Repo) Prices(ctx context.Context, stockCode string, listNo, limit int) ([]domain.PriceListEntry, error) {
	return queryAll(ctx, r, pricesQuery(stockCode, listNo, limit), scanPrice)
}

// PricesAfter returns price rows whose price or product changed after the
// watermark. listNo 0 means every list.
func (r *Repo) PricesAfter(ctx context.Context, after *time.Time, listNo int) ([]domain.PriceListEntry, error) {
	return queryAll(ctx, r, pricesAfterQuery(after, listNo), scanPrice)
}

// ---------------------------------------------------------------------------
// Query plumbing
// ---------------------------------------------------------------------------

type scanner interface {
	Scan(dest ...any) error
}

func queryAll[T any](ctx context.Context, r *Repo, b sq.SelectBuilder, scan func(scanner) (T, error)) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("mikro: build query: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.wrap(err, query)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("mikro: scan: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, r.wrap(err, query)
	}
	return out, nil
}

// wrap logs server-side errors with their SQL Server number and returns a
// wrapped error. Context errors pass through unlogged.
func (r *Repo) wrap(err error, query string) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("mikro: %w", err)
	}
	var mErr mssql.Error
	if errors.As(err, &mErr) {
		r.log.Error("erp query failed", slog.Int("number", int(mErr.Number)), slog.String("message", mErr.Message), slog.String("query", query))
	}
	return fmt.Errorf("mikro: query: %w", err)
}

func scanCustomer(s scanner) (domain.Customer, error) {
	var c domain.Customer
	err := s.Scan(&c.Code, &c.Name, &c.Name2, &c.TaxOffice, &c.TaxNumber, &c.Phone, &c.Email,
		&c.City, &c.District, &c.LastupDate)
	c.Phone = NormalizePhone(c.Phone)
	return c, err
}

func scanAddress(s scanner) (domain.CustomerAddress, error) {
	var (
		a          domain.CustomerAddress
		area, tel1 string
	)
	err := s.Scan(&a.CustomerCode, &a.AddressNo, &a.Street, &a.Neighborhood, &a.District, &a.City,
		&area, &tel1, &a.LastupDate)
	a.Phone = NormalizePhone(joinPhone(area, tel1))
	return a, err
}

func scanMovement(s scanner) (domain.CustomerMovement, error) {
	var m domain.CustomerMovement
	err := s.Scan(&m.CustomerCode, &m.Date, &m.DocumentSeries, &m.DocumentNo, &m.Direction, &m.Kind,
		&m.Amount, &m.Description, &m.LastupDate)
	return m, err
}

func scanPrice(s scanner) (domain.PriceListEntry, error) {
	var p domain.PriceListEntry
	err := s.Scan(&p.ProductCode, &p.ProductName, &p.Unit, &p.ListNo, &p.Price, &p.LastupDate)
	return p, err
}
