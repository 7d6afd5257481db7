package customer

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

const (
	listAddressesSQL = `
SELECT customer_code, address_no, street, neighborhood, district, city, phone, lastup_date
FROM customer_addresses
WHERE customer_code = $1
ORDER BY address_no`

	upsertAddressSQL = `
INSERT INTO customer_addresses (customer_code, address_no, street, neighborhood, district, city, phone, lastup_date)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (customer_code, address_no) DO UPDATE SET
	street       = EXCLUDED.street,
	neighborhood = EXCLUDED.neighborhood,
	district     = EXCLUDED.district,
	city         = EXCLUDED.city,
	phone        = EXCLUDED.phone,
	lastup_date  = EXCLUDED.lastup_date`
)

// ListAddresses returns the mirrored addresses of a customer.
func (r *Repo) ListAddresses(ctx context.Context, code string) ([]domain.CustomerAddress, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listAddressesSQL, code)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	out := make([]domain.CustomerAddress, 0)
	for rows.Next() {
		var a domain.CustomerAddress
		if err := rows.Scan(&a.CustomerCode, &a.AddressNo, &a.Street, &a.Neighborhood,
			&a.District, &a.City, &a.Phone, &a.LastupDate); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpsertAddresses mirrors ERP address rows in one batch.
func (r *Repo) UpsertAddresses(ctx context.Context, addrs []domain.CustomerAddress) error {
	if len(addrs) == 0 {
		return nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, a := range addrs {
		batch.Queue(upsertAddressSQL,
			a.CustomerCode, a.AddressNo, a.Street, a.Neighborhood, a.District, a.City, a.Phone, a.LastupDate)
	}

	br := q.SendBatch(ctx, batch)
	defer br.Close()

	for _, a := range addrs {
		if _, err := br.Exec(); err != nil {
			return postgres.MapError(err, "customer_address", fmt.Sprintf("%s/%d", a.CustomerCode, a.AddressNo))
		}
	}
	return nil
}
