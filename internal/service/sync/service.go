// Package sync pulls changed ERP rows into the local store. Each table keeps
// a watermark: the largest lastup_date seen so far. A table that was never
// synced is fetched whole.
package sync

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/mikro-backoffice/internal/adapter/lock"
	"github.com/heartmarshall/mikro-backoffice/internal/config"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

type erpSource interface {
	CustomersAfter(ctx context.Context, after *time.Time) ([]domain.Customer, error)
	AddressesAfter(ctx context.Context, after *time.Time) ([]domain.CustomerAddress, error)
	PricesAfter(ctx context.Context, after *time.Time, listNo int) ([]domain.PriceListEntry, error)
	MovementsAfter(ctx context.Context, after *time.Time) ([]domain.CustomerMovement, error)
}

type customerStore interface {
	UpsertFromERP(ctx context.Context, customers []domain.Customer, syncedAt time.Time) error
	UpsertAddresses(ctx context.Context, addrs []domain.CustomerAddress) error
}

type productStore interface {
	UpsertFromERP(ctx context.Context, entries []domain.PriceListEntry, syncedAt time.Time) error
}

type stateRepo interface {
	Get(ctx context.Context, table domain.SyncTable) (domain.SyncState, error)
	List(ctx context.Context) ([]domain.SyncState, error)
	Save(ctx context.Context, s domain.SyncState) error
}

type locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (lock.ReleaseFunc, bool, error)
}

type invalidator interface {
	Invalidate(ctx context.Context, codes ...string)
}

// Caches groups the read caches a sync pass must invalidate.
type Caches struct {
	Customers invalidator
	Prices    invalidator
}

// Service runs sync passes.
type Service struct {
	log       *slog.Logger
	erp       erpSource
	customers customerStore
	products  productStore
	state     stateRepo
	locker    locker
	caches    Caches
	cfg       config.SyncConfig
	now       func() time.Time
}

// NewService creates a new sync service.
func NewService(
	log *slog.Logger,
	erp erpSource,
	customers customerStore,
	products productStore,
	state stateRepo,
	locker locker,
	caches Caches,
	cfg config.SyncConfig,
) *Service {
	return &Service{
		log:       log.With("service", "sync"),
		erp:       erp,
		customers: customers,
		products:  products,
		state:     state,
		locker:    locker,
		caches:    caches,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}
