package customer

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/mikro-backoffice/internal/adapter/mikro"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

type customerRepo interface {
	Get(ctx context.Context, code string) (*domain.Customer, error)
	GetForUpdate(ctx context.Context, code string) (*domain.Customer, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Customer, error)
	NamesByCodes(ctx context.Context, codes []string) (map[string]string, error)
	ListAddresses(ctx context.Context, code string) ([]domain.CustomerAddress, error)
	UpdateVersioned(ctx context.Context, c *domain.Customer, expected int64) (*domain.Customer, error)
}

type erpSource interface {
	GetCustomer(ctx context.Context, code string) (*domain.Customer, error)
	Balance(ctx context.Context, code string) (domain.ERPBalance, error)
	Movements(ctx context.Context, f mikro.MovementFilter) ([]domain.CustomerMovement, error)
}

type ledgerTotals interface {
	TotalsByCustomer(ctx context.Context, code string) (map[domain.TransactionType]decimal.Decimal, error)
}

type cacheStore interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

type eventPublisher interface {
	Publish(ctx context.Context, events []domain.Event) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service serves customer reads from the local mirror with the ERP behind
// it, and accepts versioned edits from clients.
type Service struct {
	log    *slog.Logger
	repo   customerRepo
	erp    erpSource
	ledger ledgerTotals
	cache  cacheStore
	events eventPublisher
	tx     txManager
}

// NewService creates a new customer service.
func NewService(
	log *slog.Logger,
	repo customerRepo,
	erp erpSource,
	ledger ledgerTotals,
	cache cacheStore,
	events eventPublisher,
	tx txManager,
) *Service {
	return &Service{
		log:    log.With("service", "customer"),
		repo:   repo,
		erp:    erp,
		ledger: ledger,
		cache:  cache,
		events: events,
		tx:     tx,
	}
}

func customerKey(code string) string { return "customer:" + code }

func balanceKey(code string) string { return "customer-balance:" + code }
