package approval

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

type approvalRepo interface {
	Create(ctx context.Context, a *domain.Approval) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Approval, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Approval, error)
	UpdateDecision(ctx context.Context, a *domain.Approval) error
	List(ctx context.Context, f domain.ApprovalFilter) ([]domain.Approval, error)
	CountPending(ctx context.Context) (int, error)
}

type productRepo interface {
	LockForUpdate(ctx context.Context, codes []string) (map[string]domain.Product, error)
	AdjustStock(ctx context.Context, code string, delta decimal.Decimal) (*domain.Product, error)
	ApplyChange(ctx context.Context, change domain.ProductChangePayload) (*domain.Product, error)
}

type transactionRepo interface {
	NextSequence(ctx context.Context) (int64, error)
	Create(ctx context.Context, t *domain.Transaction) error
	Update(ctx context.Context, t *domain.Transaction) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
}

type orderRepo interface {
	Create(ctx context.Context, o *domain.Order) error
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
}

type inventoryRepo interface {
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.InventoryList, error)
	Update(ctx context.Context, l *domain.InventoryList) error
}

type settingsProvider interface {
	Current(ctx context.Context) (domain.Settings, error)
}

type eventPublisher interface {
	Publish(ctx context.Context, events []domain.Event) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Stores groups the repositories the fan-out writes to.
type Stores struct {
	Approvals    approvalRepo
	Products     productRepo
	Transactions transactionRepo
	Orders       orderRepo
	Inventory    inventoryRepo
}

// Service runs the approvals queue and the fan-out of decided approvals.
type Service struct {
	log           *slog.Logger
	approvals     approvalRepo
	products      productRepo
	transactions  transactionRepo
	orders        orderRepo
	inventory     inventoryRepo
	settings      settingsProvider
	events        eventPublisher
	tx            txManager
	defaultSeries string
	now           func() time.Time
}

// NewService creates a new approval service.
func NewService(
	log *slog.Logger,
	stores Stores,
	settings settingsProvider,
	events eventPublisher,
	tx txManager,
	defaultSeries string,
) *Service {
	return &Service{
		log:           log.With("service", "approval"),
		approvals:     stores.Approvals,
		products:      stores.Products,
		transactions:  stores.Transactions,
		orders:        stores.Orders,
		inventory:     stores.Inventory,
		settings:      settings,
		events:        events,
		tx:            tx,
		defaultSeries: defaultSeries,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// publish sends events after commit. Delivery failures are logged; the
// committed state is the source of truth.
func (s *Service) publish(ctx context.Context, events []domain.Event) {
	if len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events); err != nil {
		s.log.ErrorContext(ctx, "publish events failed",
			slog.Int("count", len(events)),
			slog.String("error", err.Error()))
	}
}
