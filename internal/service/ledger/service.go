package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/internal/service/approval"
)

type transactionRepo interface {
	NextSequence(ctx context.Context) (int64, error)
	Create(ctx context.Context, t *domain.Transaction) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	List(ctx context.Context, f domain.TransactionFilter) ([]domain.Transaction, error)
	TotalsByCustomer(ctx context.Context, code string) (map[domain.TransactionType]decimal.Decimal, error)
}

type approvalSubmitter interface {
	Submit(ctx context.Context, input approval.SubmitInput) (*domain.Approval, error)
}

type eventPublisher interface {
	Publish(ctx context.Context, events []domain.Event) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service owns the transactions ledger.
type Service struct {
	log           *slog.Logger
	transactions  transactionRepo
	approvals     approvalSubmitter
	events        eventPublisher
	tx            txManager
	defaultSeries string
	now           func() time.Time
}

// NewService creates a new ledger service.
func NewService(
	log *slog.Logger,
	transactions transactionRepo,
	approvals approvalSubmitter,
	events eventPublisher,
	tx txManager,
	defaultSeries string,
) *Service {
	return &Service{
		log:           log.With("service", "ledger"),
		transactions:  transactions,
		approvals:     approvals,
		events:        events,
		tx:            tx,
		defaultSeries: defaultSeries,
		now:           func() time.Time { return time.Now().UTC() },
	}
}
