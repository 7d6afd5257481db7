package cart

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/internal/service/approval"
)

type cartRepo interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	Save(ctx context.Context, c *domain.Cart) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type productReader interface {
	Get(ctx context.Context, code string) (*domain.Product, error)
}

type approvalSubmitter interface {
	Submit(ctx context.Context, input approval.SubmitInput) (*domain.Approval, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service manages the per-user sales basket.
type Service struct {
	log           *slog.Logger
	carts         cartRepo
	products      productReader
	approvals     approvalSubmitter
	tx            txManager
	defaultSeries string
	now           func() time.Time
}

// NewService creates a new cart service.
func NewService(
	log *slog.Logger,
	carts cartRepo,
	products productReader,
	approvals approvalSubmitter,
	tx txManager,
	defaultSeries string,
) *Service {
	return &Service{
		log:           log.With("service", "cart"),
		carts:         carts,
		products:      products,
		approvals:     approvals,
		tx:            tx,
		defaultSeries: defaultSeries,
		now:           func() time.Time { return time.Now().UTC() },
	}
}
