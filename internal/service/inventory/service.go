package inventory

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/internal/service/approval"
)

type inventoryRepo interface {
	Create(ctx context.Context, l *domain.InventoryList) error
	Get(ctx context.Context, id uuid.UUID) (*domain.InventoryList, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.InventoryList, error)
	Update(ctx context.Context, l *domain.InventoryList) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, status *domain.InventoryStatus) ([]domain.InventoryList, error)
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

// Service runs inventory count sessions.
type Service struct {
	log       *slog.Logger
	lists     inventoryRepo
	products  productReader
	approvals approvalSubmitter
	tx        txManager
	now       func() time.Time
}

// NewService creates a new inventory service.
func NewService(log *slog.Logger, lists inventoryRepo, products productReader, approvals approvalSubmitter, tx txManager) *Service {
	return &Service{
		log:       log.With("service", "inventory"),
		lists:     lists,
		products:  products,
		approvals: approvals,
		tx:        tx,
		now:       func() time.Time { return time.Now().UTC() },
	}
}
