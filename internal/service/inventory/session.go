package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/pkg/ctxutil"
)

// Create opens a new in-progress count session.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.InventoryList, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	l := &domain.InventoryList{
		ID:         uuid.New(),
		Name:       strings.TrimSpace(input.Name),
		Status:     domain.InventoryStatusInProgress,
		Items:      []domain.CountedProduct{},
		TotalValue: decimal.Zero,
		CreatedBy:  userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.lists.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("inventory.Create: %w", err)
	}

	s.log.InfoContext(ctx, "inventory list created", slog.String("list_id", l.ID.String()))
	return l, nil
}

// List returns count sessions, optionally filtered by status.
func (s *Service) List(ctx context.Context, status *domain.InventoryStatus) ([]domain.InventoryList, error) {
	if status != nil && !status.IsValid() {
		return nil, domain.NewValidationError("status", "unknown status")
	}
	return s.lists.List(ctx, status)
}

// Get returns one count session.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.InventoryList, error) {
	return s.lists.Get(ctx, id)
}

// Delete removes an in-progress session.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		l, err := s.lists.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !l.IsEditable() {
			return domain.NewValidationError("status", "only in-progress lists can be deleted")
		}
		return s.lists.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("inventory.Delete: %w", err)
	}
	s.log.InfoContext(ctx, "inventory list deleted", slog.String("list_id", id.String()))
	return nil
}

// Count records a counted quantity. A recount of the same product and
// department replaces the earlier entry. Current stock and unit price are
// read from the local product row.
func (s *Service) Count(ctx context.Context, listID uuid.UUID, input CountInput) (*domain.InventoryList, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	code := strings.TrimSpace(input.ProductCode)
	dept := strings.TrimSpace(input.Department)

	var l *domain.InventoryList
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		l, err = s.editable(ctx, listID)
		if err != nil {
			return err
		}
		p, err := s.products.Get(ctx, code)
		if err != nil {
			return fmt.Errorf("load product: %w", err)
		}

		now := s.now()
		l.Upsert(domain.CountedProduct{
			ProductCode:  p.Code,
			ProductName:  p.Name,
			Department:   dept,
			CountedStock: input.Counted,
			CurrentStock: p.Stock,
			UnitPrice:    p.Price,
			CountedAt:    now,
		})
		l.UpdatedAt = now
		return s.lists.Update(ctx, l)
	})
	if err != nil {
		return nil, fmt.Errorf("inventory.Count: %w", err)
	}
	return l, nil
}

// RemoveItem drops a counted entry.
func (s *Service) RemoveItem(ctx context.Context, listID uuid.UUID, productCode, department string) (*domain.InventoryList, error) {
	var l *domain.InventoryList
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		l, err = s.editable(ctx, listID)
		if err != nil {
			return err
		}
		if !l.Remove(productCode, department) {
			return fmt.Errorf("count %s/%s: %w", productCode, department, domain.ErrNotFound)
		}
		l.UpdatedAt = s.now()
		return s.lists.Update(ctx, l)
	})
	if err != nil {
		return nil, fmt.Errorf("inventory.RemoveItem: %w", err)
	}
	return l, nil
}

func (s *Service) editable(ctx context.Context, id uuid.UUID) (*domain.InventoryList, error) {
	l, err := s.lists.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if !l.IsEditable() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("list is %s", l.Status))
	}
	return l, nil
}
