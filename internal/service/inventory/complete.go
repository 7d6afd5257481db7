package inventory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/internal/service/approval"
)

// Complete finishes an in-progress session through an inventory approval.
// With gating off the approval is decided immediately and the stock deltas
// are applied; with gating on the list waits in pending-approval and stock
// stays untouched.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*domain.InventoryList, *domain.Approval, error) {
	l, err := s.lists.Get(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("inventory.Complete: %w", err)
	}
	if !l.IsEditable() {
		return nil, nil, domain.NewValidationError("status", fmt.Sprintf("list is %s", l.Status))
	}
	if len(l.Items) == 0 {
		return nil, nil, domain.NewValidationError("items", "nothing was counted")
	}

	value := l.TotalValue
	a, err := s.approvals.Submit(ctx, approval.SubmitInput{
		Type:        domain.ApprovalTypeInventory,
		Description: fmt.Sprintf("Sayım: %s (%d kalem)", l.Name, l.TotalItems),
		Amount:      &value,
		NewData: domain.InventoryPayload{
			ListID: l.ID,
			Name:   l.Name,
			Items:  l.Items,
		},
		OnCreate: func(ctx context.Context, a *domain.Approval) error {
			locked, err := s.editable(ctx, id)
			if err != nil {
				return err
			}
			approvalID := a.ID
			locked.ApprovalID = &approvalID
			locked.Status = domain.InventoryStatusPendingApproval
			locked.UpdatedAt = s.now()
			return s.lists.Update(ctx, locked)
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("inventory.Complete: %w", err)
	}

	l, err = s.lists.Get(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("inventory.Complete reload: %w", err)
	}

	s.log.InfoContext(ctx, "inventory list submitted",
		slog.String("list_id", id.String()),
		slog.String("approval_id", a.ID.String()),
		slog.String("status", l.Status.String()))
	return l, a, nil
}
