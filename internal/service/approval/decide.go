package approval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/internal/service/workflow"
	"github.com/heartmarshall/mikro-backoffice/pkg/ctxutil"
)

// Decide moves a pending approval to approved or rejected and applies its
// fan-out in one transaction. Deciding an already processed approval is a
// no-op that returns the stored record.
func (s *Service) Decide(ctx context.Context, id uuid.UUID, status domain.ApprovalStatus) (*domain.Approval, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !status.IsDecision() {
		return nil, domain.NewValidationError("status", "must be approved or rejected")
	}

	var (
		a      *domain.Approval
		events []domain.Event
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		a, err = s.approvals.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		events, err = s.decideLocked(ctx, a, status, userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("approval.Decide: %w", err)
	}

	s.publish(ctx, events)

	if len(events) > 0 {
		s.log.InfoContext(ctx, "approval decided",
			slog.String("approval_id", a.ID.String()),
			slog.String("type", a.Type.String()),
			slog.String("status", a.Status.String()),
			slog.String("decided_by", userID.String()))
	}
	return a, nil
}

// decideLocked records the decision on a row the caller holds locked and
// persists the fan-out plan. It returns no events when a was already
// processed.
func (s *Service) decideLocked(ctx context.Context, a *domain.Approval, status domain.ApprovalStatus, by uuid.UUID) ([]domain.Event, error) {
	now := s.now()
	changed, err := a.Decide(status, by, now)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, nil
	}

	state, err := s.loadState(ctx, a)
	if err != nil {
		return nil, err
	}
	state.Now = now

	plan, events, err := workflow.Apply(state, a)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, plan); err != nil {
		return nil, err
	}
	if err := s.approvals.UpdateDecision(ctx, a); err != nil {
		return nil, fmt.Errorf("update decision: %w", err)
	}
	return events, nil
}

// loadState reads and locks every aggregate the approval's fan-out touches.
func (s *Service) loadState(ctx context.Context, a *domain.Approval) (workflow.State, error) {
	state := workflow.State{Series: s.defaultSeries}

	if a.Status == domain.ApprovalStatusRejected {
		return s.loadRejectionState(ctx, a, state)
	}

	req, err := workflow.Require(a)
	if err != nil {
		return state, err
	}
	codes := req.ProductCodes

	if req.OrderID != nil {
		order, err := s.orders.GetForUpdate(ctx, *req.OrderID)
		if err != nil {
			return state, fmt.Errorf("load order: %w", err)
		}
		sale, err := s.transactions.Get(ctx, order.TransactionID)
		if err != nil {
			return state, fmt.Errorf("load order transaction: %w", err)
		}
		state.Order = order
		state.Transaction = sale
		for _, it := range order.Items {
			codes = append(codes, it.ProductCode)
		}
	}

	if req.InventoryID != nil {
		list, err := s.inventory.GetForUpdate(ctx, *req.InventoryID)
		if err != nil {
			return state, fmt.Errorf("load inventory list: %w", err)
		}
		state.Inventory = list
		for _, it := range list.Items {
			codes = append(codes, it.ProductCode)
		}
	}

	if len(codes) > 0 {
		products, err := s.products.LockForUpdate(ctx, codes)
		if err != nil {
			return state, fmt.Errorf("lock products: %w", err)
		}
		state.Products = products
	}

	if req.NeedsSequence {
		seq, err := s.transactions.NextSequence(ctx)
		if err != nil {
			return state, fmt.Errorf("next sequence: %w", err)
		}
		state.NextSequence = seq
	}
	return state, nil
}

// loadRejectionState loads and locks what a pending request holds: the
// order of an order_change and the list of an inventory count. A malformed
// payload or a vanished record never blocks a rejection.
func (s *Service) loadRejectionState(ctx context.Context, a *domain.Approval, state workflow.State) (workflow.State, error) {
	switch a.Type {
	case domain.ApprovalTypeOrderChange:
		var p domain.OrderChangePayload
		if err := domain.DecodePayload(a.NewData, &p); err != nil {
			return state, nil
		}
		order, err := s.orders.GetForUpdate(ctx, p.OrderID)
		if errors.Is(err, domain.ErrNotFound) {
			return state, nil
		}
		if err != nil {
			return state, fmt.Errorf("load order: %w", err)
		}
		state.Order = order

	case domain.ApprovalTypeInventory:
		var p domain.InventoryPayload
		if err := domain.DecodePayload(a.NewData, &p); err != nil {
			return state, nil
		}
		list, err := s.inventory.GetForUpdate(ctx, p.ListID)
		if errors.Is(err, domain.ErrNotFound) {
			return state, nil
		}
		if err != nil {
			return state, fmt.Errorf("load inventory list: %w", err)
		}
		state.Inventory = list
	}
	return state, nil
}

func (s *Service) persist(ctx context.Context, plan workflow.Plan) error {
	for _, adj := range plan.StockAdjustments {
		if _, err := s.products.AdjustStock(ctx, adj.ProductCode, adj.Delta); err != nil {
			return fmt.Errorf("adjust stock %s: %w", adj.ProductCode, err)
		}
	}
	if plan.ProductChange != nil {
		if _, err := s.products.ApplyChange(ctx, *plan.ProductChange); err != nil {
			return fmt.Errorf("apply product change: %w", err)
		}
	}
	if plan.NewTransaction != nil {
		if err := s.transactions.Create(ctx, plan.NewTransaction); err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}
	}
	if plan.UpdatedTransaction != nil {
		if err := s.transactions.Update(ctx, plan.UpdatedTransaction); err != nil {
			return fmt.Errorf("update transaction: %w", err)
		}
	}
	if plan.NewOrder != nil {
		if err := s.orders.Create(ctx, plan.NewOrder); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
	}
	if plan.UpdatedOrder != nil {
		if err := s.orders.Update(ctx, plan.UpdatedOrder); err != nil {
			return fmt.Errorf("update order: %w", err)
		}
	}
	if plan.CompletedInventory != nil {
		if err := s.inventory.Update(ctx, plan.CompletedInventory); err != nil {
			return fmt.Errorf("complete inventory list: %w", err)
		}
	}
	if plan.ReleasedInventory != nil {
		if err := s.inventory.Update(ctx, plan.ReleasedInventory); err != nil {
			return fmt.Errorf("release inventory list: %w", err)
		}
	}
	return nil
}
