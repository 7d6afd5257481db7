package approval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/pkg/ctxutil"
)

// Submit records a change request. When gating is enabled for the type the
// approval stays pending; otherwise it is approved on behalf of the
// requester and fanned out in the same transaction.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*domain.Approval, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	oldData, err := domain.EncodePayload(input.OldData)
	if err != nil {
		return nil, err
	}
	newData, err := domain.EncodePayload(input.NewData)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("approval.Submit load settings: %w", err)
	}
	gated := settings.RequiresApproval(input.Type)

	now := s.now()
	a := &domain.Approval{
		ID:           uuid.New(),
		Type:         input.Type,
		Status:       domain.ApprovalStatusPending,
		RequestedBy:  userID,
		Description:  input.Description,
		Amount:       input.Amount,
		CustomerCode: input.CustomerCode,
		OldData:      oldData,
		NewData:      newData,
		CreatedAt:    now,
	}

	var events []domain.Event
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.approvals.Create(ctx, a); err != nil {
			return fmt.Errorf("create approval: %w", err)
		}
		if input.OnCreate != nil {
			if err := input.OnCreate(ctx, a); err != nil {
				return err
			}
		}
		if gated {
			events = []domain.Event{domain.NewEvent(domain.EventApprovalRequested, a.ID.String(), map[string]any{
				"type":         a.Type,
				"customerCode": a.CustomerCode,
				"amount":       a.Amount,
			}, now)}
			return nil
		}

		var err error
		events, err = s.decideLocked(ctx, a, domain.ApprovalStatusApproved, userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("approval.Submit: %w", err)
	}

	s.publish(ctx, events)

	s.log.InfoContext(ctx, "approval submitted",
		slog.String("approval_id", a.ID.String()),
		slog.String("type", a.Type.String()),
		slog.String("status", a.Status.String()),
		slog.Bool("gated", gated))

	return a, nil
}
