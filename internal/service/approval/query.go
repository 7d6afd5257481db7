package approval

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

// Get returns one approval.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Approval, error) {
	return s.approvals.Get(ctx, id)
}

// List returns approvals newest first.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Approval, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	limit := input.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	return s.approvals.List(ctx, domain.ApprovalFilter{
		Status: input.Status,
		Type:   input.Type,
		Limit:  limit,
		Offset: input.Offset,
	})
}

// CountPending returns the number of approvals awaiting a decision.
func (s *Service) CountPending(ctx context.Context) (int, error) {
	return s.approvals.CountPending(ctx)
}
