package order

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/internal/service/approval"
	"github.com/heartmarshall/mikro-backoffice/internal/service/workflow"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

type orderRepo interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
	List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error)
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

// Service tracks order fulfilment.
type Service struct {
	log       *slog.Logger
	orders    orderRepo
	approvals approvalSubmitter
	events    eventPublisher
	tx        txManager
	now       func() time.Time
}

// NewService creates a new order service.
func NewService(log *slog.Logger, orders orderRepo, approvals approvalSubmitter, events eventPublisher, tx txManager) *Service {
	return &Service{
		log:       log.With("service", "order"),
		orders:    orders,
		approvals: approvals,
		events:    events,
		tx:        tx,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ListInput filters the order listing.
type ListInput struct {
	Status       *domain.OrderStatus
	CustomerCode *string
	Limit        int
	Offset       int
}

// Validate validates the list input.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}
	if i.Limit < 0 || i.Limit > maxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("must be between 0 and %d", maxLimit)})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ChangeInput is the replacement item set for an order.
type ChangeInput struct {
	Items    []domain.LineItem
	Discount decimal.Decimal
	Note     string
}

// List returns orders newest first.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Order, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	limit := input.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	return s.orders.List(ctx, domain.OrderFilter{
		Status:       input.Status,
		CustomerCode: input.CustomerCode,
		Limit:        limit,
		Offset:       input.Offset,
	})
}

// Get returns one order.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.orders.Get(ctx, id)
}

// Advance moves the order exactly one stage forward.
func (s *Service) Advance(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var (
		o    *domain.Order
		from domain.OrderStatus
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		from = o.Status
		if err := o.Advance(s.now()); err != nil {
			return err
		}
		return s.orders.Update(ctx, o)
	})
	if err != nil {
		return nil, fmt.Errorf("order.Advance: %w", err)
	}

	event := domain.NewEvent(domain.EventOrderAdvanced, o.ID.String(), map[string]any{
		"from": from,
		"to":   o.Status,
	}, o.UpdatedAt)
	if err := s.events.Publish(ctx, []domain.Event{event}); err != nil {
		s.log.ErrorContext(ctx, "publish order event", slog.String("error", err.Error()))
	}

	s.log.InfoContext(ctx, "order advanced",
		slog.String("order_id", o.ID.String()),
		slog.String("from", from.String()),
		slog.String("to", o.Status.String()))
	return o, nil
}

// RequestChange submits an order_change approval and marks the order as
// having a pending change until the approval is decided.
func (s *Service) RequestChange(ctx context.Context, id uuid.UUID, input ChangeInput) (*domain.Approval, error) {
	current, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order.RequestChange: %w", err)
	}
	if err := workflow.ValidateSale(domain.SalePayload{
		CustomerCode: current.CustomerCode,
		Items:        input.Items,
		Discount:     input.Discount,
	}); err != nil {
		return nil, err
	}

	amount := domain.ItemsTotal(input.Items, input.Discount)
	code := current.CustomerCode
	a, err := s.approvals.Submit(ctx, approval.SubmitInput{
		Type:         domain.ApprovalTypeOrderChange,
		Description:  fmt.Sprintf("Sipariş değişikliği - %s", current.TotalAmount.StringFixed(2)),
		Amount:       &amount,
		CustomerCode: &code,
		OldData:      current.Items,
		NewData: domain.OrderChangePayload{
			OrderID:  id,
			Items:    input.Items,
			Discount: input.Discount,
			Note:     input.Note,
		},
		OnCreate: func(ctx context.Context, _ *domain.Approval) error {
			return s.markPending(ctx, id)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("order.RequestChange: %w", err)
	}

	s.log.InfoContext(ctx, "order change requested",
		slog.String("order_id", id.String()),
		slog.String("approval_id", a.ID.String()))
	return a, nil
}

func (s *Service) markPending(ctx context.Context, id uuid.UUID) error {
	o, err := s.orders.GetForUpdate(ctx, id)
	if err != nil {
		return err
	}
	if o.PendingChange {
		return fmt.Errorf("order %s already has a pending change: %w", id, domain.ErrConflict)
	}
	if o.Status.IsTerminal() {
		return domain.NewValidationError("status", "delivered orders cannot change")
	}
	o.PendingChange = true
	o.UpdatedAt = s.now()
	return s.orders.Update(ctx, o)
}
