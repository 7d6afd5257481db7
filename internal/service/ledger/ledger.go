package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/pkg/ctxutil"
)

// Add appends a transaction directly, assigning the next sequence and the
// caller's series inside one database transaction.
func (s *Service) Add(ctx context.Context, input AddInput) (*domain.Transaction, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	t := &domain.Transaction{
		ID:            uuid.New(),
		Type:          input.Type,
		CustomerCode:  input.CustomerCode,
		Amount:        input.Amount,
		Items:         input.Items,
		Series:        s.series(ctx),
		Description:   input.Description,
		PaymentMethod: input.PaymentMethod,
		CreatedBy:     userID,
		Date:          now,
		UpdatedAt:     now,
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		seq, err := s.transactions.NextSequence(ctx)
		if err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}
		t.Sequence = seq
		return s.transactions.Create(ctx, t)
	})
	if err != nil {
		return nil, fmt.Errorf("ledger.Add: %w", err)
	}

	if err := s.events.Publish(ctx, []domain.Event{domain.NewEvent(domain.EventTransactionAdded, t.ID.String(), map[string]any{
		"type":         t.Type,
		"customerCode": t.CustomerCode,
		"amount":       t.Amount,
		"sequence":     t.Sequence,
	}, now)}); err != nil {
		s.log.ErrorContext(ctx, "publish transaction event", slog.String("error", err.Error()))
	}

	s.log.InfoContext(ctx, "transaction added",
		slog.String("transaction_id", t.ID.String()),
		slog.String("type", t.Type.String()),
		slog.Int64("sequence", t.Sequence))
	return t, nil
}

// NextSequence returns the sequence the next transaction would get.
func (s *Service) NextSequence(ctx context.Context) (int64, error) {
	return s.transactions.NextSequence(ctx)
}

// Get returns one transaction.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	return s.transactions.Get(ctx, id)
}

// Balance returns the ledger position of one customer. Without a window the
// totals are aggregated in the database.
func (s *Service) Balance(ctx context.Context, input BalanceInput) (domain.CustomerBalance, error) {
	if err := input.Validate(); err != nil {
		return domain.CustomerBalance{}, err
	}

	if input.From == nil && input.To == nil {
		totals, err := s.transactions.TotalsByCustomer(ctx, input.CustomerCode)
		if err != nil {
			return domain.CustomerBalance{}, fmt.Errorf("ledger.Balance: %w", err)
		}
		return domain.NewCustomerBalance(input.CustomerCode, totals), nil
	}

	code := input.CustomerCode
	txs, err := s.transactions.List(ctx, domain.TransactionFilter{
		CustomerCode: &code,
		From:         input.From,
		To:           input.To,
	})
	if err != nil {
		return domain.CustomerBalance{}, fmt.Errorf("ledger.Balance: %w", err)
	}
	return balanceOf(code, txs), nil
}

// List returns transactions newest first.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Transaction, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	limit := input.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	return s.transactions.List(ctx, domain.TransactionFilter{
		CustomerCode: input.CustomerCode,
		Type:         input.Type,
		From:         input.From,
		To:           input.To,
		Limit:        limit,
		Offset:       input.Offset,
	})
}

func (s *Service) series(ctx context.Context) string {
	if series := ctxutil.SeriesFromCtx(ctx); series != "" {
		return series
	}
	return s.defaultSeries
}

func balanceOf(code string, txs []domain.Transaction) domain.CustomerBalance {
	totals := make(map[domain.TransactionType]decimal.Decimal, 4)
	for _, t := range txs {
		totals[t.Type] = totals[t.Type].Add(t.Amount)
	}
	return domain.NewCustomerBalance(code, totals)
}
