package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/mikro-backoffice/internal/adapter/mikro"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

// Summary is the customer's position in the local ledger together with the
// ERP movement balance. ERP is nil when the ERP could not be reached.
type Summary struct {
	Ledger domain.CustomerBalance `json:"ledger"`
	ERP    *domain.ERPBalance     `json:"erp,omitempty"`
}

// Search lists mirrored customers whose code or title contains the query.
func (s *Service) Search(ctx context.Context, input SearchInput) ([]domain.Customer, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	limit := input.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	return s.repo.Search(ctx, input.Query, limit)
}

// Get reads a customer through the cache. A customer not yet mirrored is
// fetched from the ERP.
func (s *Service) Get(ctx context.Context, code string) (*domain.Customer, error) {
	var cached domain.Customer
	if ok, err := s.cache.Get(ctx, customerKey(code), &cached); err != nil {
		s.log.WarnContext(ctx, "customer cache read failed", slog.String("code", code), slog.String("error", err.Error()))
	} else if ok {
		return &cached, nil
	}

	c, err := s.repo.Get(ctx, code)
	if errors.Is(err, domain.ErrNotFound) {
		c, err = s.erp.GetCustomer(ctx, code)
	}
	if err != nil {
		return nil, fmt.Errorf("customer.Get: %w", err)
	}

	if err := s.cache.Set(ctx, customerKey(code), c); err != nil {
		s.log.WarnContext(ctx, "customer cache write failed", slog.String("code", code), slog.String("error", err.Error()))
	}
	return c, nil
}

// Balance returns the local ledger position and, when reachable, the ERP
// balance. The ERP balance is cached until the movements sync invalidates it.
func (s *Service) Balance(ctx context.Context, code string) (Summary, error) {
	totals, err := s.ledger.TotalsByCustomer(ctx, code)
	if err != nil {
		return Summary{}, fmt.Errorf("customer.Balance: %w", err)
	}
	out := Summary{Ledger: domain.NewCustomerBalance(code, totals)}

	erp, err := s.erpBalance(ctx, code)
	if err != nil {
		s.log.WarnContext(ctx, "erp balance unavailable", slog.String("code", code), slog.String("error", err.Error()))
		return out, nil
	}
	out.ERP = &erp
	return out, nil
}

func (s *Service) erpBalance(ctx context.Context, code string) (domain.ERPBalance, error) {
	var b domain.ERPBalance
	if ok, err := s.cache.Get(ctx, balanceKey(code), &b); err == nil && ok {
		return b, nil
	}
	b, err := s.erp.Balance(ctx, code)
	if err != nil {
		return domain.ERPBalance{}, err
	}
	if err := s.cache.Set(ctx, balanceKey(code), b); err != nil {
		s.log.WarnContext(ctx, "balance cache write failed", slog.String("code", code), slog.String("error", err.Error()))
	}
	return b, nil
}

// Names resolves customer titles for codes. Unknown codes are absent.
func (s *Service) Names(ctx context.Context, codes []string) (map[string]string, error) {
	if len(codes) == 0 {
		return map[string]string{}, nil
	}
	return s.repo.NamesByCodes(ctx, codes)
}

// Addresses lists the mirrored addresses of a customer.
func (s *Service) Addresses(ctx context.Context, code string) ([]domain.CustomerAddress, error) {
	return s.repo.ListAddresses(ctx, code)
}

// Movements lists ERP movements of a customer, newest first.
func (s *Service) Movements(ctx context.Context, input MovementsInput) ([]domain.CustomerMovement, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	limit := input.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	return s.erp.Movements(ctx, mikro.MovementFilter{
		CustomerCode: input.Code,
		Start:        input.Start,
		End:          input.End,
		Limit:        limit,
	})
}

// Push applies a client edit when input.Version matches the stored version.
// A stale version fails with *domain.VersionConflictError carrying the
// current record.
func (s *Service) Push(ctx context.Context, input PushInput) (*domain.Customer, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Customer
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, input.Code)
		if err != nil {
			return err
		}
		if current.Version != input.Version {
			return &domain.VersionConflictError{
				Entity:          "customer",
				Key:             input.Code,
				ExpectedVersion: input.Version,
				CurrentVersion:  current.Version,
				Current:         current,
			}
		}
		input.Changes.Apply(current)
		updated, err = s.repo.UpdateVersioned(ctx, current, input.Version)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("customer.Push: %w", err)
	}

	s.Invalidate(ctx, input.Code)
	if err := s.events.Publish(ctx, []domain.Event{
		domain.NewEvent(domain.EventCustomerUpdated, updated.Code, map[string]any{"version": updated.Version}, time.Now().UTC()),
	}); err != nil {
		s.log.ErrorContext(ctx, "publish customer event", slog.String("code", updated.Code), slog.String("error", err.Error()))
	}

	s.log.InfoContext(ctx, "customer updated",
		slog.String("code", updated.Code),
		slog.Int64("version", updated.Version))
	return updated, nil
}

// Invalidate drops cached reads of the given customers.
func (s *Service) Invalidate(ctx context.Context, codes ...string) {
	if len(codes) == 0 {
		return
	}
	keys := make([]string, 0, 2*len(codes))
	for _, c := range codes {
		keys = append(keys, customerKey(c), balanceKey(c))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.log.WarnContext(ctx, "customer cache invalidation failed", slog.Int("keys", len(keys)), slog.String("error", err.Error()))
	}
}
