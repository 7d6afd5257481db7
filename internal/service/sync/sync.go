package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

// Run syncs every table in order. A table whose lock is held elsewhere is
// reported as skipped. Errors of individual tables are joined; the other
// tables still run unless ctx is done.
func (s *Service) Run(ctx context.Context) ([]domain.SyncResult, error) {
	results := make([]domain.SyncResult, 0, len(domain.AllSyncTables))
	var errs []error
	for _, table := range domain.AllSyncTables {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		res, err := s.RunTable(ctx, table)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}

// RunTable syncs one table under the sync:<table> lock.
func (s *Service) RunTable(ctx context.Context, table domain.SyncTable) (domain.SyncResult, error) {
	if !table.IsValid() {
		return domain.SyncResult{}, domain.NewValidationError("table", fmt.Sprintf("unknown table %q", table))
	}

	release, ok, err := s.locker.TryLock(ctx, "sync:"+string(table), s.cfg.LockTTL)
	if err != nil {
		return domain.SyncResult{}, fmt.Errorf("sync %s: %w", table, err)
	}
	if !ok {
		s.log.InfoContext(ctx, "sync skipped, lock held", slog.String("table", string(table)))
		return domain.SyncResult{Table: table, Skipped: true}, nil
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.log.WarnContext(ctx, "sync lock release failed", slog.String("table", string(table)), slog.String("error", err.Error()))
		}
	}()

	state, err := s.state.Get(ctx, table)
	if err != nil {
		return domain.SyncResult{}, fmt.Errorf("sync %s: load state: %w", table, err)
	}

	start := s.now()
	res := domain.SyncResult{Table: table, After: state.LastSync}
	res.Fetched, res.Watermark, err = s.pull(ctx, table, state.LastSync, start)

	state.LastRunAt = &start
	if err != nil {
		state.LastError = err.Error()
		if saveErr := s.state.Save(context.WithoutCancel(ctx), state); saveErr != nil {
			s.log.ErrorContext(ctx, "save sync state", slog.String("table", string(table)), slog.String("error", saveErr.Error()))
		}
		return domain.SyncResult{}, fmt.Errorf("sync %s: %w", table, err)
	}

	state.LastError = ""
	state.RowCount = int64(res.Fetched)
	if res.Watermark != nil {
		state.LastSync = res.Watermark
	}
	if err := s.state.Save(ctx, state); err != nil {
		return domain.SyncResult{}, fmt.Errorf("sync %s: save state: %w", table, err)
	}

	s.log.InfoContext(ctx, "sync table done",
		slog.String("table", string(table)),
		slog.Int("fetched", res.Fetched),
		slog.Duration("took", s.now().Sub(start)))
	return res, nil
}

func (s *Service) pull(ctx context.Context, table domain.SyncTable, after *time.Time, syncedAt time.Time) (int, *time.Time, error) {
	switch table {
	case domain.SyncTableCustomers:
		rows, err := s.erp.CustomersAfter(ctx, after)
		if err != nil {
			return 0, nil, err
		}
		err = inBatches(ctx, rows, s.cfg.BatchSize, func(ctx context.Context, batch []domain.Customer) error {
			return s.customers.UpsertFromERP(ctx, batch, syncedAt)
		})
		if err != nil {
			return 0, nil, err
		}
		invalidate(ctx, s.caches.Customers, rows, func(c domain.Customer) string { return c.Code })
		return len(rows), watermark(rows, func(c domain.Customer) time.Time { return c.LastupDate }), nil

	case domain.SyncTableAddresses:
		rows, err := s.erp.AddressesAfter(ctx, after)
		if err != nil {
			return 0, nil, err
		}
		if err := inBatches(ctx, rows, s.cfg.BatchSize, s.customers.UpsertAddresses); err != nil {
			return 0, nil, err
		}
		return len(rows), watermark(rows, func(a domain.CustomerAddress) time.Time { return a.LastupDate }), nil

	case domain.SyncTableProducts:
		rows, err := s.erp.PricesAfter(ctx, after, s.cfg.PriceList)
		if err != nil {
			return 0, nil, err
		}
		err = inBatches(ctx, rows, s.cfg.BatchSize, func(ctx context.Context, batch []domain.PriceListEntry) error {
			return s.products.UpsertFromERP(ctx, batch, syncedAt)
		})
		if err != nil {
			return 0, nil, err
		}
		invalidate(ctx, s.caches.Prices, rows, func(p domain.PriceListEntry) string { return p.ProductCode })
		return len(rows), watermark(rows, func(p domain.PriceListEntry) time.Time { return p.LastupDate }), nil

	case domain.SyncTableMovements:
		// Movements are not mirrored; the pass only advances the marker and
		// drops cached ERP balances of the touched customers.
		rows, err := s.erp.MovementsAfter(ctx, after)
		if err != nil {
			return 0, nil, err
		}
		invalidate(ctx, s.caches.Customers, rows, func(m domain.CustomerMovement) string { return m.CustomerCode })
		return len(rows), watermark(rows, func(m domain.CustomerMovement) time.Time { return m.LastupDate }), nil
	}
	return 0, nil, fmt.Errorf("unknown table %q", table)
}

// Status returns the watermark of every table, including never-synced ones.
func (s *Service) Status(ctx context.Context) ([]domain.SyncState, error) {
	stored, err := s.state.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("sync.Status: %w", err)
	}
	byTable := make(map[domain.SyncTable]domain.SyncState, len(stored))
	for _, st := range stored {
		byTable[st.Table] = st
	}
	out := make([]domain.SyncState, 0, len(domain.AllSyncTables))
	for _, t := range domain.AllSyncTables {
		st, ok := byTable[t]
		if !ok {
			st = domain.SyncState{Table: t}
		}
		out = append(out, st)
	}
	return out, nil
}

// Start runs a pass immediately and then every interval until ctx is done.
func (s *Service) Start(ctx context.Context) {
	if !s.cfg.Enabled {
		s.log.InfoContext(ctx, "sync scheduler disabled")
		return
	}

	s.runLogged(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("sync scheduler stopped")
			return
		case <-ticker.C:
			s.runLogged(ctx)
		}
	}
}

func (s *Service) runLogged(ctx context.Context) {
	if _, err := s.Run(ctx); err != nil && ctx.Err() == nil {
		s.log.ErrorContext(ctx, "sync pass failed", slog.String("error", err.Error()))
	}
}
