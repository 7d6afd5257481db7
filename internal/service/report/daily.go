package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

// Daily aggregates every transaction dated on day. Only the calendar date of
// day is used; the day spans midnight to midnight in the business timezone.
// Rows are ordered by sequence.
func (s *Service) Daily(ctx context.Context, day time.Time) (domain.DailyReport, error) {
	from := s.startOfDay(day)
	to := from.AddDate(0, 0, 1)

	txs, err := s.txs.List(ctx, domain.TransactionFilter{From: &from, To: &to})
	if err != nil {
		return domain.DailyReport{}, fmt.Errorf("report.Daily: %w", err)
	}

	slices.SortFunc(txs, func(a, b domain.Transaction) int {
		switch {
		case a.Sequence < b.Sequence:
			return -1
		case a.Sequence > b.Sequence:
			return 1
		}
		return 0
	})

	return domain.NewDailyReport(from, txs), nil
}

// WriteDaily renders the daily report into w.
func (s *Service) WriteDaily(ctx context.Context, w io.Writer, day time.Time) error {
	r, err := s.Daily(ctx, day)
	if err != nil {
		return err
	}
	if err := s.render(w, r); err != nil {
		return fmt.Errorf("report.WriteDaily: %w", err)
	}

	s.log.InfoContext(ctx, "daily report exported",
		slog.String("day", r.Day.Format(time.DateOnly)),
		slog.Int("transactions", len(r.Transactions)))
	return nil
}

func (s *Service) startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}
