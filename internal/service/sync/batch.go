package sync

import (
	"context"
	"time"
)

// inBatches calls fn with consecutive chunks of rows. size <= 0 sends
// everything at once.
func inBatches[T any](ctx context.Context, rows []T, size int, fn func(context.Context, []T) error) error {
	if size <= 0 {
		size = len(rows)
	}
	for start := 0; start < len(rows); start += size {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+size, len(rows))
		if err := fn(ctx, rows[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// watermark returns the largest lastup_date of rows, or nil for no rows.
func watermark[T any](rows []T, lastup func(T) time.Time) *time.Time {
	var latest *time.Time
	for _, r := range rows {
		t := lastup(r)
		if latest == nil || t.After(*latest) {
			latest = &t
		}
	}
	return latest
}

// invalidate drops cache entries for the distinct codes found in rows.
func invalidate[T any](ctx context.Context, inv invalidator, rows []T, code func(T) string) {
	if inv == nil || len(rows) == 0 {
		return
	}
	seen := make(map[string]struct{}, len(rows))
	codes := make([]string, 0, len(rows))
	for _, r := range rows {
		c := code(r)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		codes = append(codes, c)
	}
	inv.Invalidate(ctx, codes...)
}
