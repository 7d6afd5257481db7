// Package loader provides per-request DataLoaders that batch customer-name
// lookups made while rendering listings of orders, approvals and ledger rows.
package loader

import (
	"context"
	"net/http"
	"time"

	"github.com/graph-gophers/dataloader/v7"
)

const (
	maxBatch = 200
	wait     = 2 * time.Millisecond
)

type nameSource interface {
	Names(ctx context.Context, codes []string) (map[string]string, error)
}

// Loaders contains the per-request DataLoaders.
type Loaders struct {
	CustomerNames *dataloader.Loader[string, string]
}

// New creates a new set of DataLoaders. Must be called per request: loaders
// cache results for their lifetime.
func New(names nameSource) *Loaders {
	return &Loaders{
		CustomerNames: dataloader.NewBatchedLoader(
			newNamesBatchFn(names),
			dataloader.WithWait[string, string](wait),
			dataloader.WithBatchCapacity[string, string](maxBatch),
		),
	}
}

// CustomerNamesFor resolves codes to customer titles in one batch. Unknown
// codes map to "". Duplicates and empty codes are allowed.
func (l *Loaders) CustomerNamesFor(ctx context.Context, codes []string) (map[string]string, error) {
	keys := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		keys = append(keys, c)
	}
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	names, errs := l.CustomerNames.LoadMany(ctx, keys)()
	for i, k := range keys {
		if len(errs) > i && errs[i] != nil {
			return nil, errs[i]
		}
		out[k] = names[i]
	}
	return out, nil
}

func newNamesBatchFn(src nameSource) dataloader.BatchFunc[string, string] {
	return func(ctx context.Context, keys []string) []*dataloader.Result[string] {
		names, err := src.Names(ctx, keys)
		if err != nil {
			results := make([]*dataloader.Result[string], len(keys))
			for i := range results {
				results[i] = &dataloader.Result[string]{Error: err}
			}
			return results
		}

		results := make([]*dataloader.Result[string], len(keys))
		for i, k := range keys {
			results[i] = &dataloader.Result[string]{Data: names[k]}
		}
		return results
	}
}

type contextKey string

const loadersKey contextKey = "loaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context, or nil when the
// middleware is not installed.
func FromContext(ctx context.Context) *Loaders {
	l, _ := ctx.Value(loadersKey).(*Loaders)
	return l
}

// Middleware creates per-request Loaders and stores them in the request
// context.
func Middleware(names nameSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithLoaders(r.Context(), New(names))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
