package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

type syncService interface {
	Run(ctx context.Context) ([]domain.SyncResult, error)
	RunTable(ctx context.Context, table domain.SyncTable) (domain.SyncResult, error)
	Status(ctx context.Context) ([]domain.SyncState, error)
}

// SyncHandler triggers and reports ERP pull syncs.
type SyncHandler struct {
	svc syncService
	log *slog.Logger
}

// NewSyncHandler creates a SyncHandler.
func NewSyncHandler(svc syncService, logger *slog.Logger) *SyncHandler {
	return &SyncHandler{svc: svc, log: logger.With("handler", "sync")}
}

// Run handles POST /api/v1/sync/run. The optional table parameter limits the
// run to one table. Tables whose lock is held elsewhere report skipped.
func (h *SyncHandler) Run(w http.ResponseWriter, r *http.Request) {
	var (
		results []domain.SyncResult
		err     error
	)
	if t := queryString(r.URL.Query(), "table"); t != nil {
		var res domain.SyncResult
		res, err = h.svc.RunTable(r.Context(), domain.SyncTable(*t))
		results = []domain.SyncResult{res}
	} else {
		results, err = h.svc.Run(r.Context())
	}
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]syncResultDTO, len(results))
	for i, res := range results {
		out[i] = syncResultDTO{
			Table:     res.Table.String(),
			After:     res.After,
			Fetched:   res.Fetched,
			Watermark: res.Watermark,
			Skipped:   res.Skipped,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// Status handles GET /api/v1/sync/status.
func (h *SyncHandler) Status(w http.ResponseWriter, r *http.Request) {
	states, err := h.svc.Status(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	out := make([]syncStateDTO, len(states))
	for i, s := range states {
		out[i] = syncStateDTO{
			Table:     s.Table.String(),
			LastSync:  s.LastSync,
			LastRunAt: s.LastRunAt,
			LastError: s.LastError,
			RowCount:  s.RowCount,
		}
	}
	writeJSON(w, http.StatusOK, out)
}
