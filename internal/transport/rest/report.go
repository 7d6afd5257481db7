package rest

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type reportService interface {
	Daily(ctx context.Context, day time.Time) (domain.DailyReport, error)
	WriteDaily(ctx context.Context, w io.Writer, day time.Time) error
}

// ReportHandler serves ledger reports.
type ReportHandler struct {
	svc reportService
	log *slog.Logger
	now func() time.Time
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(svc reportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{svc: svc, log: logger.With("handler", "report"), now: time.Now}
}

// Daily handles GET /api/v1/reports/daily?date=&format=json|xlsx. The date
// defaults to today.
func (h *ReportHandler) Daily(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	day, err := queryTime(q, "date")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if day == nil {
		now := h.now()
		day = &now
	}

	switch q.Get("format") {
	case "", "json":
		rep, err := h.svc.Daily(r.Context(), *day)
		if err != nil {
			handleError(w, r, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, toDailyReportDTO(rep))
	case "xlsx":
		var buf bytes.Buffer
		if err := h.svc.WriteDaily(r.Context(), &buf, *day); err != nil {
			handleError(w, r, h.log, err)
			return
		}
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="gunluk-`+day.Format(dateLayout)+`.xlsx"`)
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes()) //nolint:errcheck
	default:
		handleError(w, r, h.log, domain.NewValidationError("format", "must be json or xlsx"))
	}
}
