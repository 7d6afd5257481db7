package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/internal/service/approval"
)

type approvalService interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Approval, error)
	List(ctx context.Context, input approval.ListInput) ([]domain.Approval, error)
	CountPending(ctx context.Context) (int, error)
	Decide(ctx context.Context, id uuid.UUID, status domain.ApprovalStatus) (*domain.Approval, error)
}

// ApprovalHandler serves the approval queue.
type ApprovalHandler struct {
	svc approvalService
	log *slog.Logger
}

// NewApprovalHandler creates an ApprovalHandler.
func NewApprovalHandler(svc approvalService, logger *slog.Logger) *ApprovalHandler {
	return &ApprovalHandler{svc: svc, log: logger.With("handler", "approval")}
}

type decisionRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// List handles GET /api/v1/approvals.
func (h *ApprovalHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, offset, err := page(q)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	input := approval.ListInput{Limit: limit, Offset: offset}
	if s := queryString(q, "status"); s != nil {
		st := domain.ApprovalStatus(*s)
		input.Status = &st
	}
	if t := queryString(q, "type"); t != nil {
		at := domain.ApprovalType(*t)
		input.Type = &at
	}

	rows, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	codes := make([]string, 0, len(rows))
	for _, a := range rows {
		if a.CustomerCode != nil {
			codes = append(codes, *a.CustomerCode)
		}
	}
	names := customerNames(r, h.log, codes)

	out := make([]approvalDTO, len(rows))
	for i := range rows {
		out[i] = toApprovalDTO(&rows[i])
		if rows[i].CustomerCode != nil {
			out[i].CustomerName = names[*rows[i].CustomerCode]
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// PendingCount handles GET /api/v1/approvals/pending-count.
func (h *ApprovalHandler) PendingCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.CountPending(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"pending": n})
}

// Get handles GET /api/v1/approvals/{id}.
func (h *ApprovalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toApprovalDTO(a))
}

// Decide handles POST /api/v1/approvals/{id}/decision. Deciding an already
// processed approval returns it unchanged.
func (h *ApprovalHandler) Decide(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req decisionRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	a, err := h.svc.Decide(r.Context(), id, domain.ApprovalStatus(req.Status))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toApprovalDTO(a))
}
