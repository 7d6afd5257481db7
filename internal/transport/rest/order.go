package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/internal/service/order"
)

type orderService interface {
	List(ctx context.Context, input order.ListInput) ([]domain.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	Advance(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	RequestChange(ctx context.Context, id uuid.UUID, input order.ChangeInput) (*domain.Approval, error)
}

// OrderHandler serves order fulfilment.
type OrderHandler struct {
	svc orderService
	log *slog.Logger
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(svc orderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, log: logger.With("handler", "order")}
}

type orderChangeRequest struct {
	Items    []domain.LineItem `json:"items" validate:"required,min=1"`
	Discount decimal.Decimal   `json:"discount"`
	Note     string            `json:"note" validate:"max=500"`
}

// List handles GET /api/v1/orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, offset, err := page(q)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	input := order.ListInput{
		CustomerCode: queryString(q, "customerCode"),
		Limit:        limit,
		Offset:       offset,
	}
	if s := queryString(q, "status"); s != nil {
		st := domain.OrderStatus(*s)
		input.Status = &st
	}

	rows, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	codes := make([]string, len(rows))
	for i, o := range rows {
		codes[i] = o.CustomerCode
	}
	names := customerNames(r, h.log, codes)

	out := make([]orderDTO, len(rows))
	for i := range rows {
		out[i] = toOrderDTO(&rows[i])
		out[i].CustomerName = names[rows[i].CustomerCode]
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/v1/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	o, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	dto := toOrderDTO(o)
	dto.CustomerName = customerNames(r, h.log, []string{o.CustomerCode})[o.CustomerCode]
	writeJSON(w, http.StatusOK, dto)
}

// Advance handles POST /api/v1/orders/{id}/advance.
func (h *OrderHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	o, err := h.svc.Advance(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderDTO(o))
}

// RequestChange handles POST /api/v1/orders/{id}/change.
func (h *OrderHandler) RequestChange(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req orderChangeRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	a, err := h.svc.RequestChange(r.Context(), id, order.ChangeInput{
		Items:    req.Items,
		Discount: req.Discount,
		Note:     req.Note,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toApprovalDTO(a))
}
