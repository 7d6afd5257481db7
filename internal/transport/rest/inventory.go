package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/internal/service/inventory"
)

type inventoryService interface {
	Create(ctx context.Context, input inventory.CreateInput) (*domain.InventoryList, error)
	List(ctx context.Context, status *domain.InventoryStatus) ([]domain.InventoryList, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.InventoryList, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, listID uuid.UUID, input inventory.CountInput) (*domain.InventoryList, error)
	RemoveItem(ctx context.Context, listID uuid.UUID, productCode, department string) (*domain.InventoryList, error)
	Complete(ctx context.Context, id uuid.UUID) (*domain.InventoryList, *domain.Approval, error)
}

// InventoryHandler serves stock count sessions.
type InventoryHandler struct {
	svc inventoryService
	log *slog.Logger
}

// NewInventoryHandler creates an InventoryHandler.
func NewInventoryHandler(svc inventoryService, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{svc: svc, log: logger.With("handler", "inventory")}
}

type inventoryCreateRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type countRequest struct {
	ProductCode string          `json:"productCode" validate:"required,max=25"`
	Department  string          `json:"department" validate:"max=50"`
	Counted     decimal.Decimal `json:"counted"`
}

type completeResponse struct {
	List     inventoryDTO `json:"list"`
	Approval *approvalDTO `json:"approval,omitempty"`
}

// List handles GET /api/v1/inventory.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *domain.InventoryStatus
	if s := queryString(r.URL.Query(), "status"); s != nil {
		st := domain.InventoryStatus(*s)
		status = &st
	}
	lists, err := h.svc.List(r.Context(), status)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	out := make([]inventoryDTO, len(lists))
	for i := range lists {
		out[i] = toInventoryDTO(&lists[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /api/v1/inventory.
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req inventoryCreateRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	l, err := h.svc.Create(r.Context(), inventory.CreateInput{Name: req.Name})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toInventoryDTO(l))
}

// Get handles GET /api/v1/inventory/{id}.
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	l, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toInventoryDTO(l))
}

// Delete handles DELETE /api/v1/inventory/{id}.
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Count handles PUT /api/v1/inventory/{id}/items.
func (h *InventoryHandler) Count(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req countRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	l, err := h.svc.Count(r.Context(), id, inventory.CountInput{
		ProductCode: req.ProductCode,
		Department:  req.Department,
		Counted:     req.Counted,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toInventoryDTO(l))
}

// RemoveItem handles DELETE /api/v1/inventory/{id}/items?productCode=&department=.
func (h *InventoryHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	q := r.URL.Query()
	l, err := h.svc.RemoveItem(r.Context(), id, q.Get("productCode"), q.Get("department"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toInventoryDTO(l))
}

// Complete handles POST /api/v1/inventory/{id}/complete. When inventory
// counts are gated the response carries the pending approval.
func (h *InventoryHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	l, a, err := h.svc.Complete(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	resp := completeResponse{List: toInventoryDTO(l)}
	if a != nil {
		dto := toApprovalDTO(a)
		resp.Approval = &dto
	}
	writeJSON(w, http.StatusOK, resp)
}
