package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/internal/service/product"
)

type productService interface {
	List(ctx context.Context, input product.ListInput) (product.Page, error)
	Get(ctx context.Context, code string) (*domain.Product, error)
	Prices(ctx context.Context, code string, listNo int) ([]domain.PriceListEntry, error)
	RequestChange(ctx context.Context, code string, input product.ChangeInput) (*domain.Approval, error)
}

// ProductHandler serves the local catalog.
type ProductHandler struct {
	svc productService
	log *slog.Logger
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(svc productService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, log: logger.With("handler", "product")}
}

type productPageResponse struct {
	Products   []productDTO `json:"products"`
	NextCursor string       `json:"nextCursor,omitempty"`
}

type productChangeRequest struct {
	Name  *string          `json:"name" validate:"omitempty,max=127"`
	Price *decimal.Decimal `json:"price"`
	Stock *decimal.Decimal `json:"stock"`
}

// List handles GET /api/v1/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(q, "limit", 0)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	p, err := h.svc.List(r.Context(), product.ListInput{
		Search: q.Get("search"),
		Limit:  limit,
		Cursor: q.Get("cursor"),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, productPageResponse{
		Products:   mapSlice(p.Products, toProductDTO),
		NextCursor: p.NextCursor,
	})
}

// Get handles GET /api/v1/products/{code}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), r.PathValue("code"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(*p))
}

// Prices handles GET /api/v1/products/{code}/prices.
func (h *ProductHandler) Prices(w http.ResponseWriter, r *http.Request) {
	listNo, err := queryInt(r.URL.Query(), "listNo", 0)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	rows, err := h.svc.Prices(r.Context(), r.PathValue("code"), listNo)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(rows, toPriceDTO))
}

// RequestChange handles POST /api/v1/products/{code}/change.
func (h *ProductHandler) RequestChange(w http.ResponseWriter, r *http.Request) {
	var req productChangeRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	a, err := h.svc.RequestChange(r.Context(), r.PathValue("code"), product.ChangeInput{
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusAccepted, toApprovalDTO(a))
}
