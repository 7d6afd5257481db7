package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/internal/service/cart"
)

type cartService interface {
	Get(ctx context.Context) (*domain.Cart, error)
	Update(ctx context.Context, input cart.UpdateInput) (*domain.Cart, error)
	SetItem(ctx context.Context, input cart.ItemInput) (*domain.Cart, error)
	RemoveItem(ctx context.Context, productCode string) (*domain.Cart, error)
	Clear(ctx context.Context) error
	Checkout(ctx context.Context) (*domain.Approval, error)
}

// CartHandler serves the caller's sales basket.
type CartHandler struct {
	svc cartService
	log *slog.Logger
}

// NewCartHandler creates a CartHandler.
func NewCartHandler(svc cartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{svc: svc, log: logger.With("handler", "cart")}
}

type cartUpdateRequest struct {
	CustomerCode *string          `json:"customerCode" validate:"omitempty,max=25"`
	Discount     *decimal.Decimal `json:"discount"`
	OrderNote    *string          `json:"orderNote" validate:"omitempty,max=500"`
}

type cartItemRequest struct {
	ProductCode string           `json:"productCode" validate:"required,max=25"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Price       *decimal.Decimal `json:"price"`
	Note        string           `json:"note" validate:"max=255"`
}

// Get handles GET /api/v1/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	h.respond(w, r, c)
}

// Update handles PUT /api/v1/cart.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req cartUpdateRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	c, err := h.svc.Update(r.Context(), cart.UpdateInput{
		CustomerCode: req.CustomerCode,
		Discount:     req.Discount,
		OrderNote:    req.OrderNote,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	h.respond(w, r, c)
}

// Clear handles DELETE /api/v1/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Clear(r.Context()); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetItem handles POST /api/v1/cart/items.
func (h *CartHandler) SetItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	c, err := h.svc.SetItem(r.Context(), cart.ItemInput{
		ProductCode: req.ProductCode,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Note:        req.Note,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	h.respond(w, r, c)
}

// RemoveItem handles DELETE /api/v1/cart/items/{code}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.RemoveItem(r.Context(), r.PathValue("code"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	h.respond(w, r, c)
}

// Checkout handles POST /api/v1/cart/checkout. The response is the sale
// approval, already approved when sales are not gated.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Checkout(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toApprovalDTO(a))
}

func (h *CartHandler) respond(w http.ResponseWriter, r *http.Request, c *domain.Cart) {
	dto := toCartDTO(c)
	if c.CustomerCode != "" {
		dto.CustomerName = customerNames(r, h.log, []string{c.CustomerCode})[c.CustomerCode]
	}
	writeJSON(w, http.StatusOK, dto)
}
