package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/internal/service/customer"
)

type customerService interface {
	Search(ctx context.Context, input customer.SearchInput) ([]domain.Customer, error)
	Get(ctx context.Context, code string) (*domain.Customer, error)
	Balance(ctx context.Context, code string) (customer.Summary, error)
	Addresses(ctx context.Context, code string) ([]domain.CustomerAddress, error)
	Movements(ctx context.Context, input customer.MovementsInput) ([]domain.CustomerMovement, error)
	Push(ctx context.Context, input customer.PushInput) (*domain.Customer, error)
}

// CustomerHandler serves the mirrored customer accounts.
type CustomerHandler struct {
	svc customerService
	log *slog.Logger
}

// NewCustomerHandler creates a CustomerHandler.
func NewCustomerHandler(svc customerService, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{svc: svc, log: logger.With("handler", "customer")}
}

type customerPushRequest struct {
	Version   *int64  `json:"version" validate:"required"`
	Name      *string `json:"name" validate:"omitempty,max=127"`
	Name2     *string `json:"name2" validate:"omitempty,max=127"`
	TaxOffice *string `json:"taxOffice" validate:"omitempty,max=50"`
	TaxNumber *string `json:"taxNumber" validate:"omitempty,max=15"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
	Email     *string `json:"email" validate:"omitempty,max=127"`
	City      *string `json:"city" validate:"omitempty,max=50"`
	District  *string `json:"district" validate:"omitempty,max=50"`
}

type balanceResponse struct {
	Ledger domain.CustomerBalance `json:"ledger"`
	ERP    *erpBalanceDTO         `json:"erp,omitempty"`
}

// Search handles GET /api/v1/customers.
func (h *CustomerHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(q, "limit", 0)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	rows, err := h.svc.Search(r.Context(), customer.SearchInput{Query: q.Get("search"), Limit: limit})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(rows, toCustomerDTO))
}

// Get handles GET /api/v1/customers/{code}.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), r.PathValue("code"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerDTO(*c))
}

// Balance handles GET /api/v1/customers/{code}/balance.
func (h *CustomerHandler) Balance(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Balance(r.Context(), r.PathValue("code"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	resp := balanceResponse{Ledger: s.Ledger}
	if s.ERP != nil {
		erp := toERPBalanceDTO(*s.ERP)
		resp.ERP = &erp
	}
	writeJSON(w, http.StatusOK, resp)
}

// Addresses handles GET /api/v1/customers/{code}/addresses.
func (h *CustomerHandler) Addresses(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Addresses(r.Context(), r.PathValue("code"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(rows, toAddressDTO))
}

// Movements handles GET /api/v1/customers/{code}/movements.
func (h *CustomerHandler) Movements(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, err := queryTime(q, "startDate")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	end, err := queryTime(q, "endDate")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	limit, err := queryInt(q, "limit", 0)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	rows, err := h.svc.Movements(r.Context(), customer.MovementsInput{
		Code:  r.PathValue("code"),
		Start: start,
		End:   end,
		Limit: limit,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(rows, toMovementDTO))
}

// Push handles PUT /api/v1/customers/{code}. A stale version answers 409
// with the stored record.
func (h *CustomerHandler) Push(w http.ResponseWriter, r *http.Request) {
	var req customerPushRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	c, err := h.svc.Push(r.Context(), customer.PushInput{
		Code:    r.PathValue("code"),
		Version: *req.Version,
		Changes: domain.CustomerChanges{
			Name:      req.Name,
			Name2:     req.Name2,
			TaxOffice: req.TaxOffice,
			TaxNumber: req.TaxNumber,
			Phone:     req.Phone,
			Email:     req.Email,
			City:      req.City,
			District:  req.District,
		},
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerDTO(*c))
}
