package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/mikro-backoffice/internal/adapter/mikro"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/pkg/ctxutil"
)

type erpReader interface {
	SearchCustomers(ctx context.Context, search string, limit int) ([]domain.Customer, error)
	GetCustomer(ctx context.Context, code string) (*domain.Customer, error)
	Balance(ctx context.Context, code string) (domain.ERPBalance, error)
	Names(ctx context.Context, search string, limit int) ([]domain.CustomerName, error)
	Addresses(ctx context.Context, customerCode string, limit int) ([]domain.CustomerAddress, error)
	AddressesAfter(ctx context.Context, after *time.Time) ([]domain.CustomerAddress, error)
	Movements(ctx context.Context, f mikro.MovementFilter) ([]domain.CustomerMovement, error)
	MovementsAfter(ctx context.Context, after *time.Time) ([]domain.CustomerMovement, error)
	Prices(ctx context.Context, stockCode string, listNo, limit int) ([]domain.PriceListEntry, error)
	PricesAfter(ctx context.Context, after *time.Time, listNo int) ([]domain.PriceListEntry, error)
}

// ERPHandler exposes the ERP tables read-only under /api/cari-* and
// /api/stok-fiyat*.
type ERPHandler struct {
	erp erpReader
	log *slog.Logger
}

// NewERPHandler creates an ERPHandler.
func NewERPHandler(erp erpReader, logger *slog.Logger) *ERPHandler {
	return &ERPHandler{erp: erp, log: logger.With("handler", "erp")}
}

// Customers handles GET /api/cari-hesap.
func (h *ERPHandler) Customers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(q, "limit", 0)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	rows, err := h.erp.SearchCustomers(r.Context(), q.Get("search"), limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(rows, toCustomerDTO))
}

// Customer handles GET /api/cari-hesap/{id}.
func (h *ERPHandler) Customer(w http.ResponseWriter, r *http.Request) {
	c, err := h.erp.GetCustomer(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerDTO(*c))
}

// CustomerBalance handles GET /api/cari-hesap/{id}/balance.
func (h *ERPHandler) CustomerBalance(w http.ResponseWriter, r *http.Request) {
	b, err := h.erp.Balance(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toERPBalanceDTO(b))
}

// Addresses handles GET /api/cari-adres.
func (h *ERPHandler) Addresses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(q, "limit", 0)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	rows, err := h.erp.Addresses(r.Context(), q.Get("cariKod"), limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(rows, toAddressDTO))
}

// AddressesSync handles GET /api/cari-adres/sync.
func (h *ERPHandler) AddressesSync(w http.ResponseWriter, r *http.Request) {
	after, err := queryTime(r.URL.Query(), "after")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	rows, err := h.erp.AddressesAfter(r.Context(), after)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(rows, toAddressDTO))
}

// Movements handles GET /api/cari-hareket.
func (h *ERPHandler) Movements(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, err := queryTime(q, "startDate")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	end, err := queryTime(q, "endDate")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	limit, err := queryInt(q, "limit", 0)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	rows, err := h.erp.Movements(r.Context(), mikro.MovementFilter{
		CustomerCode: q.Get("cha_kod"),
		Start:        start,
		End:          end,
		Limit:        limit,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(rows, toMovementDTO))
}

// MovementsSync handles GET /api/cari-hareket/sync.
func (h *ERPHandler) MovementsSync(w http.ResponseWriter, r *http.Request) {
	after, err := queryTime(r.URL.Query(), "after")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	rows, err := h.erp.MovementsAfter(r.Context(), after)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(rows, toMovementDTO))
}

// Names handles GET /api/cari-isim.
func (h *ERPHandler) Names(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(q, "limit", 0)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	rows, err := h.erp.Names(r.Context(), q.Get("search"), limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(rows, func(n domain.CustomerName) customerNameDTO {
		return customerNameDTO(n)
	}))
}

// Prices handles GET /api/stok-fiyat.
func (h *ERPHandler) Prices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	listNo, err := queryInt(q, "listeNo", 0)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	limit, err := queryInt(q, "limit", 0)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	rows, err := h.erp.Prices(r.Context(), q.Get("stokKod"), listNo, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(rows, toPriceDTO))
}

// PricesSync handles GET /api/stok-fiyat/sync.
func (h *ERPHandler) PricesSync(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	after, err := queryTime(q, "after")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	listNo, err := queryInt(q, "listeNo", 0)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	rows, err := h.erp.PricesAfter(r.Context(), after, listNo)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(rows, toPriceDTO))
}

// fail keeps the flat {"error": string} body of the ERP routes.
func (h *ERPHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		h.log.ErrorContext(r.Context(), "erp request failed",
			slog.String("path", r.URL.Path),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "database error")
	}
}
