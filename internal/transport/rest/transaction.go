package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
	"github.com/heartmarshall/mikro-backoffice/internal/service/ledger"
)

type ledgerService interface {
	List(ctx context.Context, input ledger.ListInput) ([]domain.Transaction, error)
	Balance(ctx context.Context, input ledger.BalanceInput) (domain.CustomerBalance, error)
	NextSequence(ctx context.Context) (int64, error)
	SubmitPayment(ctx context.Context, input ledger.PaymentInput) (*domain.Approval, error)
	SubmitReturn(ctx context.Context, input ledger.ReturnInput) (*domain.Approval, error)
}

// TransactionHandler serves the local ledger.
type TransactionHandler struct {
	svc ledgerService
	log *slog.Logger
}

// NewTransactionHandler creates a TransactionHandler.
func NewTransactionHandler(svc ledgerService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{svc: svc, log: logger.With("handler", "transaction")}
}

type paymentRequest struct {
	CustomerCode string          `json:"customerCode" validate:"required,max=25"`
	Amount       decimal.Decimal `json:"amount"`
	Method       string          `json:"method" validate:"required,oneof=cash card transfer cheque note"`
	Description  string          `json:"description" validate:"max=255"`
}

type returnRequest struct {
	CustomerCode string            `json:"customerCode" validate:"required,max=25"`
	Items        []domain.LineItem `json:"items" validate:"required,min=1"`
	Discount     decimal.Decimal   `json:"discount"`
	Note         string            `json:"note" validate:"max=500"`
}

// List handles GET /api/v1/transactions.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, offset, err := page(q)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	from, err := queryTime(q, "from")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	to, err := queryTime(q, "to")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	input := ledger.ListInput{
		CustomerCode: queryString(q, "customerCode"),
		From:         from,
		To:           to,
		Limit:        limit,
		Offset:       offset,
	}
	if t := queryString(q, "type"); t != nil {
		tt := domain.TransactionType(*t)
		input.Type = &tt
	}

	rows, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	codes := make([]string, len(rows))
	for i, t := range rows {
		codes[i] = t.CustomerCode
	}
	names := customerNames(r, h.log, codes)

	out := make([]transactionDTO, len(rows))
	for i, t := range rows {
		out[i] = toTransactionDTO(t)
		out[i].CustomerName = names[t.CustomerCode]
	}
	writeJSON(w, http.StatusOK, out)
}

// Balance handles GET /api/v1/transactions/balance/{code}.
func (h *TransactionHandler) Balance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := queryTime(q, "from")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	to, err := queryTime(q, "to")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	b, err := h.svc.Balance(r.Context(), ledger.BalanceInput{
		CustomerCode: r.PathValue("code"),
		From:         from,
		To:           to,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// NextSequence handles GET /api/v1/transactions/next-sequence.
func (h *TransactionHandler) NextSequence(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.NextSequence(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"sequence": n})
}

// Payment handles POST /api/v1/transactions/payment.
func (h *TransactionHandler) Payment(w http.ResponseWriter, r *http.Request) {
	h.submitPayment(w, r, domain.TransactionTypePayment)
}

// Expense handles POST /api/v1/transactions/expense.
func (h *TransactionHandler) Expense(w http.ResponseWriter, r *http.Request) {
	h.submitPayment(w, r, domain.TransactionTypeExpense)
}

func (h *TransactionHandler) submitPayment(w http.ResponseWriter, r *http.Request, kind domain.TransactionType) {
	var req paymentRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	a, err := h.svc.SubmitPayment(r.Context(), ledger.PaymentInput{
		Kind:         kind,
		CustomerCode: req.CustomerCode,
		Amount:       req.Amount,
		Method:       domain.PaymentMethod(req.Method),
		Description:  req.Description,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toApprovalDTO(a))
}

// Return handles POST /api/v1/transactions/return.
func (h *TransactionHandler) Return(w http.ResponseWriter, r *http.Request) {
	var req returnRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	a, err := h.svc.SubmitReturn(r.Context(), ledger.ReturnInput{
		CustomerCode: req.CustomerCode,
		Items:        req.Items,
		Discount:     req.Discount,
		Note:         req.Note,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toApprovalDTO(a))
}
