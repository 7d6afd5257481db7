package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is one monetary movement in the local ledger. Amount is always
// a non-negative magnitude; the sign is derived from Type.
type Transaction struct {
	ID            uuid.UUID
	Type          TransactionType
	CustomerCode  string
	Amount        decimal.Decimal
	Items         []LineItem
	Sequence      int64
	Series        string
	Description   string
	PaymentMethod *PaymentMethod
	ApprovalID    *uuid.UUID
	CreatedBy     uuid.UUID
	Date          time.Time
	UpdatedAt     time.Time
}

// SignedAmount returns the amount with the balance sign applied:
// sale and expense lower the balance, payment and return raise it.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type.IsDebit() {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Balance returns Σ(payment + return) − Σ(sale + expense) over txs.
func Balance(txs []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		total = total.Add(t.SignedAmount())
	}
	return total
}

// CustomerBalance is the aggregated ledger position of one customer.
type CustomerBalance struct {
	CustomerCode string          `json:"customerCode"`
	Sales        decimal.Decimal `json:"sales"`
	Payments     decimal.Decimal `json:"payments"`
	Expenses     decimal.Decimal `json:"expenses"`
	Returns      decimal.Decimal `json:"returns"`
	Balance      decimal.Decimal `json:"balance"`
}

// NewCustomerBalance builds a CustomerBalance from per-type totals.
func NewCustomerBalance(code string, totals map[TransactionType]decimal.Decimal) CustomerBalance {
	b := CustomerBalance{
		CustomerCode: code,
		Sales:        totals[TransactionTypeSale],
		Payments:     totals[TransactionTypePayment],
		Expenses:     totals[TransactionTypeExpense],
		Returns:      totals[TransactionTypeReturn],
	}
	b.Balance = b.Payments.Add(b.Returns).Sub(b.Sales.Add(b.Expenses))
	return b
}

// DailyReport summarises the ledger for one calendar day.
type DailyReport struct {
	Day          time.Time
	Totals       map[TransactionType]decimal.Decimal
	Counts       map[TransactionType]int
	Net          decimal.Decimal
	Transactions []Transaction
}

// NewDailyReport aggregates txs that belong to day.
func NewDailyReport(day time.Time, txs []Transaction) DailyReport {
	r := DailyReport{
		Day:          day,
		Totals:       make(map[TransactionType]decimal.Decimal, 4),
		Counts:       make(map[TransactionType]int, 4),
		Transactions: txs,
	}
	for _, t := range txs {
		r.Totals[t.Type] = r.Totals[t.Type].Add(t.Amount)
		r.Counts[t.Type]++
	}
	r.Net = Balance(txs)
	return r
}

// TransactionFilter narrows a ledger listing. From is inclusive, To exclusive.
type TransactionFilter struct {
	CustomerCode *string
	Type         *TransactionType
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}
