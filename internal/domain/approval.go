package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Approval is a change request waiting for (or past) reviewer sign-off.
// OldData and NewData hold the type-specific payload as JSON.
type Approval struct {
	ID           uuid.UUID
	Type         ApprovalType
	Status       ApprovalStatus
	Processed    bool
	RequestedBy  uuid.UUID
	DecidedBy    *uuid.UUID
	Description  string
	Amount       *decimal.Decimal
	CustomerCode *string
	OldData      json.RawMessage
	NewData      json.RawMessage
	CreatedAt    time.Time
	DecidedAt    *time.Time
}

// IsPending reports whether the approval still awaits a decision.
func (a *Approval) IsPending() bool {
	return a.Status == ApprovalStatusPending && !a.Processed
}

// Decide records a terminal decision. It returns false without touching the
// approval when it was already processed.
func (a *Approval) Decide(status ApprovalStatus, by uuid.UUID, at time.Time) (bool, error) {
	if !status.IsDecision() {
		return false, NewValidationError("status", fmt.Sprintf("must be approved or rejected, got %q", status))
	}
	if a.Processed || a.Status != ApprovalStatusPending {
		return false, nil
	}
	a.Status = status
	a.Processed = true
	a.DecidedBy = &by
	a.DecidedAt = &at
	return true, nil
}

// LineItem is one product line of a sale, return or order.
type LineItem struct {
	ProductCode string          `json:"productCode"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Note        string          `json:"note,omitempty"`
}

// LineTotal returns quantity * price.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.Quantity.Mul(l.Price)
}

// ItemsTotal sums the line totals and applies a percentage discount.
func ItemsTotal(items []LineItem, discountPct decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	if discountPct.IsPositive() {
		off := total.Mul(discountPct).Div(decimal.NewFromInt(100))
		total = total.Sub(off)
	}
	return total.Round(2)
}

// SalePayload is the NewData of a sale or return approval.
type SalePayload struct {
	CustomerCode string          `json:"customerCode"`
	Items        []LineItem      `json:"items"`
	Discount     decimal.Decimal `json:"discount"`
	Note         string          `json:"note,omitempty"`
	Series       string          `json:"series,omitempty"`
}

// Total returns the discounted amount of the payload.
func (p SalePayload) Total() decimal.Decimal {
	return ItemsTotal(p.Items, p.Discount)
}

// PaymentPayload is the NewData of a payment or expense approval.
type PaymentPayload struct {
	CustomerCode string          `json:"customerCode"`
	Amount       decimal.Decimal `json:"amount"`
	Method       PaymentMethod   `json:"method"`
	Description  string          `json:"description,omitempty"`
	Series       string          `json:"series,omitempty"`
}

// RenderDescription builds the ledger description for a payment or expense.
func (p PaymentPayload) RenderDescription(kind TransactionType) string {
	prefix := "Tahsilat"
	if kind == TransactionTypeExpense {
		prefix = "Masraf"
	}
	desc := fmt.Sprintf("%s - %s", prefix, p.Method.Label())
	if p.Description != "" {
		desc += ": " + p.Description
	}
	return desc
}

// OrderChangePayload carries the replacement item set for an existing order.
// The old item set travels in the approval's OldData.
type OrderChangePayload struct {
	OrderID  uuid.UUID       `json:"orderId"`
	Items    []LineItem      `json:"items"`
	Discount decimal.Decimal `json:"discount"`
	Note     string          `json:"note,omitempty"`
}

// ProductChangePayload updates price or stock of a local product row.
// Nil fields are left unchanged.
type ProductChangePayload struct {
	ProductCode string           `json:"productCode"`
	Name        *string          `json:"name,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *decimal.Decimal `json:"stock,omitempty"`
}

// InventoryPayload references a count session whose deltas should be applied.
type InventoryPayload struct {
	ListID uuid.UUID        `json:"listId"`
	Name   string           `json:"name"`
	Items  []CountedProduct `json:"items"`
}

// EncodePayload marshals a payload for storage in OldData/NewData.
func EncodePayload(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode approval payload: %w", err)
	}
	return b, nil
}

// DecodePayload unmarshals an approval payload into dst.
func DecodePayload(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return NewValidationError("data", "payload is empty")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return NewValidationError("data", "payload is malformed: "+err.Error())
	}
	return nil
}

// ApprovalFilter narrows an approval listing. Nil fields match everything.
type ApprovalFilter struct {
	Status *ApprovalStatus
	Type   *ApprovalType
	Limit  int
	Offset int
}
