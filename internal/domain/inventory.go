package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CountedProduct is one counted line of an inventory session. The pair
// (ProductCode, Department) is unique within a list.
type CountedProduct struct {
	ProductCode  string          `json:"productCode"`
	ProductName  string          `json:"productName,omitempty"`
	Department   string          `json:"department"`
	CountedStock decimal.Decimal `json:"countedStock"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	CountedAt    time.Time       `json:"countedAt"`
}

// InventoryList is a named count session.
type InventoryList struct {
	ID         uuid.UUID
	Name       string
	Status     InventoryStatus
	Items      []CountedProduct
	TotalItems int
	TotalValue decimal.Decimal
	ApprovalID *uuid.UUID
	CreatedBy  uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Upsert records a count. A recount of the same product and department
// replaces the previous entry.
func (l *InventoryList) Upsert(item CountedProduct) {
	for i := range l.Items {
		if l.Items[i].ProductCode == item.ProductCode && l.Items[i].Department == item.Department {
			l.Items[i] = item
			l.Recalculate()
			return
		}
	}
	l.Items = append(l.Items, item)
	l.Recalculate()
}

// Remove drops the entry for product and department. It reports whether an
// entry was removed.
func (l *InventoryList) Remove(productCode, department string) bool {
	for i := range l.Items {
		if l.Items[i].ProductCode == productCode && l.Items[i].Department == department {
			l.Items = append(l.Items[:i], l.Items[i+1:]...)
			l.Recalculate()
			return true
		}
	}
	return false
}

// Recalculate refreshes TotalItems and TotalValue from Items.
func (l *InventoryList) Recalculate() {
	l.TotalItems = len(l.Items)
	total := decimal.Zero
	for _, it := range l.Items {
		total = total.Add(it.CountedStock.Mul(it.UnitPrice))
	}
	l.TotalValue = total.Round(2)
}

// CountedByProduct sums the counted quantity of every product across
// departments.
func (l *InventoryList) CountedByProduct() map[string]decimal.Decimal {
	counted := make(map[string]decimal.Decimal, len(l.Items))
	for _, it := range l.Items {
		counted[it.ProductCode] = counted[it.ProductCode].Add(it.CountedStock)
	}
	return counted
}

// IsEditable reports whether counts may still change.
func (l *InventoryList) IsEditable() bool {
	return l.Status == InventoryStatusInProgress
}
