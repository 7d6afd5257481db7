package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is the per-user sales basket.
type Cart struct {
	UserID       uuid.UUID
	CustomerCode string
	Items        []LineItem
	Discount     decimal.Decimal
	OrderNote    string
	UpdatedAt    time.Time
}

// SetItem adds a line or replaces the quantity, price and note of the
// existing line for the same product.
func (c *Cart) SetItem(item LineItem) {
	for i := range c.Items {
		if c.Items[i].ProductCode == item.ProductCode {
			c.Items[i] = item
			return
		}
	}
	c.Items = append(c.Items, item)
}

// RemoveItem drops the line for productCode and reports whether it existed.
func (c *Cart) RemoveItem(productCode string) bool {
	for i := range c.Items {
		if c.Items[i].ProductCode == productCode {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart but keeps the selected customer.
func (c *Cart) Clear() {
	c.Items = nil
	c.Discount = decimal.Zero
	c.OrderNote = ""
}

// Total returns the discounted cart amount.
func (c Cart) Total() decimal.Decimal {
	return ItemsTotal(c.Items, c.Discount)
}
