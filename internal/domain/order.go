package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a fulfilment record created when a sale is approved.
type Order struct {
	ID            uuid.UUID
	Status        OrderStatus
	CustomerCode  string
	Items         []LineItem
	Discount      decimal.Decimal
	TotalAmount   decimal.Decimal
	TransactionID uuid.UUID
	PendingChange bool
	Note          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeliveredAt   *time.Time
}

// Advance moves the order one stage forward.
func (o *Order) Advance(now time.Time) error {
	if o.PendingChange {
		return NewValidationError("status", "order has a pending change request")
	}
	next, ok := o.Status.Next()
	if !ok {
		return NewValidationError("status", "order "+o.Status.String()+" cannot advance")
	}
	o.Status = next
	o.UpdatedAt = now
	if next == OrderStatusDelivered {
		o.DeliveredAt = &now
	}
	return nil
}

// OrderFilter narrows an order listing.
type OrderFilter struct {
	Status       *OrderStatus
	CustomerCode *string
	Limit        int
	Offset       int
}
