package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SyncState is the watermark of one mirrored ERP table. A nil LastSync
// means the table was never synced and the next run fetches everything.
type SyncState struct {
	Table     SyncTable
	LastSync  *time.Time
	LastRunAt *time.Time
	LastError string
	RowCount  int64
}

// SyncResult reports one table pass.
type SyncResult struct {
	Table     SyncTable
	After     *time.Time
	Fetched   int
	Watermark *time.Time
	Skipped   bool
}

// Settings hold the workflow switches administrators can flip at runtime.
type Settings struct {
	// Gating maps an approval type to whether submissions wait for review.
	Gating                   map[ApprovalType]bool
	InventoryRequireApproval bool
}

// RequiresApproval reports the gating for t.
func (s Settings) RequiresApproval(t ApprovalType) bool {
	if t == ApprovalTypeInventory {
		return s.InventoryRequireApproval
	}
	return s.Gating[t]
}

// DefaultSettings gates every approval type with the same flag.
func DefaultSettings(gating, inventory bool) Settings {
	s := Settings{
		Gating:                   make(map[ApprovalType]bool, len(AllApprovalTypes)),
		InventoryRequireApproval: inventory,
	}
	for _, t := range AllApprovalTypes {
		s.Gating[t] = gating
	}
	s.Gating[ApprovalTypeInventory] = inventory
	return s
}

// EventType names a domain event emitted by workflow fan-out.
type EventType string

const (
	EventApprovalRequested EventType = "approval.requested"
	EventApprovalApproved  EventType = "approval.approved"
	EventApprovalRejected  EventType = "approval.rejected"
	EventStockAdjusted     EventType = "stock.adjusted"
	EventTransactionAdded  EventType = "transaction.added"
	EventTransactionEdited EventType = "transaction.updated"
	EventOrderCreated      EventType = "order.created"
	EventOrderUpdated      EventType = "order.updated"
	EventOrderAdvanced     EventType = "order.advanced"
	EventProductChanged    EventType = "product.changed"
	EventInventoryApplied  EventType = "inventory.completed"
	EventCustomerUpdated   EventType = "customer.updated"
)

// Event is a fact recorded after a state change commits.
type Event struct {
	ID          uuid.UUID       `json:"id"`
	Type        EventType       `json:"type"`
	AggregateID string          `json:"aggregateId"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	OccurredAt  time.Time       `json:"occurredAt"`
}

// NewEvent builds an event with a marshalled payload. Payload marshalling
// errors are folded into an empty payload; events are informational.
func NewEvent(t EventType, aggregateID string, payload any, at time.Time) Event {
	var raw json.RawMessage
	if payload != nil {
		if b, err := json.Marshal(payload); err == nil {
			raw = b
		}
	}
	return Event{
		ID:          uuid.New(),
		Type:        t,
		AggregateID: aggregateID,
		Payload:     raw,
		OccurredAt:  at,
	}
}
