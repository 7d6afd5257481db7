// Package workflow computes the side effects of an approval decision.
//
// Apply is pure: it takes the current state of every aggregate an approval
// touches and returns the writes to perform plus the domain events those
// writes imply. Loading the state, persisting the plan and publishing the
// events is the caller's job.
package workflow

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

// State is the aggregate state an approval's fan-out reads. Products holds
// the rows locked for the touched product codes.
type State struct {
	Products     map[string]domain.Product
	Order        *domain.Order
	Transaction  *domain.Transaction
	Inventory    *domain.InventoryList
	NextSequence int64
	// Series is used when the payload carries no series of its own.
	Series string
	Now    time.Time
}

// StockAdjustment adds Delta to the stock of one product.
type StockAdjustment struct {
	ProductCode string
	Delta       decimal.Decimal
}

// Plan is the set of writes an approval decision implies. A rejected or
// already processed approval yields an empty plan.
type Plan struct {
	StockAdjustments   []StockAdjustment
	NewTransaction     *domain.Transaction
	UpdatedTransaction *domain.Transaction
	NewOrder           *domain.Order
	UpdatedOrder       *domain.Order
	ProductChange      *domain.ProductChangePayload
	CompletedInventory *domain.InventoryList
	// ReleasedInventory is a list handed back to counting after its
	// approval was rejected.
	ReleasedInventory *domain.InventoryList
}

// IsEmpty reports whether the plan writes nothing.
func (p Plan) IsEmpty() bool {
	return len(p.StockAdjustments) == 0 && p.NewTransaction == nil && p.UpdatedTransaction == nil &&
		p.NewOrder == nil && p.UpdatedOrder == nil && p.ProductChange == nil && p.CompletedInventory == nil &&
		p.ReleasedInventory == nil
}

// Requirements lists the state Apply needs for an approval.
type Requirements struct {
	ProductCodes  []string
	OrderID       *uuid.UUID
	InventoryID   *uuid.UUID
	NeedsSequence bool
}

// Require decodes the approval payload and reports which state must be
// loaded before Apply.
func Require(a *domain.Approval) (Requirements, error) {
	switch a.Type {
	case domain.ApprovalTypeSale, domain.ApprovalTypeReturn:
		var p domain.SalePayload
		if err := domain.DecodePayload(a.NewData, &p); err != nil {
			return Requirements{}, err
		}
		return Requirements{ProductCodes: itemCodes(p.Items), NeedsSequence: true}, nil

	case domain.ApprovalTypePayment, domain.ApprovalTypeExpense:
		return Requirements{NeedsSequence: true}, nil

	case domain.ApprovalTypeOrderChange:
		var p domain.OrderChangePayload
		if err := domain.DecodePayload(a.NewData, &p); err != nil {
			return Requirements{}, err
		}
		codes := itemCodes(p.Items)
		var old []domain.LineItem
		if len(a.OldData) > 0 {
			if err := domain.DecodePayload(a.OldData, &old); err != nil {
				return Requirements{}, err
			}
		}
		codes = mergeCodes(codes, itemCodes(old))
		return Requirements{ProductCodes: codes, OrderID: &p.OrderID}, nil

	case domain.ApprovalTypeProduct:
		var p domain.ProductChangePayload
		if err := domain.DecodePayload(a.NewData, &p); err != nil {
			return Requirements{}, err
		}
		return Requirements{ProductCodes: []string{p.ProductCode}}, nil

	case domain.ApprovalTypeInventory:
		var p domain.InventoryPayload
		if err := domain.DecodePayload(a.NewData, &p); err != nil {
			return Requirements{}, err
		}
		codes := make([]string, 0, len(p.Items))
		for _, it := range p.Items {
			codes = append(codes, it.ProductCode)
		}
		return Requirements{ProductCodes: mergeCodes(codes, nil), InventoryID: &p.ListID}, nil
	}
	return Requirements{}, domain.NewValidationError("type", fmt.Sprintf("unknown approval type %q", a.Type))
}

// Apply computes the plan and events for a decided approval.
func Apply(s State, a *domain.Approval) (Plan, []domain.Event, error) {
	switch a.Status {
	case domain.ApprovalStatusRejected:
		return applyRejection(s, a), []domain.Event{decisionEvent(domain.EventApprovalRejected, a, s.Now)}, nil
	case domain.ApprovalStatusApproved:
	default:
		return Plan{}, nil, domain.NewValidationError("status", "approval is not decided")
	}

	var (
		plan Plan
		err  error
	)
	switch a.Type {
	case domain.ApprovalTypeSale:
		plan, err = applySale(s, a)
	case domain.ApprovalTypeReturn:
		plan, err = applyReturn(s, a)
	case domain.ApprovalTypePayment, domain.ApprovalTypeExpense:
		plan, err = applyPayment(s, a)
	case domain.ApprovalTypeOrderChange:
		plan, err = applyOrderChange(s, a)
	case domain.ApprovalTypeProduct:
		plan, err = applyProduct(s, a)
	case domain.ApprovalTypeInventory:
		plan, err = applyInventory(s, a)
	default:
		err = domain.NewValidationError("type", fmt.Sprintf("unknown approval type %q", a.Type))
	}
	if err != nil {
		return Plan{}, nil, err
	}

	events := planEvents(plan, s.Now)
	events = append(events, decisionEvent(domain.EventApprovalApproved, a, s.Now))
	return plan, events, nil
}

// ---------------------------------------------------------------------------
// Per-type fan-out
// ---------------------------------------------------------------------------

// applyRejection hands back what a pending request holds: the pending flag
// of an order_change's order and the pending-approval state of an inventory
// list. Stock, transactions and orders are otherwise untouched.
func applyRejection(s State, a *domain.Approval) Plan {
	switch a.Type {
	case domain.ApprovalTypeOrderChange:
		if s.Order == nil || !s.Order.PendingChange {
			return Plan{}
		}
		order := *s.Order
		order.PendingChange = false
		order.UpdatedAt = s.Now
		return Plan{UpdatedOrder: &order}

	case domain.ApprovalTypeInventory:
		l := s.Inventory
		if l == nil || l.Status != domain.InventoryStatusPendingApproval {
			return Plan{}
		}
		if l.ApprovalID != nil && *l.ApprovalID != a.ID {
			return Plan{}
		}
		list := *l
		list.Status = domain.InventoryStatusInProgress
		list.ApprovalID = nil
		list.UpdatedAt = s.Now
		return Plan{ReleasedInventory: &list}
	}
	return Plan{}
}

func applySale(s State, a *domain.Approval) (Plan, error) {
	p, err := decodeSale(a)
	if err != nil {
		return Plan{}, err
	}
	if err := requireProducts(s, itemCodes(p.Items)); err != nil {
		return Plan{}, err
	}

	tx := newTransaction(s, a, domain.TransactionTypeSale, p.CustomerCode, p.Total(), p.Series)
	tx.Items = p.Items
	tx.Description = describe("Satış", p.Note)

	order := &domain.Order{
		ID:            uuid.New(),
		Status:        domain.OrderStatusPreparing,
		CustomerCode:  p.CustomerCode,
		Items:         p.Items,
		Discount:      p.Discount,
		TotalAmount:   tx.Amount,
		TransactionID: tx.ID,
		Note:          p.Note,
		CreatedAt:     s.Now,
		UpdatedAt:     s.Now,
	}

	return Plan{
		StockAdjustments: adjustments(nil, p.Items),
		NewTransaction:   tx,
		NewOrder:         order,
	}, nil
}

func applyReturn(s State, a *domain.Approval) (Plan, error) {
	p, err := decodeSale(a)
	if err != nil {
		return Plan{}, err
	}
	if err := requireProducts(s, itemCodes(p.Items)); err != nil {
		return Plan{}, err
	}

	tx := newTransaction(s, a, domain.TransactionTypeReturn, p.CustomerCode, p.Total(), p.Series)
	tx.Items = p.Items
	tx.Description = describe("İade", p.Note)

	return Plan{
		StockAdjustments: adjustments(p.Items, nil),
		NewTransaction:   tx,
	}, nil
}

func applyPayment(s State, a *domain.Approval) (Plan, error) {
	var p domain.PaymentPayload
	if err := domain.DecodePayload(a.NewData, &p); err != nil {
		return Plan{}, err
	}
	if err := ValidatePayment(p); err != nil {
		return Plan{}, err
	}

	kind := domain.TransactionTypePayment
	if a.Type == domain.ApprovalTypeExpense {
		kind = domain.TransactionTypeExpense
	}
	tx := newTransaction(s, a, kind, p.CustomerCode, p.Amount, p.Series)
	method := p.Method
	tx.PaymentMethod = &method
	tx.Description = p.RenderDescription(kind)

	return Plan{NewTransaction: tx}, nil
}

func applyOrderChange(s State, a *domain.Approval) (Plan, error) {
	var p domain.OrderChangePayload
	if err := domain.DecodePayload(a.NewData, &p); err != nil {
		return Plan{}, err
	}
	if len(p.Items) == 0 {
		return Plan{}, domain.NewValidationError("items", "at least one item is required")
	}
	if s.Order == nil || s.Order.ID != p.OrderID {
		return Plan{}, fmt.Errorf("order %s: %w", p.OrderID, domain.ErrNotFound)
	}
	if s.Order.Status.IsTerminal() {
		return Plan{}, domain.NewValidationError("order", "delivered orders cannot change")
	}
	if s.Transaction == nil || s.Transaction.ID != s.Order.TransactionID {
		return Plan{}, fmt.Errorf("transaction %s: %w", s.Order.TransactionID, domain.ErrNotFound)
	}
	if err := requireProducts(s, itemCodes(p.Items)); err != nil {
		return Plan{}, err
	}

	// The stored order is authoritative for the old item set.
	old := s.Order.Items
	total := domain.ItemsTotal(p.Items, p.Discount)

	tx := *s.Transaction
	tx.Items = p.Items
	tx.Amount = total
	tx.UpdatedAt = s.Now

	order := *s.Order
	order.Items = p.Items
	order.Discount = p.Discount
	order.TotalAmount = total
	order.PendingChange = false
	if p.Note != "" {
		order.Note = p.Note
	}
	order.UpdatedAt = s.Now

	return Plan{
		StockAdjustments:   adjustments(old, p.Items),
		UpdatedTransaction: &tx,
		UpdatedOrder:       &order,
	}, nil
}

func applyProduct(s State, a *domain.Approval) (Plan, error) {
	var p domain.ProductChangePayload
	if err := domain.DecodePayload(a.NewData, &p); err != nil {
		return Plan{}, err
	}
	if err := ValidateProductChange(p); err != nil {
		return Plan{}, err
	}
	if err := requireProducts(s, []string{p.ProductCode}); err != nil {
		return Plan{}, err
	}
	return Plan{ProductChange: &p}, nil
}

func applyInventory(s State, a *domain.Approval) (Plan, error) {
	var p domain.InventoryPayload
	if err := domain.DecodePayload(a.NewData, &p); err != nil {
		return Plan{}, err
	}
	if s.Inventory == nil || s.Inventory.ID != p.ListID {
		return Plan{}, fmt.Errorf("inventory list %s: %w", p.ListID, domain.ErrNotFound)
	}
	if s.Inventory.Status == domain.InventoryStatusCompleted {
		return Plan{}, domain.NewValidationError("inventory", "list is already completed")
	}

	list := *s.Inventory
	counted := list.CountedByProduct()
	codes := make([]string, 0, len(counted))
	for code := range counted {
		codes = append(codes, code)
	}
	if err := requireProducts(s, codes); err != nil {
		return Plan{}, err
	}

	// Deltas are taken against the locked stock so the final stock equals
	// the counted quantity even if stock moved after the count.
	sort.Strings(codes)
	adj := make([]StockAdjustment, 0, len(codes))
	for _, code := range codes {
		delta := counted[code].Sub(s.Products[code].Stock)
		if delta.IsZero() {
			continue
		}
		adj = append(adj, StockAdjustment{ProductCode: code, Delta: delta})
	}

	list.Status = domain.InventoryStatusCompleted
	list.UpdatedAt = s.Now

	return Plan{StockAdjustments: adj, CompletedInventory: &list}, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func decodeSale(a *domain.Approval) (domain.SalePayload, error) {
	var p domain.SalePayload
	if err := domain.DecodePayload(a.NewData, &p); err != nil {
		return p, err
	}
	return p, ValidateSale(p)
}

// ValidateSale checks a sale or return payload.
func ValidateSale(p domain.SalePayload) error {
	var errs []domain.FieldError
	if p.CustomerCode == "" {
		errs = append(errs, domain.FieldError{Field: "customerCode", Message: "required"})
	}
	if len(p.Items) == 0 {
		errs = append(errs, domain.FieldError{Field: "items", Message: "at least one item is required"})
	}
	for i, it := range p.Items {
		if it.ProductCode == "" {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("items[%d].productCode", i), Message: "required"})
		}
		if !it.Quantity.IsPositive() {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("items[%d].quantity", i), Message: "must be positive"})
		}
		if it.Price.IsNegative() {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("items[%d].price", i), Message: "must not be negative"})
		}
	}
	if p.Discount.IsNegative() || p.Discount.GreaterThan(decimal.NewFromInt(100)) {
		errs = append(errs, domain.FieldError{Field: "discount", Message: "must be between 0 and 100"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ValidatePayment checks a payment or expense payload.
func ValidatePayment(p domain.PaymentPayload) error {
	var errs []domain.FieldError
	if p.CustomerCode == "" {
		errs = append(errs, domain.FieldError{Field: "customerCode", Message: "required"})
	}
	if !p.Amount.IsPositive() {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be positive"})
	}
	if !p.Method.IsValid() {
		errs = append(errs, domain.FieldError{Field: "method", Message: "unknown payment method"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ValidateProductChange checks a product change payload.
func ValidateProductChange(p domain.ProductChangePayload) error {
	if p.ProductCode == "" {
		return domain.NewValidationError("productCode", "required")
	}
	if p.Name == nil && p.Price == nil && p.Stock == nil {
		return domain.NewValidationError("change", "nothing to change")
	}
	if p.Price != nil && p.Price.IsNegative() {
		return domain.NewValidationError("price", "must not be negative")
	}
	return nil
}

func newTransaction(s State, a *domain.Approval, kind domain.TransactionType, customer string, amount decimal.Decimal, series string) *domain.Transaction {
	if series == "" {
		series = s.Series
	}
	approvalID := a.ID
	return &domain.Transaction{
		ID:           uuid.New(),
		Type:         kind,
		CustomerCode: customer,
		Amount:       amount,
		Sequence:     s.NextSequence,
		Series:       series,
		ApprovalID:   &approvalID,
		CreatedBy:    a.RequestedBy,
		Date:         s.Now,
		UpdatedAt:    s.Now,
	}
}

func describe(prefix, note string) string {
	if note == "" {
		return prefix
	}
	return prefix + ": " + note
}

func requireProducts(s State, codes []string) error {
	for _, code := range codes {
		if _, ok := s.Products[code]; !ok {
			return fmt.Errorf("product %s: %w", code, domain.ErrNotFound)
		}
	}
	return nil
}

// adjustments returns per-product deltas that restore restored and deduct
// deducted, sorted by product code. Zero deltas are dropped.
func adjustments(restored, deducted []domain.LineItem) []StockAdjustment {
	deltas := make(map[string]decimal.Decimal)
	for _, it := range restored {
		deltas[it.ProductCode] = deltas[it.ProductCode].Add(it.Quantity)
	}
	for _, it := range deducted {
		deltas[it.ProductCode] = deltas[it.ProductCode].Sub(it.Quantity)
	}
	codes := make([]string, 0, len(deltas))
	for code, d := range deltas {
		if !d.IsZero() {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	out := make([]StockAdjustment, 0, len(codes))
	for _, code := range codes {
		out = append(out, StockAdjustment{ProductCode: code, Delta: deltas[code]})
	}
	return out
}

func itemCodes(items []domain.LineItem) []string {
	codes := make([]string, 0, len(items))
	for _, it := range items {
		codes = append(codes, it.ProductCode)
	}
	return mergeCodes(codes, nil)
}

// mergeCodes returns the sorted union of a and b without duplicates.
func mergeCodes(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, c := range list {
			if _, ok := seen[c]; ok || c == "" {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

func decisionEvent(t domain.EventType, a *domain.Approval, at time.Time) domain.Event {
	return domain.NewEvent(t, a.ID.String(), map[string]any{
		"type":         a.Type,
		"customerCode": a.CustomerCode,
		"amount":       a.Amount,
	}, at)
}

func planEvents(p Plan, at time.Time) []domain.Event {
	var events []domain.Event
	for _, adj := range p.StockAdjustments {
		events = append(events, domain.NewEvent(domain.EventStockAdjusted, adj.ProductCode,
			map[string]any{"delta": adj.Delta}, at))
	}
	if p.NewTransaction != nil {
		events = append(events, domain.NewEvent(domain.EventTransactionAdded, p.NewTransaction.ID.String(),
			transactionEvent(p.NewTransaction), at))
	}
	if p.UpdatedTransaction != nil {
		events = append(events, domain.NewEvent(domain.EventTransactionEdited, p.UpdatedTransaction.ID.String(),
			transactionEvent(p.UpdatedTransaction), at))
	}
	if p.NewOrder != nil {
		events = append(events, domain.NewEvent(domain.EventOrderCreated, p.NewOrder.ID.String(),
			map[string]any{"customerCode": p.NewOrder.CustomerCode, "total": p.NewOrder.TotalAmount}, at))
	}
	if p.UpdatedOrder != nil {
		events = append(events, domain.NewEvent(domain.EventOrderUpdated, p.UpdatedOrder.ID.String(),
			map[string]any{"total": p.UpdatedOrder.TotalAmount}, at))
	}
	if p.ProductChange != nil {
		events = append(events, domain.NewEvent(domain.EventProductChanged, p.ProductChange.ProductCode, p.ProductChange, at))
	}
	if p.CompletedInventory != nil {
		events = append(events, domain.NewEvent(domain.EventInventoryApplied, p.CompletedInventory.ID.String(),
			map[string]any{"name": p.CompletedInventory.Name, "items": p.CompletedInventory.TotalItems}, at))
	}
	return events
}

func transactionEvent(t *domain.Transaction) map[string]any {
	return map[string]any{
		"type":         t.Type,
		"customerCode": t.CustomerCode,
		"amount":       t.Amount,
		"sequence":     t.Sequence,
	}
}
