package domain

// ApprovalType identifies the kind of change request waiting for sign-off.
type ApprovalType string

const (
	ApprovalTypeSale        ApprovalType = "sale"
	ApprovalTypePayment     ApprovalType = "payment"
	ApprovalTypeExpense     ApprovalType = "expense"
	ApprovalTypeReturn      ApprovalType = "return"
	ApprovalTypeProduct     ApprovalType = "product"
	ApprovalTypeOrderChange ApprovalType = "order_change"
	ApprovalTypeInventory   ApprovalType = "inventory"
)

// AllApprovalTypes lists every approval type in display order.
var AllApprovalTypes = []ApprovalType{
	ApprovalTypeSale,
	ApprovalTypePayment,
	ApprovalTypeExpense,
	ApprovalTypeReturn,
	ApprovalTypeProduct,
	ApprovalTypeOrderChange,
	ApprovalTypeInventory,
}

func (t ApprovalType) String() string { return string(t) }

func (t ApprovalType) IsValid() bool {
	switch t {
	case ApprovalTypeSale, ApprovalTypePayment, ApprovalTypeExpense, ApprovalTypeReturn,
		ApprovalTypeProduct, ApprovalTypeOrderChange, ApprovalTypeInventory:
		return true
	}
	return false
}

// ApprovalStatus is the lifecycle state of an approval.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

func (s ApprovalStatus) String() string { return string(s) }

func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return true
	}
	return false
}

// IsDecision reports whether s is a terminal status a reviewer can pick.
func (s ApprovalStatus) IsDecision() bool {
	return s == ApprovalStatusApproved || s == ApprovalStatusRejected
}

// TransactionType is the kind of monetary movement in the ledger.
type TransactionType string

const (
	TransactionTypeSale    TransactionType = "sale"
	TransactionTypePayment TransactionType = "payment"
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeReturn  TransactionType = "return"
)

func (t TransactionType) String() string { return string(t) }

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeSale, TransactionTypePayment, TransactionTypeExpense, TransactionTypeReturn:
		return true
	}
	return false
}

// IsDebit reports whether the type lowers the customer balance.
func (t TransactionType) IsDebit() bool {
	return t == TransactionTypeSale || t == TransactionTypeExpense
}

// OrderStatus is the fulfilment stage of an order.
type OrderStatus string

const (
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusChecking  OrderStatus = "checking"
	OrderStatusLoading   OrderStatus = "loading"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
)

var orderProgression = []OrderStatus{
	OrderStatusPreparing,
	OrderStatusChecking,
	OrderStatusLoading,
	OrderStatusReady,
	OrderStatusDelivered,
}

func (s OrderStatus) String() string { return string(s) }

func (s OrderStatus) IsValid() bool {
	return s.rank() >= 0
}

// Next returns the following stage. ok is false for delivered or unknown
// statuses.
func (s OrderStatus) Next() (OrderStatus, bool) {
	r := s.rank()
	if r < 0 || r == len(orderProgression)-1 {
		return "", false
	}
	return orderProgression[r+1], true
}

// IsTerminal reports whether no further transition exists.
func (s OrderStatus) IsTerminal() bool { return s == OrderStatusDelivered }

func (s OrderStatus) rank() int {
	for i, st := range orderProgression {
		if st == s {
			return i
		}
	}
	return -1
}

// InventoryStatus is the state of a count session.
type InventoryStatus string

const (
	InventoryStatusInProgress      InventoryStatus = "in-progress"
	InventoryStatusCompleted       InventoryStatus = "completed"
	InventoryStatusPendingApproval InventoryStatus = "pending-approval"
)

func (s InventoryStatus) String() string { return string(s) }

func (s InventoryStatus) IsValid() bool {
	switch s {
	case InventoryStatusInProgress, InventoryStatusCompleted, InventoryStatusPendingApproval:
		return true
	}
	return false
}

// PaymentMethod is how a payment or expense was settled.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCheque   PaymentMethod = "cheque"
	PaymentMethodNote     PaymentMethod = "note"
)

var paymentMethodLabels = map[PaymentMethod]string{
	PaymentMethodCash:     "Nakit",
	PaymentMethodCard:     "Kredi Kartı",
	PaymentMethodTransfer: "Havale/EFT",
	PaymentMethodCheque:   "Çek",
	PaymentMethodNote:     "Senet",
}

func (m PaymentMethod) String() string { return string(m) }

func (m PaymentMethod) IsValid() bool {
	_, ok := paymentMethodLabels[m]
	return ok
}

// Label returns the Turkish display name used in ledger descriptions.
func (m PaymentMethod) Label() string {
	if l, ok := paymentMethodLabels[m]; ok {
		return l
	}
	return string(m)
}

// UserRole is the coarse role of a back-office user.
type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleManager   UserRole = "manager"
	UserRoleSales     UserRole = "sales"
	UserRoleWarehouse UserRole = "warehouse"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleManager, UserRoleSales, UserRoleWarehouse:
		return true
	}
	return false
}

// IsAdmin reports whether the role bypasses permission checks.
func (r UserRole) IsAdmin() bool { return r == UserRoleAdmin }

// SyncTable names an ERP table mirrored by the pull sync.
type SyncTable string

const (
	SyncTableCustomers SyncTable = "customers"
	SyncTableAddresses SyncTable = "addresses"
	SyncTableProducts  SyncTable = "products"
	SyncTableMovements SyncTable = "movements"
)

// AllSyncTables lists the tables in the order a full sync visits them.
var AllSyncTables = []SyncTable{
	SyncTableCustomers,
	SyncTableAddresses,
	SyncTableProducts,
	SyncTableMovements,
}

func (t SyncTable) String() string { return string(t) }

func (t SyncTable) IsValid() bool {
	switch t {
	case SyncTableCustomers, SyncTableAddresses, SyncTableProducts, SyncTableMovements:
		return true
	}
	return false
}
