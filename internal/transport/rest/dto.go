package rest

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

type userDTO struct {
	ID          string                   `json:"id"`
	Username    string                   `json:"username"`
	Name        string                   `json:"name"`
	Role        string                   `json:"role"`
	Series      string                   `json:"series"`
	Permissions []domain.PermissionGrant `json:"permissions"`
	Active      bool                     `json:"active"`
	CreatedAt   time.Time                `json:"createdAt"`
}

func toUserDTO(u *domain.User) userDTO {
	grants := u.Permissions
	if grants == nil {
		grants = []domain.PermissionGrant{}
	}
	return userDTO{
		ID:          u.ID.String(),
		Username:    u.Username,
		Name:        u.Name,
		Role:        u.Role.String(),
		Series:      u.Series,
		Permissions: grants,
		Active:      u.Active,
		CreatedAt:   u.CreatedAt,
	}
}

type customerDTO struct {
	Code       string     `json:"code"`
	Name       string     `json:"name"`
	Name2      string     `json:"name2,omitempty"`
	TaxOffice  string     `json:"taxOffice,omitempty"`
	TaxNumber  string     `json:"taxNumber,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	Email      string     `json:"email,omitempty"`
	City       string     `json:"city,omitempty"`
	District   string     `json:"district,omitempty"`
	LastupDate time.Time  `json:"lastupDate"`
	Version    int64      `json:"version"`
	LastSync   *time.Time `json:"lastSync,omitempty"`
}

func toCustomerDTO(c domain.Customer) customerDTO {
	return customerDTO{
		Code:       c.Code,
		Name:       c.Name,
		Name2:      c.Name2,
		TaxOffice:  c.TaxOffice,
		TaxNumber:  c.TaxNumber,
		Phone:      c.Phone,
		Email:      c.Email,
		City:       c.City,
		District:   c.District,
		LastupDate: c.LastupDate,
		Version:    c.Version,
		LastSync:   c.LastSync,
	}
}

type addressDTO struct {
	CustomerCode string    `json:"customerCode"`
	AddressNo    int       `json:"addressNo"`
	Street       string    `json:"street"`
	Neighborhood string    `json:"neighborhood"`
	District     string    `json:"district"`
	City         string    `json:"city"`
	Phone        string    `json:"phone"`
	LastupDate   time.Time `json:"lastupDate"`
}

func toAddressDTO(a domain.CustomerAddress) addressDTO {
	return addressDTO(a)
}

type movementDTO struct {
	CustomerCode   string          `json:"customerCode"`
	Date           time.Time       `json:"date"`
	DocumentSeries string          `json:"documentSeries"`
	DocumentNo     int             `json:"documentNo"`
	Direction      int             `json:"direction"`
	Kind           int             `json:"kind"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	LastupDate     time.Time       `json:"lastupDate"`
}

func toMovementDTO(m domain.CustomerMovement) movementDTO {
	return movementDTO(m)
}

type erpBalanceDTO struct {
	CustomerCode string          `json:"customerCode"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Balance      decimal.Decimal `json:"balance"`
}

func toERPBalanceDTO(b domain.ERPBalance) erpBalanceDTO {
	return erpBalanceDTO(b)
}

type customerNameDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type priceDTO struct {
	ProductCode string          `json:"productCode"`
	ProductName string          `json:"productName"`
	Unit        string          `json:"unit"`
	ListNo      int             `json:"listNo"`
	Price       decimal.Decimal `json:"price"`
	LastupDate  time.Time       `json:"lastupDate"`
}

func toPriceDTO(p domain.PriceListEntry) priceDTO {
	return priceDTO(p)
}

type productDTO struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
	PriceListNo int             `json:"priceListNo"`
	Stock       decimal.Decimal `json:"stock"`
	LastupDate  time.Time       `json:"lastupDate"`
	LastSync    *time.Time      `json:"lastSync,omitempty"`
}

func toProductDTO(p domain.Product) productDTO {
	return productDTO{
		Code:        p.Code,
		Name:        p.Name,
		Unit:        p.Unit,
		Price:       p.Price,
		PriceListNo: p.PriceListNo,
		Stock:       p.Stock,
		LastupDate:  p.LastupDate,
		LastSync:    p.LastSync,
	}
}

type cartDTO struct {
	CustomerCode string            `json:"customerCode"`
	CustomerName string            `json:"customerName,omitempty"`
	Items        []domain.LineItem `json:"items"`
	Discount     decimal.Decimal   `json:"discount"`
	OrderNote    string            `json:"orderNote"`
	Total        decimal.Decimal   `json:"total"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func toCartDTO(c *domain.Cart) cartDTO {
	return cartDTO{
		CustomerCode: c.CustomerCode,
		Items:        nonNilItems(c.Items),
		Discount:     c.Discount,
		OrderNote:    c.OrderNote,
		Total:        c.Total(),
		UpdatedAt:    c.UpdatedAt,
	}
}

type approvalDTO struct {
	ID           string           `json:"id"`
	Type         string           `json:"type"`
	Status       string           `json:"status"`
	Processed    bool             `json:"processed"`
	RequestedBy  string           `json:"requestedBy"`
	DecidedBy    *string          `json:"decidedBy,omitempty"`
	Description  string           `json:"description"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	CustomerCode *string          `json:"customerCode,omitempty"`
	CustomerName string           `json:"customerName,omitempty"`
	OldData      json.RawMessage  `json:"oldData,omitempty"`
	NewData      json.RawMessage  `json:"newData,omitempty"`
	Date         time.Time        `json:"date"`
	DecidedAt    *time.Time       `json:"decidedAt,omitempty"`
}

func toApprovalDTO(a *domain.Approval) approvalDTO {
	dto := approvalDTO{
		ID:           a.ID.String(),
		Type:         a.Type.String(),
		Status:       a.Status.String(),
		Processed:    a.Processed,
		RequestedBy:  a.RequestedBy.String(),
		Description:  a.Description,
		Amount:       a.Amount,
		CustomerCode: a.CustomerCode,
		OldData:      a.OldData,
		NewData:      a.NewData,
		Date:         a.CreatedAt,
		DecidedAt:    a.DecidedAt,
	}
	if a.DecidedBy != nil {
		s := a.DecidedBy.String()
		dto.DecidedBy = &s
	}
	return dto
}

type transactionDTO struct {
	ID            string            `json:"id"`
	Type          string            `json:"type"`
	CustomerCode  string            `json:"customerCode"`
	CustomerName  string            `json:"customerName,omitempty"`
	Amount        decimal.Decimal   `json:"amount"`
	Items         []domain.LineItem `json:"items,omitempty"`
	Sequence      int64             `json:"sequence"`
	Series        string            `json:"series"`
	Description   string            `json:"description"`
	PaymentMethod *string           `json:"paymentMethod,omitempty"`
	ApprovalID    *string           `json:"approvalId,omitempty"`
	Date          time.Time         `json:"date"`
}

func toTransactionDTO(t domain.Transaction) transactionDTO {
	dto := transactionDTO{
		ID:           t.ID.String(),
		Type:         t.Type.String(),
		CustomerCode: t.CustomerCode,
		Amount:       t.Amount,
		Items:        t.Items,
		Sequence:     t.Sequence,
		Series:       t.Series,
		Description:  t.Description,
		Date:         t.Date,
	}
	if t.PaymentMethod != nil {
		m := t.PaymentMethod.String()
		dto.PaymentMethod = &m
	}
	if t.ApprovalID != nil {
		id := t.ApprovalID.String()
		dto.ApprovalID = &id
	}
	return dto
}

type orderDTO struct {
	ID            string            `json:"id"`
	Status        string            `json:"status"`
	CustomerCode  string            `json:"customerCode"`
	CustomerName  string            `json:"customerName,omitempty"`
	Items         []domain.LineItem `json:"items"`
	Discount      decimal.Decimal   `json:"discount"`
	TotalAmount   decimal.Decimal   `json:"totalAmount"`
	TransactionID string            `json:"transactionId"`
	PendingChange bool              `json:"pendingChange"`
	Note          string            `json:"note"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
	DeliveredAt   *time.Time        `json:"deliveredAt,omitempty"`
}

func toOrderDTO(o *domain.Order) orderDTO {
	return orderDTO{
		ID:            o.ID.String(),
		Status:        o.Status.String(),
		CustomerCode:  o.CustomerCode,
		Items:         nonNilItems(o.Items),
		Discount:      o.Discount,
		TotalAmount:   o.TotalAmount,
		TransactionID: o.TransactionID.String(),
		PendingChange: o.PendingChange,
		Note:          o.Note,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		DeliveredAt:   o.DeliveredAt,
	}
}

type inventoryDTO struct {
	ID         string                  `json:"id"`
	Name       string                  `json:"name"`
	Status     string                  `json:"status"`
	Items      []domain.CountedProduct `json:"items"`
	TotalItems int                     `json:"totalItems"`
	TotalValue decimal.Decimal         `json:"totalValue"`
	ApprovalID *string                 `json:"approvalId,omitempty"`
	CreatedAt  time.Time               `json:"createdAt"`
	UpdatedAt  time.Time               `json:"updatedAt"`
}

func toInventoryDTO(l *domain.InventoryList) inventoryDTO {
	items := l.Items
	if items == nil {
		items = []domain.CountedProduct{}
	}
	dto := inventoryDTO{
		ID:         l.ID.String(),
		Name:       l.Name,
		Status:     l.Status.String(),
		Items:      items,
		TotalItems: l.TotalItems,
		TotalValue: l.TotalValue,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
	if l.ApprovalID != nil {
		id := l.ApprovalID.String()
		dto.ApprovalID = &id
	}
	return dto
}

type settingsDTO struct {
	Gating                   map[string]bool `json:"gating"`
	InventoryRequireApproval bool            `json:"inventoryRequireApproval"`
}

func toSettingsDTO(s domain.Settings) settingsDTO {
	gating := make(map[string]bool, len(s.Gating))
	for t, on := range s.Gating {
		gating[t.String()] = on
	}
	return settingsDTO{Gating: gating, InventoryRequireApproval: s.InventoryRequireApproval}
}

type syncStateDTO struct {
	Table     string     `json:"table"`
	LastSync  *time.Time `json:"lastSync"`
	LastRunAt *time.Time `json:"lastRunAt,omitempty"`
	LastError string     `json:"lastError,omitempty"`
	RowCount  int64      `json:"rowCount"`
}

type syncResultDTO struct {
	Table     string     `json:"table"`
	After     *time.Time `json:"after"`
	Fetched   int        `json:"fetched"`
	Watermark *time.Time `json:"watermark"`
	Skipped   bool       `json:"skipped"`
}

type dailyReportDTO struct {
	Day          string                     `json:"day"`
	Totals       map[string]decimal.Decimal `json:"totals"`
	Counts       map[string]int             `json:"counts"`
	Net          decimal.Decimal            `json:"net"`
	Transactions []transactionDTO           `json:"transactions"`
}

func toDailyReportDTO(r domain.DailyReport) dailyReportDTO {
	dto := dailyReportDTO{
		Day:          r.Day.Format(dateLayout),
		Totals:       make(map[string]decimal.Decimal, len(r.Totals)),
		Counts:       make(map[string]int, len(r.Counts)),
		Net:          r.Net,
		Transactions: make([]transactionDTO, len(r.Transactions)),
	}
	for t, v := range r.Totals {
		dto.Totals[t.String()] = v
	}
	for t, n := range r.Counts {
		dto.Counts[t.String()] = n
	}
	for i, t := range r.Transactions {
		dto.Transactions[i] = toTransactionDTO(t)
	}
	return dto
}

func nonNilItems(items []domain.LineItem) []domain.LineItem {
	if items == nil {
		return []domain.LineItem{}
	}
	return items
}

// mapSlice converts every element with fn and never returns nil.
func mapSlice[T, D any](in []T, fn func(T) D) []D {
	out := make([]D, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}
