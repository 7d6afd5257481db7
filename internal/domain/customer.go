package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a cari account. It is sourced from the ERP and mirrored
// locally; Version guards local edits pushed back by clients.
type Customer struct {
	Code       string
	Name       string
	Name2      string
	TaxOffice  string
	TaxNumber  string
	Phone      string
	Email      string
	City       string
	District   string
	LastupDate time.Time
	Version    int64
	LastSync   *time.Time
	UpdatedAt  time.Time
}

// DisplayName returns the full title, joining both ERP title fields.
func (c Customer) DisplayName() string {
	if c.Name2 == "" {
		return c.Name
	}
	return c.Name + " " + c.Name2
}

// CustomerChanges is a partial update pushed from a client device.
type CustomerChanges struct {
	Name      *string
	Name2     *string
	TaxOffice *string
	TaxNumber *string
	Phone     *string
	Email     *string
	City      *string
	District  *string
}

// IsEmpty reports whether no field is set.
func (c CustomerChanges) IsEmpty() bool {
	return c.Name == nil && c.Name2 == nil && c.TaxOffice == nil && c.TaxNumber == nil &&
		c.Phone == nil && c.Email == nil && c.City == nil && c.District == nil
}

// Apply copies the set fields onto cust.
func (c CustomerChanges) Apply(cust *Customer) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&cust.Name, c.Name)
	set(&cust.Name2, c.Name2)
	set(&cust.TaxOffice, c.TaxOffice)
	set(&cust.TaxNumber, c.TaxNumber)
	set(&cust.Phone, c.Phone)
	set(&cust.Email, c.Email)
	set(&cust.City, c.City)
	set(&cust.District, c.District)
}

// CustomerName is the lightweight (code, title) projection.
type CustomerName struct {
	Code string
	Name string
}

// CustomerAddress is one address row of a cari account.
type CustomerAddress struct {
	CustomerCode string
	AddressNo    int
	Street       string
	Neighborhood string
	District     string
	City         string
	Phone        string
	LastupDate   time.Time
}

// CustomerMovement is one ERP ledger movement (cari hareket).
type CustomerMovement struct {
	CustomerCode   string
	Date           time.Time
	DocumentSeries string
	DocumentNo     int
	// Direction is the ERP cha_tip: 0 debit, 1 credit.
	Direction   int
	Kind        int
	Amount      decimal.Decimal
	Description string
	LastupDate  time.Time
}

// ERPBalance is the ERP-side balance of a cari account.
type ERPBalance struct {
	CustomerCode string
	Debit        decimal.Decimal
	Credit       decimal.Decimal
	Balance      decimal.Decimal
}
