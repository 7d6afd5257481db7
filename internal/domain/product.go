package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the local catalog row. Name, unit and price are mirrored from
// the ERP price list; Stock is owned by the back office and changed only by
// workflow fan-out.
type Product struct {
	Code        string
	Name        string
	Unit        string
	Price       decimal.Decimal
	PriceListNo int
	Stock       decimal.Decimal
	LastupDate  time.Time
	LastSync    *time.Time
	UpdatedAt   time.Time
}

// PriceListEntry is one ERP sales price list row.
type PriceListEntry struct {
	ProductCode string
	ProductName string
	Unit        string
	ListNo      int
	Price       decimal.Decimal
	LastupDate  time.Time
}

// ProductFilter narrows a catalog listing.
type ProductFilter struct {
	Search *string
	Limit  int
	// Cursor is the last product code of the previous page.
	Cursor string
}
