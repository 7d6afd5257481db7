package cart

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// UpdateInput changes the cart header. Nil fields are left as they are.
type UpdateInput struct {
	CustomerCode *string
	Discount     *decimal.Decimal
	OrderNote    *string
}

// Validate validates the update input.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError
	if i.CustomerCode != nil && len(*i.CustomerCode) > 50 {
		errs = append(errs, domain.FieldError{Field: "customerCode", Message: "too long"})
	}
	if i.Discount != nil && (i.Discount.IsNegative() || i.Discount.GreaterThan(hundred)) {
		errs = append(errs, domain.FieldError{Field: "discount", Message: "must be between 0 and 100"})
	}
	if i.OrderNote != nil && len(*i.OrderNote) > 500 {
		errs = append(errs, domain.FieldError{Field: "orderNote", Message: "too long"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ItemInput adds or replaces a line. A nil Price takes the catalog price.
type ItemInput struct {
	ProductCode string
	Quantity    decimal.Decimal
	Price       *decimal.Decimal
	Note        string
}

// Validate validates the item input.
func (i ItemInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.ProductCode) == "" {
		errs = append(errs, domain.FieldError{Field: "productCode", Message: "required"})
	}
	if !i.Quantity.IsPositive() {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "must be positive"})
	}
	if i.Price != nil && i.Price.IsNegative() {
		errs = append(errs, domain.FieldError{Field: "price", Message: "must not be negative"})
	}
	if len(i.Note) > 200 {
		errs = append(errs, domain.FieldError{Field: "note", Message: "too long"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
