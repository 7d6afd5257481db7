package inventory

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

// CreateInput names a new count session.
type CreateInput struct {
	Name string
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	name := strings.TrimSpace(i.Name)
	if name == "" {
		return domain.NewValidationError("name", "required")
	}
	if len(name) > 200 {
		return domain.NewValidationError("name", "too long")
	}
	return nil
}

// CountInput records the counted quantity of a product in a department.
type CountInput struct {
	ProductCode string
	Department  string
	Counted     decimal.Decimal
}

// Validate validates the count input.
func (i CountInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.ProductCode) == "" {
		errs = append(errs, domain.FieldError{Field: "productCode", Message: "required"})
	}
	if strings.TrimSpace(i.Department) == "" {
		errs = append(errs, domain.FieldError{Field: "department", Message: "required"})
	}
	if i.Counted.IsNegative() {
		errs = append(errs, domain.FieldError{Field: "counted", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
