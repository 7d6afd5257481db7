package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// AddInput describes a ledger entry written without an approval.
type AddInput struct {
	Type          domain.TransactionType
	CustomerCode  string
	Amount        decimal.Decimal
	Items         []domain.LineItem
	Description   string
	PaymentMethod *domain.PaymentMethod
}

// Validate validates the add input.
func (i AddInput) Validate() error {
	var errs []domain.FieldError
	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "unknown transaction type"})
	}
	if i.CustomerCode == "" {
		errs = append(errs, domain.FieldError{Field: "customerCode", Message: "required"})
	}
	if !i.Amount.IsPositive() {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be positive"})
	}
	if i.PaymentMethod != nil && !i.PaymentMethod.IsValid() {
		errs = append(errs, domain.FieldError{Field: "paymentMethod", Message: "unknown payment method"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// PaymentInput is a payment or expense request.
type PaymentInput struct {
	Kind         domain.TransactionType
	CustomerCode string
	Amount       decimal.Decimal
	Method       domain.PaymentMethod
	Description  string
}

// Validate validates the payment input.
func (i PaymentInput) Validate() error {
	var errs []domain.FieldError
	if i.Kind != domain.TransactionTypePayment && i.Kind != domain.TransactionTypeExpense {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "must be payment or expense"})
	}
	if i.CustomerCode == "" {
		errs = append(errs, domain.FieldError{Field: "customerCode", Message: "required"})
	}
	if !i.Amount.IsPositive() {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be positive"})
	}
	if !i.Method.IsValid() {
		errs = append(errs, domain.FieldError{Field: "method", Message: "unknown payment method"})
	}
	if len(i.Description) > 250 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ReturnInput is a return of previously sold goods.
type ReturnInput struct {
	CustomerCode string
	Items        []domain.LineItem
	Discount     decimal.Decimal
	Note         string
}

// BalanceInput selects a customer and an optional date window. From is
// inclusive, To exclusive.
type BalanceInput struct {
	CustomerCode string
	From         *time.Time
	To           *time.Time
}

// Validate validates the balance input.
func (i BalanceInput) Validate() error {
	if i.CustomerCode == "" {
		return domain.NewValidationError("customerCode", "required")
	}
	if i.From != nil && i.To != nil && !i.From.Before(*i.To) {
		return domain.NewValidationError("to", "must be after from")
	}
	return nil
}

// ListInput filters the ledger listing.
type ListInput struct {
	CustomerCode *string
	Type         *domain.TransactionType
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// Validate validates the list input.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.Type != nil && !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "unknown transaction type"})
	}
	if i.From != nil && i.To != nil && !i.From.Before(*i.To) {
		errs = append(errs, domain.FieldError{Field: "to", Message: "must be after from"})
	}
	if i.Limit < 0 || i.Limit > maxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("must be between 0 and %d", maxLimit)})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
