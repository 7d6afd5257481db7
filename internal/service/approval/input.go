package approval

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

// SubmitInput describes a change request.
type SubmitInput struct {
	Type         domain.ApprovalType
	Description  string
	Amount       *decimal.Decimal
	CustomerCode *string
	// OldData and NewData are encoded with domain.EncodePayload.
	OldData any
	NewData any
	// OnCreate runs in the submitting transaction right after the approval
	// row exists and before any auto-approval fan-out.
	OnCreate func(ctx context.Context, a *domain.Approval) error
}

// Validate validates the submit input.
func (i SubmitInput) Validate() error {
	var errs []domain.FieldError

	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: fmt.Sprintf("unknown approval type %q", i.Type)})
	}
	if i.NewData == nil {
		errs = append(errs, domain.FieldError{Field: "newData", Message: "required"})
	}
	if len(i.Description) > 500 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long"})
	}
	if i.Amount != nil && i.Amount.IsNegative() {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListInput filters the approvals listing.
type ListInput struct {
	Status *domain.ApprovalStatus
	Type   *domain.ApprovalType
	Limit  int
	Offset int
}

const (
	defaultLimit = 50
	maxLimit     = 200
)

// Validate validates the list input.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}
	if i.Type != nil && !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "unknown type"})
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
