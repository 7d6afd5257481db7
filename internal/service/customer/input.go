package customer

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// SearchInput filters the customer listing.
type SearchInput struct {
	Query string
	Limit int
}

// Validate validates the search input.
func (i SearchInput) Validate() error {
	if i.Limit < 0 || i.Limit > maxLimit {
		return domain.NewValidationError("limit", fmt.Sprintf("must be between 0 and %d", maxLimit))
	}
	return nil
}

// PushInput is a client edit guarded by the version the client last saw.
type PushInput struct {
	Code    string
	Changes domain.CustomerChanges
	Version int64
}

// Validate validates the push input.
func (i PushInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.Code) == "" {
		errs = append(errs, domain.FieldError{Field: "code", Message: "required"})
	}
	if i.Changes.IsEmpty() {
		errs = append(errs, domain.FieldError{Field: "changes", Message: "at least one field is required"})
	}
	if i.Changes.Name != nil && strings.TrimSpace(*i.Changes.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "must not be empty"})
	}
	if i.Changes.Email != nil && *i.Changes.Email != "" {
		if _, err := mail.ParseAddress(*i.Changes.Email); err != nil {
			errs = append(errs, domain.FieldError{Field: "email", Message: "invalid address"})
		}
	}
	if i.Version < 0 {
		errs = append(errs, domain.FieldError{Field: "version", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// MovementsInput filters ERP movements of one customer.
type MovementsInput struct {
	Code  string
	Start *time.Time
	End   *time.Time
	Limit int
}

// Validate validates the movements input.
func (i MovementsInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.Code) == "" {
		errs = append(errs, domain.FieldError{Field: "code", Message: "required"})
	}
	if i.Start != nil && i.End != nil && i.End.Before(*i.Start) {
		errs = append(errs, domain.FieldError{Field: "endDate", Message: "must not be before startDate"})
	}
	if i.Limit < 0 || i.Limit > maxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("must be between 0 and %d", maxLimit)})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
