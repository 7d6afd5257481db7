package user

import (
	"strings"
	"unicode"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

const minPasswordLen = 8

// CreateInput holds parameters for creating a back-office user.
type CreateInput struct {
	Username    string
	Name        string
	Password    string
	Role        domain.UserRole
	Series      string
	Permissions []domain.PermissionGrant
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, validateUsername(i.Username)...)

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > 255 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}

	errs = append(errs, validatePassword("password", i.Password)...)

	if !i.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "must be one of admin, manager, sales, warehouse"})
	}

	if len(i.Series) > 8 {
		errs = append(errs, domain.FieldError{Field: "series", Message: "too long"})
	}

	errs = append(errs, validateGrants(i.Permissions)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ChangePasswordInput holds parameters for the password change operation.
type ChangePasswordInput struct {
	Current string
	New     string
}

// Validate validates the change password input.
func (i ChangePasswordInput) Validate() error {
	var errs []domain.FieldError

	if i.Current == "" {
		errs = append(errs, domain.FieldError{Field: "current_password", Message: "required"})
	}
	errs = append(errs, validatePassword("new_password", i.New)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// PromoteInput names the user to promote. When the user does not exist and
// Password is set, an admin is created instead.
type PromoteInput struct {
	Username string
	Name     string
	Password string
}

func validateUsername(username string) []domain.FieldError {
	switch {
	case username == "":
		return []domain.FieldError{{Field: "username", Message: "required"}}
	case len(username) > 100:
		return []domain.FieldError{{Field: "username", Message: "too long"}}
	case strings.IndexFunc(username, unicode.IsSpace) >= 0:
		return []domain.FieldError{{Field: "username", Message: "must not contain spaces"}}
	}
	return nil
}

func validatePassword(field, password string) []domain.FieldError {
	switch {
	case password == "":
		return []domain.FieldError{{Field: field, Message: "required"}}
	case len(password) < minPasswordLen:
		return []domain.FieldError{{Field: field, Message: "must be at least 8 characters"}}
	case len(password) > 72:
		return []domain.FieldError{{Field: field, Message: "too long"}}
	}
	return nil
}

func validateGrants(grants []domain.PermissionGrant) []domain.FieldError {
	var errs []domain.FieldError
	for _, g := range grants {
		if !g.ID.IsValid() {
			errs = append(errs, domain.FieldError{Field: "permissions", Message: "invalid permission " + g.ID.String()})
		}
	}
	return errs
}
