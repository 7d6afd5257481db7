package auth

import (
	"strings"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

const (
	maxUsername     = 64
	maxPassword     = 72 // bcrypt ignores anything longer
	maxRefreshToken = 512
)

type LoginInput struct {
	Username string
	Password string
}

// Validate trims the username in place.
func (i *LoginInput) Validate() error {
	i.Username = strings.TrimSpace(i.Username)

	var errs domain.FieldErrors
	checkLength(&errs, "username", i.Username, maxUsername)
	checkLength(&errs, "password", i.Password, maxPassword)
	return errs.Err()
}

type RefreshInput struct {
	RefreshToken string
}

func (i RefreshInput) Validate() error {
	var errs domain.FieldErrors
	checkLength(&errs, "refresh_token", i.RefreshToken, maxRefreshToken)
	return errs.Err()
}

func checkLength(errs *domain.FieldErrors, field, value string, max int) {
	switch {
	case value == "":
		errs.Add(field, "required")
	case len(value) > max:
		errs.Add(field, "too long")
	}
}
