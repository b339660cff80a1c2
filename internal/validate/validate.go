// Package validate holds the client-side shape checks used for early
// feedback before a request is issued. The backend revalidates
// everything; none of this is a security boundary.
package validate

import (
	"errors"
	"net/mail"
	"strings"
	"unicode"
)

const minPasswordLength = 8

var ErrInvalidEmail = errors.New("invalid email address")

// Password checks the same strength rules the backend enforces:
// at least 8 characters with upper, lower, digit, and special.
func Password(password string) error {
	if len(password) < minPasswordLength {
		return errors.New("password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(`!@#$%^&*(),.?":{}|<>`, r):
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return errors.New("password must contain at least one uppercase letter")
	case !hasLower:
		return errors.New("password must contain at least one lowercase letter")
	case !hasDigit:
		return errors.New("password must contain at least one digit")
	case !hasSpecial:
		return errors.New("password must contain at least one special character")
	}

	return nil
}

// Email checks that the address parses as a single RFC 5322 address.
func Email(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}

	return nil
}
