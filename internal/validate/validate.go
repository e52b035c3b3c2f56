// Package validate holds the form validation rules for the auth screens.
// Validation is purely local: it never touches the network and never fails,
// it only reports per-field messages keyed the way the UI displays them.
package validate

import (
	"regexp"
	"unicode/utf8"
)

// FormKind identifies which auth form is being validated. The kind is
// folded into the field error keys so both forms can show errors at once.
type FormKind string

const (
	FormLogin    FormKind = "login"
	FormRegister FormKind = "register"
)

const (
	// MinPasswordLen matches the mock auth API, which accepts anything
	// four characters or longer.
	MinPasswordLen = 4

	msgEmailRequired    = "Email is required"
	msgEmailInvalid     = "Please enter a valid email"
	msgPasswordRequired = "Password is required"
	msgPasswordTooShort = "Password must be at least 4 characters"
)

// emailRe accepts local@domain.tld shapes: no whitespace or extra @,
// and the domain must contain a dot.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Result is the outcome of a validation pass. FieldErrors maps field
// identifiers ("{kind}EmailError", "{kind}PasswordError") to messages.
type Result struct {
	OK          bool
	FieldErrors map[string]string
}

// EmailKey returns the field error key for the email input of a form.
func EmailKey(kind FormKind) string { return string(kind) + "EmailError" }

// PasswordKey returns the field error key for the password input of a form.
func PasswordKey(kind FormKind) string { return string(kind) + "PasswordError" }

// Form checks email and password for the given form. Both rules are
// evaluated independently so a single pass can report both errors.
func Form(kind FormKind, email, password string) Result {
	errs := make(map[string]string)

	switch {
	case email == "":
		errs[EmailKey(kind)] = msgEmailRequired
	case !emailRe.MatchString(email):
		errs[EmailKey(kind)] = msgEmailInvalid
	}

	switch {
	case password == "":
		errs[PasswordKey(kind)] = msgPasswordRequired
	case utf8.RuneCountInString(password) < MinPasswordLen:
		errs[PasswordKey(kind)] = msgPasswordTooShort
	}

	return Result{OK: len(errs) == 0, FieldErrors: errs}
}
