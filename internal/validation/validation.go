// Package validation holds the declarative input contracts for every
// endpoint. Validators are pure: they take a raw payload, and return either
// a normalized copy or a list of field-level violations. They never touch
// storage and never panic on malformed input.
package validation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ErrField is a single field-level violation.
type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// Errs is the full set of violations for one payload. It implements error
// so that services can wrap and propagate it unchanged.
type Errs []ErrField

func (e Errs) Error() string {
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// emailRegex validates email syntax
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func required(errs Errs, field, value string) Errs {
	if strings.TrimSpace(value) == "" {
		return append(errs, ErrField{Field: field, Msg: "required"})
	}
	return errs
}

func lenBetween(errs Errs, field, value string, min, max int) Errs {
	if n := len(value); n < min || n > max {
		return append(errs, ErrField{Field: field, Msg: "length must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max)})
	}
	return errs
}

func lenExact(errs Errs, field, value string, n int) Errs {
	if len(value) != n {
		return append(errs, ErrField{Field: field, Msg: "length must be exactly " + strconv.Itoa(n)})
	}
	return errs
}

func email(errs Errs, field, value string) Errs {
	if !emailRegex.MatchString(value) {
		return append(errs, ErrField{Field: field, Msg: "invalid email format"})
	}
	return errs
}

func reference(errs Errs, field, value string) Errs {
	if _, err := uuid.Parse(value); err != nil {
		return append(errs, ErrField{Field: field, Msg: "must be a valid id"})
	}
	return errs
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeUsername lowercases and trims a username.
func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
