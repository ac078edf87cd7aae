// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Short-circuiting
//
// Rules are evaluated in call order. The first rule that fails for a field
// records that field's message; every later rule for the same field is skipped.
// A field therefore never carries more than one message from a single pass.
//
// # Messages
//
// Each rule has a default message. Pass a trailing string to override it:
//
//	v.MinLen("password", input.Password, 8, "Password is too short")
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/taibuivan/hms/internal/platform/apperr"
)

var (
	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.FieldError("form", "Invalid request payload")

	// dateLayouts are accepted by [ParseDate], most specific first.
	dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs apperr.FieldErrors
	now  func() time.Time
}

// New returns an empty [Validator].
func New() *Validator {
	return &Validator{}
}

// WithClock overrides the clock used by [Validator.Future]. Tests only.
func (v *Validator) WithClock(now func() time.Time) *Validator {
	v.now = now
	return v
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string, msg ...string) *Validator {
	if v.skip(field) {
		return v
	}
	if strings.TrimSpace(value) == "" {
		v.add(field, pick(msg, "This field is required"))
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int, msg ...string) *Validator {
	if v.skip(field) {
		return v
	}
	if utf8.RuneCountInString(value) > max {
		v.add(field, pick(msg, fmt.Sprintf("Must be at most %d characters", max)))
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int, msg ...string) *Validator {
	if v.skip(field) {
		return v
	}
	if utf8.RuneCountInString(value) < min {
		v.add(field, pick(msg, fmt.Sprintf("Must be at least %d characters", min)))
	}
	return v
}

// Integer fails if the value does not parse as a base-10 integer.
// Empty values pass; combine with [Validator.Required] when mandatory.
func (v *Validator) Integer(field, value string, msg ...string) *Validator {
	if v.skip(field) || value == "" {
		return v
	}
	if _, err := strconv.Atoi(strings.TrimSpace(value)); err != nil {
		v.add(field, pick(msg, "Must be a whole number"))
	}
	return v
}

// Min fails if value is below min.
func (v *Validator) Min(field string, value, min int, msg ...string) *Validator {
	if v.skip(field) {
		return v
	}
	if value < min {
		v.add(field, pick(msg, fmt.Sprintf("Must be at least %d", min)))
	}
	return v
}

// Max fails if value is above max.
func (v *Validator) Max(field string, value, max int, msg ...string) *Validator {
	if v.skip(field) {
		return v
	}
	if value > max {
		v.add(field, pick(msg, fmt.Sprintf("Must be at most %d", max)))
	}
	return v
}

// IntRange fails if the value is outside the [min, max] range (inclusive).
func (v *Validator) IntRange(field string, value, min, max int, msg ...string) *Validator {
	if v.skip(field) {
		return v
	}
	if value < min || value > max {
		v.add(field, pick(msg, fmt.Sprintf("Must be between %d and %d", min, max)))
	}
	return v
}

// Pattern fails if the value does not match re.
func (v *Validator) Pattern(field, value string, re *regexp.Regexp, msg ...string) *Validator {
	if v.skip(field) {
		return v
	}
	if !re.MatchString(value) {
		v.add(field, pick(msg, "Has an invalid format"))
	}
	return v
}

// Email fails if the value is not a bare RFC 5322 address.
//
// Display-name forms such as "Tai <tai@example.com>" are rejected.
func (v *Validator) Email(field, value string, msg ...string) *Validator {
	if v.skip(field) {
		return v
	}
	address, err := mail.ParseAddress(value)
	if err != nil || address.Address != strings.TrimSpace(value) || !hasDottedDomain(address.Address) {
		v.add(field, pick(msg, "Invalid email address"))
	}
	return v
}

// Equal fails if value differs from other. The error is attached to field,
// which is the confirming field (e.g. "passwordConfirm"), never the original.
func (v *Validator) Equal(field, value, other string, msg ...string) *Validator {
	if v.skip(field) {
		return v
	}
	if value != other {
		v.add(field, pick(msg, "Values do not match"))
	}
	return v
}

// Future fails if value is not a parseable date strictly after now.
// Empty values pass; combine with [Validator.Required] when mandatory.
func (v *Validator) Future(field, value string, msg ...string) *Validator {
	if v.skip(field) || strings.TrimSpace(value) == "" {
		return v
	}
	parsed, err := ParseDate(value)
	if err != nil {
		v.add(field, "Must be a valid date")
		return v
	}
	if !parsed.After(v.clock()) {
		v.add(field, pick(msg, "Must be a date in the future"))
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed []string, msg ...string) *Validator {
	if v.skip(field) {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, pick(msg, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", "))))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("quantity", next < 0, "Not enough stock")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if v.skip(field) {
		return v
	}
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a validation [apperr.AppError] if any rules failed,
// or nil if all rules passed.
//
// Call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.Validation(v.errs)
}

// Errors returns the collected field errors (nil when none failed).
func (v *Validator) Errors() apperr.FieldErrors {
	return v.errs
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// ParseDate accepts RFC 3339 timestamps, HTML datetime-local values and plain dates.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("validate: unrecognised date %q", value)
}

// skip reports whether field already failed an earlier rule.
func (v *Validator) skip(field string) bool {
	return v.errs.Has(field)
}

func (v *Validator) add(field, message string) {
	if v.errs == nil {
		v.errs = apperr.FieldErrors{}
	}
	v.errs.Add(field, message)
}

func (v *Validator) clock() time.Time {
	if v.now != nil {
		return v.now()
	}
	return time.Now()
}

func hasDottedDomain(address string) bool {
	at := strings.LastIndex(address, "@")
	return at >= 0 && strings.Contains(address[at+1:], ".")
}

func pick(override []string, fallback string) string {
	if len(override) > 0 && override[0] != "" {
		return override[0]
	}
	return fallback
}
