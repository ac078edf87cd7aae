// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for the HMS API.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing a discriminating Kind and a user-friendly message.
  - Fields: Per-field validation messages ([FieldErrors]) for form re-rendering.
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Expected failures (validation, bad credentials, unusable tokens) leave the service
layer as an [AppError]. Anything else is wrapped with fmt.Errorf and rendered as 500.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// # Discriminators

// Kind tags an [AppError] with the failure family it belongs to.
//
// The route layer switches on Kind to pick the response shape, the same way a
// client would switch on a tagged union.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindAuth        Kind = "auth"
	KindToken       Kind = "token"
	KindRateLimited Kind = "rate_limited"
	KindNotFound    Kind = "not_found"
	KindConflict    Kind = "conflict"
	KindForbidden   Kind = "forbidden"
	KindRedirect    Kind = "redirect"
	KindInternal    Kind = "internal"
)

// FieldErrors maps a form field name to its ordered list of messages.
//
// It is built fresh for every validation attempt and never persisted.
type FieldErrors map[string][]string

// Add appends message to the field's list.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Has reports whether the field already carries at least one message.
func (fe FieldErrors) Has(field string) bool {
	return len(fe[field]) > 0
}

// First returns the first message recorded for field, or "".
func (fe FieldErrors) First(field string) string {
	if messages := fe[field]; len(messages) > 0 {
		return messages[0]
	}
	return ""
}

// AppError is the canonical error type for the HMS API.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Kind is the failure family (validation, auth, token, ...).
	Kind Kind `json:"type"`
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "CONFLICT").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"message"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Fields holds per-field validation errors for validation failures.
	Fields FieldErrors `json:"errors,omitempty"`
	// Location is the redirect target for KindRedirect errors.
	Location string `json:"-"`
	// RetryAfter is the lockout remaining, in seconds, for KindRateLimited errors.
	RetryAfter int `json:"-"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// Validation creates a 400 [AppError] carrying per-field messages.
func Validation(fields FieldErrors) *AppError {
	return &AppError{
		Kind:       KindValidation,
		Code:       "VALIDATION_ERROR",
		Message:    "Validation failed",
		HTTPStatus: http.StatusBadRequest,
		Fields:     fields,
	}
}

// FieldError is a shortcut for a validation failure on a single field.
//
// Example:
//
//	apperr.FieldError("email", "A user already exists with this email")
func FieldError(field, message string) *AppError {
	return Validation(FieldErrors{field: {message}})
}

// Auth creates a 401 [AppError] for failed credential checks.
func Auth(msg string) *AppError {
	return &AppError{
		Kind:       KindAuth,
		Code:       "UNAUTHORIZED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Token creates a 400 [AppError] for an unusable password reset token.
func Token(msg string) *AppError {
	return &AppError{
		Kind:       KindToken,
		Code:       "INVALID_TOKEN",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Item") // Returns "Item not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Kind:       KindNotFound,
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{
		Kind:       KindForbidden,
		Code:       "FORBIDDEN",
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// Conflict creates a 409 [AppError] for duplicate or unique-constraint violations.
func Conflict(msg string) *AppError {
	return &AppError{
		Kind:       KindConflict,
		Code:       "CONFLICT",
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Kind:       KindRateLimited,
		Code:       "RATE_LIMITED",
		Message:    fmt.Sprintf("Too many attempts. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
		RetryAfter: retryAfterSeconds,
	}
}

// # Control Flow

// Redirect creates a 303 [AppError] instructing the response layer to send the
// client elsewhere (typically the login page).
//
// It is returned, not panicked: handlers pass it to respond.Error unchanged.
func Redirect(location string) *AppError {
	return &AppError{
		Kind:       KindRedirect,
		Code:       "REDIRECT",
		Message:    "Redirecting",
		HTTPStatus: http.StatusSeeOther,
		Location:   location,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Kind:       KindInternal,
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsKind reports whether err (or any error in its chain) is an [*AppError] of kind.
func IsKind(err error, kind Kind) bool {
	ae := As(err)
	return ae != nil && ae.Kind == kind
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
