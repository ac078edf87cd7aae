// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements account access for the HMS: login, registration and
the password-reset flow, plus the HTTP routes that drive them.

# Architecture

  - Entities: [User] and [PasswordResetToken] (this file).
  - Schemas: raw form structs and their validation into typed inputs.
  - Service: Login, Register and the three password-reset operations.
  - Repositories: PostgreSQL for accounts and tokens, Redis for the optional
    failed-login counter.

Expected failures leave the service as an [apperr.AppError] whose Kind tells the
route layer which response shape to use. Only a corrupted stored record
produces an internal error.
*/
package auth

import (
	"errors"
	"time"

	"github.com/taibuivan/hms/internal/platform/validate"
	"github.com/taibuivan/hms/pkg/uuid"
)

// ErrUserRecordInvalid marks a stored account that no longer has the expected shape.
var ErrUserRecordInvalid = errors.New("auth: stored user record is malformed")

// # Domain Entities

// User is a household member who can sign in.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialized.
	Name         *string   `json:"name,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// checkShape re-validates a record loaded from storage.
func (user *User) checkShape() error {
	validator := validate.New().
		Required("passwordHash", user.PasswordHash).
		Email(FieldEmail, user.Email).
		Custom("id", !uuid.Valid(user.ID), "Must be a UUID")

	if err := validator.Err(); err != nil {
		return errors.Join(ErrUserRecordInvalid, err)
	}
	return nil
}

// PasswordResetToken is a single-use capability to set a new password.
type PasswordResetToken struct {
	ID        string
	Token     string
	UserID    string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// IsUsed reports whether the token has already been consumed.
func (token *PasswordResetToken) IsUsed() bool {
	return token.UsedAt != nil
}

// IsExpired reports whether the token's lifetime has passed at now.
func (token *PasswordResetToken) IsExpired(now time.Time) bool {
	return !now.Before(token.ExpiresAt)
}

// # Field Identifiers

// Form field names, shared by the schemas and the error payloads.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldPasswordConfirm = "passwordConfirm"
	FieldName            = "name"
)
