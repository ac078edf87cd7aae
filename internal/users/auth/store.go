// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"time"
)

// ErrTokenUnusable is returned by [ResetTokenRepository.Consume] when the token
// was used or expired between validation and consumption.
var ErrTokenUnusable = errors.New("auth: reset token is no longer usable")

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Missing rows are reported as dberr.ErrNotFound; a duplicate email on Create
// as dberr.ErrConflict.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound or database failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given (normalized) email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound or database failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: dberr.ErrConflict on duplicate email, or persistence failures
	*/
	Create(context context.Context, user *User) error
}

// # Reset Token Data Access

// ResetTokenRepository stores password reset tokens.
type ResetTokenRepository interface {

	/*
		Issue deletes the user's unused tokens and stores token, atomically.

		Parameters:
		  - context: context.Context
		  - token: *PasswordResetToken

		Returns:
		  - error: Persistence failures
	*/
	Issue(context context.Context, token *PasswordResetToken) error

	/*
		FindByToken returns the record for a token string.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - *PasswordResetToken: Hydrated entity
		  - error: dberr.ErrNotFound or database failures
	*/
	FindByToken(context context.Context, token string) (*PasswordResetToken, error)

	/*
		Consume marks the token used and replaces the user's password hash in
		one transaction. Either both writes land or neither does.

		Parameters:
		  - context: context.Context
		  - tokenID: string
		  - userID: string
		  - passwordHash: string

		Returns:
		  - error: ErrTokenUnusable if the token is used or expired, or persistence failures
	*/
	Consume(context context.Context, tokenID, userID, passwordHash string) error
}

// # Login Throttling

// AttemptLimiter counts failed logins per key and locks the key out once a
// threshold is reached. Implementations must be safe for concurrent use.
type AttemptLimiter interface {
	// Blocked returns the remaining lockout, or zero when attempts are allowed.
	Blocked(context context.Context, key string) (time.Duration, error)

	// Fail records a failed attempt for key.
	Fail(context context.Context, key string) error

	// Reset clears the counter after a successful login.
	Reset(context context.Context, key string) error
}
