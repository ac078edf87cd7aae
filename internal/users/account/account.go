// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account lets a signed-in user manage their own account: view and
rename the profile, change the password and delete the account.

# Architecture

  - Entities: This package reuses [auth.User]; it owns no tables.
  - Schemas: [ProfileForm] and [PasswordForm] with their validation.
  - Deletion: Removing the account cascades to reset tokens and all
    inventory rows; the session cookie is cleared in the same response.
*/
package account

import (
	"context"

	"github.com/taibuivan/hms/internal/users/auth"
)

// # Repository Contracts

// Repository defines the persistence contract for self-service account changes.
type Repository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *auth.User: Hydrated entity
		  - error: dberr.ErrNotFound or database failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	// UpdateName sets or clears the display name and refreshes the timestamps on user.
	UpdateName(context context.Context, user *auth.User) error

	// UpdatePassword replaces the stored hash.
	UpdatePassword(context context.Context, id, passwordHash string) error

	// Delete hard-deletes the account. Dependent rows go by cascade.
	Delete(context context.Context, id string) error
}

// # Field Identifiers & Messages

const (
	FieldCurrentPassword = "currentPassword"

	MsgCurrentPasswordRequired = "Current password is required"
	MsgCurrentPasswordWrong    = "Current password is incorrect"
	MsgPasswordUnchanged       = "New password must differ from the current one"
)

const resourceAccount = "Account"
