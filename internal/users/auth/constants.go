// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # User-facing Messages

const (
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Email is invalid"
	MsgPasswordRequired = "Password is required"
	MsgPasswordTooShort = "Password must be at least 8 characters"
	MsgPasswordTooLong  = "Password must be at most 72 bytes"
	MsgConfirmRequired  = "Please confirm your password"
	MsgPasswordMismatch = "Passwords do not match"
	MsgNameTooLong      = "Name must be at most 100 characters"

	// MsgInvalidCredentials is shared by the unknown-email and wrong-password cases.
	MsgInvalidCredentials = "Invalid email or password"

	// MsgEmailTaken is reported on the email field when registration hits an existing account.
	MsgEmailTaken = "A user already exists with this email"
)

// Reset token messages. The read path distinguishes the three states; the
// mutation path reports only [MsgTokenUnusable].
const (
	MsgTokenInvalid  = "Invalid password reset link"
	MsgTokenUsed     = "This reset link has already been used"
	MsgTokenExpired  = "This reset link has expired"
	MsgTokenUnusable = "This password reset link is invalid or has expired"
)

// # Limits

const (
	// MaxNameLength bounds the optional display name.
	MaxNameLength = 100

	// ResetEmailSubject is the subject line of the reset link e-mail.
	ResetEmailSubject = "Reset your HMS password"
)
