// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserPasswordResetTokenTable represents the 'users.passwordresettoken' table
type UserPasswordResetTokenTable struct {
	Table     string
	ID        string
	Token     string
	UserID    string
	ExpiresAt string
	UsedAt    string
	CreatedAt string
}

// UserPasswordResetToken is the schema definition for users.passwordresettoken
var UserPasswordResetToken = UserPasswordResetTokenTable{
	Table:     "users.passwordresettoken",
	ID:        "id",
	Token:     "token",
	UserID:    "userid",
	ExpiresAt: "expiresat",
	UsedAt:    "usedat",
	CreatedAt: "createdat",
}

func (t UserPasswordResetTokenTable) Columns() []string {
	return []string{t.ID, t.Token, t.UserID, t.ExpiresAt, t.UsedAt, t.CreatedAt}
}
