// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"strings"

	"github.com/taibuivan/hms/internal/platform/constants"
	"github.com/taibuivan/hms/internal/platform/validate"
	"github.com/taibuivan/hms/internal/users/auth"
)

// ProfileForm is the body of PATCH /api/v1/me. An empty name clears it.
type ProfileForm struct {
	Name string `form:"name" json:"name"`
}

// Validate returns the trimmed name, or nil when it was left empty.
func (form ProfileForm) Validate() (*string, error) {
	name := strings.TrimSpace(form.Name)

	validator := validate.New()
	validator.MaxLen(auth.FieldName, name, auth.MaxNameLength, auth.MsgNameTooLong)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if name == "" {
		return nil, nil
	}
	return &name, nil
}

// PasswordForm is the body of POST /api/v1/me/password.
type PasswordForm struct {
	CurrentPassword string `form:"currentPassword" json:"currentPassword"`
	Password        string `form:"password" json:"password"`
	PasswordConfirm string `form:"passwordConfirm" json:"passwordConfirm"`
}

// Validate applies the registration password rules to the new password.
func (form PasswordForm) Validate() error {
	validator := validate.New()
	validator.
		Required(FieldCurrentPassword, form.CurrentPassword, MsgCurrentPasswordRequired).
		Required(auth.FieldPassword, form.Password, auth.MsgPasswordRequired).
		MinLen(auth.FieldPassword, form.Password, constants.MinPasswordLength, auth.MsgPasswordTooShort).
		Custom(auth.FieldPassword, len(form.Password) > constants.MaxPasswordBytes, auth.MsgPasswordTooLong).
		Custom(auth.FieldPassword, form.Password == form.CurrentPassword, MsgPasswordUnchanged).
		Required(auth.FieldPasswordConfirm, form.PasswordConfirm, auth.MsgConfirmRequired).
		Equal(auth.FieldPasswordConfirm, form.PasswordConfirm, form.Password, auth.MsgPasswordMismatch)

	return validator.Err()
}
