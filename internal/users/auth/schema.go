// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"strings"

	"github.com/taibuivan/hms/internal/platform/constants"
	"github.com/taibuivan/hms/internal/platform/validate"
)

// # Raw Forms
//
// Forms hold untrusted submissions exactly as decoded. Each Validate method
// returns the typed input or a validation error carrying FieldErrors.

// LoginForm is the body of POST /login.
type LoginForm struct {
	Email      string `form:"email" json:"email"`
	Password   string `form:"password" json:"password"`
	RedirectTo string `form:"redirectTo" json:"redirectTo"`
}

// LoginInput is a validated [LoginForm].
type LoginInput struct {
	Email    string
	Password string
}

// Validate applies the email and password schemas.
func (form LoginForm) Validate() (LoginInput, error) {
	email := NormalizeEmail(form.Email)

	validator := validate.New()
	emailSchema(validator, email)
	passwordSchema(validator, form.Password)

	if err := validator.Err(); err != nil {
		return LoginInput{}, err
	}
	return LoginInput{Email: email, Password: form.Password}, nil
}

// RegisterForm is the body of POST /register.
type RegisterForm struct {
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	PasswordConfirm string `form:"passwordConfirm" json:"passwordConfirm"`
	Name            string `form:"name" json:"name"`
}

// RegisterInput is a validated [RegisterForm].
type RegisterInput struct {
	Email    string
	Password string
	Name     *string
}

// Validate applies the email, password and confirmation schemas.
func (form RegisterForm) Validate() (RegisterInput, error) {
	email := NormalizeEmail(form.Email)
	name := strings.TrimSpace(form.Name)

	validator := validate.New()
	emailSchema(validator, email)
	passwordSchema(validator, form.Password)
	passwordConfirmSchema(validator, form.PasswordConfirm, form.Password)
	validator.MaxLen(FieldName, name, MaxNameLength, MsgNameTooLong)

	if err := validator.Err(); err != nil {
		return RegisterInput{}, err
	}

	input := RegisterInput{Email: email, Password: form.Password}
	if name != "" {
		input.Name = &name
	}
	return input, nil
}

// ResetRequestForm is the body of POST /password-reset.
type ResetRequestForm struct {
	Email string `form:"email" json:"email"`
}

// Validate applies the email schema and returns the normalized address.
func (form ResetRequestForm) Validate() (string, error) {
	email := NormalizeEmail(form.Email)

	validator := validate.New()
	emailSchema(validator, email)

	if err := validator.Err(); err != nil {
		return "", err
	}
	return email, nil
}

// ResetPasswordForm is the body of POST /password-reset/{token}.
type ResetPasswordForm struct {
	Password        string `form:"password" json:"password"`
	PasswordConfirm string `form:"passwordConfirm" json:"passwordConfirm"`
}

// Validate applies the password and confirmation schemas.
func (form ResetPasswordForm) Validate() (string, error) {
	validator := validate.New()
	passwordSchema(validator, form.Password)
	passwordConfirmSchema(validator, form.PasswordConfirm, form.Password)

	if err := validator.Err(); err != nil {
		return "", err
	}
	return form.Password, nil
}

// # Field Schemas

// emailSchema: required, then format.
func emailSchema(validator *validate.Validator, email string) {
	validator.
		Required(FieldEmail, email, MsgEmailRequired).
		Email(FieldEmail, email, MsgEmailInvalid)
}

// passwordSchema: required, then minimum length, then the bcrypt byte limit.
func passwordSchema(validator *validate.Validator, password string) {
	validator.
		Required(FieldPassword, password, MsgPasswordRequired).
		MinLen(FieldPassword, password, constants.MinPasswordLength, MsgPasswordTooShort).
		Custom(FieldPassword, len(password) > constants.MaxPasswordBytes, MsgPasswordTooLong)
}

// passwordConfirmSchema: required, then equal to the password. The mismatch
// is reported on the confirmation field.
func passwordConfirmSchema(validator *validate.Validator, confirm, password string) {
	validator.
		Required(FieldPasswordConfirm, confirm, MsgConfirmRequired).
		Equal(FieldPasswordConfirm, confirm, password, MsgPasswordMismatch)
}

// NormalizeEmail trims and lower-cases an address for lookup and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
