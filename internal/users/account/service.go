// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/hms/internal/platform/apperr"
	"github.com/taibuivan/hms/internal/platform/dberr"
	"github.com/taibuivan/hms/internal/platform/sec"
	"github.com/taibuivan/hms/internal/users/auth"
)

// # Service Layer

// Service orchestrates self-service changes to the signed-in user's account.
type Service struct {
	accountRepository Repository
	hasher            sec.PasswordHasher
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(accountRepo Repository, hasher sec.PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		hasher:            hasher,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the signed-in user's account.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: not_found when the account is gone
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, storageError(err, "account_service_get_profile")
	}
	return user, nil
}

/*
UpdateProfile sets or clears the display name.

Parameters:
  - context: context.Context
  - userID: string
  - form: ProfileForm

Returns:
  - *auth.User: The updated user profile
  - error: validation, not_found or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, form ProfileForm) (*auth.User, error) {
	name, err := form.Validate()
	if err != nil {
		return nil, err
	}

	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, storageError(err, "account_service_update_lookup")
	}

	user.Name = name
	if err := service.accountRepository.UpdateName(context, user); err != nil {
		return nil, storageError(err, "account_service_update_profile")
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))
	return user, nil
}

// # Security

/*
ChangePassword replaces the password after checking the current one.

Description: A wrong current password is a field error, not an auth error,
so the client keeps its session and re-renders the form.

Returns:
  - error: validation, not_found or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID string, form PasswordForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return storageError(err, "account_service_password_lookup")
	}

	if !service.hasher.Verify(form.CurrentPassword, user.PasswordHash) {
		return apperr.FieldError(FieldCurrentPassword, MsgCurrentPasswordWrong)
	}

	passwordHash, err := service.hasher.Hash(form.Password)
	if err != nil {
		return fmt.Errorf("account_service_hash_password: %w", err)
	}

	if err := service.accountRepository.UpdatePassword(context, userID, passwordHash); err != nil {
		return storageError(err, "account_service_update_password")
	}

	service.logger.Info("user_password_changed", slog.String("user_id", userID))
	return nil
}

/*
DeleteAccount removes the account and everything it owns.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: not_found or execution failures
*/
func (service *Service) DeleteAccount(context context.Context, userID string) error {
	if err := service.accountRepository.Delete(context, userID); err != nil {
		return storageError(err, "account_service_delete")
	}

	service.logger.Warn("user_account_deleted", slog.String("user_id", userID))
	return nil
}

func storageError(err error, tag string) error {
	if dberr.IsNotFound(err) {
		return apperr.NotFound(resourceAccount)
	}
	return fmt.Errorf("%s: %w", tag, err)
}
