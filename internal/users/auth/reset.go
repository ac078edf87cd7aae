// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/hms/internal/platform/apperr"
	"github.com/taibuivan/hms/internal/platform/constants"
	"github.com/taibuivan/hms/internal/platform/ctxutil"
	"github.com/taibuivan/hms/internal/platform/dberr"
	"github.com/taibuivan/hms/internal/platform/mail"
	"github.com/taibuivan/hms/internal/platform/sec"
	"github.com/taibuivan/hms/pkg/uuid"
)

// ResetRequestResult is returned for every well-formed reset request.
//
// ResetURL is nil when no account matches, so callers can show the same
// message either way.
type ResetRequestResult struct {
	ResetURL *string
}

// TokenInfo is what the reset page may show about a valid token.
type TokenInfo struct {
	Email string `json:"email"`
}

/*
RequestPasswordReset issues a reset link for the account behind an email.

Description: Unknown addresses succeed with a nil URL. For a known account,
older unused tokens are replaced by a fresh 64-hex token valid for one hour.
When a mailer is configured the link is also e-mailed, built from the
mailer's configured origin rather than baseURL; delivery failures are logged
and do not fail the request.

Parameters:
  - context: context.Context
  - form: ResetRequestForm
  - baseURL: string (scheme and host the link should point at)

Returns:
  - *ResetRequestResult: Link (or nil link)
  - error: validation or internal failures
*/
func (service *Service) RequestPasswordReset(context context.Context, form ResetRequestForm, baseURL string) (*ResetRequestResult, error) {
	email, err := form.Validate()
	if err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		if dberr.IsNotFound(err) {
			return &ResetRequestResult{}, nil
		}
		return nil, fmt.Errorf("auth_service_reset_lookup_failed: %w", err)
	}

	secret, err := sec.GenerateSecureToken(constants.ResetTokenBytes)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_reset_token_failed: %w", err))
	}

	now := service.now().UTC()
	token := &PasswordResetToken{
		ID:        uuid.New(),
		Token:     secret,
		UserID:    user.ID,
		ExpiresAt: now.Add(constants.ResetTokenTTL),
		CreatedAt: now,
	}

	if err := service.resetTokenRepository.Issue(context, token); err != nil {
		return nil, fmt.Errorf("auth_service_reset_issue_failed: %w", err)
	}

	resetURL := resetLink(baseURL, secret)
	service.sendResetLink(context, user.Email, secret)

	return &ResetRequestResult{ResetURL: &resetURL}, nil
}

func resetLink(baseURL, secret string) string {
	return strings.TrimRight(baseURL, "/") + "/password-reset/" + secret
}

func (service *Service) sendResetLink(context context.Context, to, secret string) {
	if service.mailer == nil {
		return
	}
	if service.mailBaseURL == "" {
		ctxutil.GetLogger(context).WarnContext(context, "reset_link_mail_skipped_no_base_url")
		return
	}
	resetURL := resetLink(service.mailBaseURL, secret)

	err := service.mailer.Send(context, mail.Message{
		To:      to,
		Subject: ResetEmailSubject,
		Text: "Someone asked to reset the password of your HMS account.\n\n" +
			"Open this link within one hour to choose a new password:\n" + resetURL + "\n\n" +
			"If it was not you, ignore this message.",
	})
	if err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "reset_link_mail_failed", slog.Any("error", err))
	}
}

/*
ValidateToken reports whether a reset link can still be used.

Description: Read path used to render the reset page, so it tells invalid,
already-used and expired links apart.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *TokenInfo: Owner's email
  - error: token-kind AppError or internal failures
*/
func (service *Service) ValidateToken(context context.Context, token string) (*TokenInfo, error) {
	_, user, err := service.lookupToken(context, token)
	if err != nil {
		return nil, err
	}
	return &TokenInfo{Email: user.Email}, nil
}

/*
ResetPassword sets a new password through a reset token.

Description: The token is checked again because it may have been used or
expired since the page loaded; any such failure collapses to one generic
message. The hash update and token consumption commit together.

Parameters:
  - context: context.Context
  - token: string
  - form: ResetPasswordForm

Returns:
  - error: validation, token, or internal failures
*/
func (service *Service) ResetPassword(context context.Context, token string, form ResetPasswordForm) error {
	password, err := form.Validate()
	if err != nil {
		return err
	}

	record, _, err := service.lookupToken(context, token)
	if err != nil {
		if apperr.IsKind(err, apperr.KindToken) {
			return apperr.Token(MsgTokenUnusable)
		}
		return err
	}

	hashedPassword, err := service.hasher.Hash(password)
	if err != nil {
		return apperr.Internal(fmt.Errorf("auth_service_hash_failed: %w", err))
	}

	if err := service.resetTokenRepository.Consume(context, record.ID, record.UserID, hashedPassword); err != nil {
		if errors.Is(err, ErrTokenUnusable) {
			return apperr.Token(MsgTokenUnusable)
		}
		return fmt.Errorf("auth_service_reset_consume_failed: %w", err)
	}

	return nil
}

// lookupToken loads a token and its owner, classifying every unusable state.
func (service *Service) lookupToken(context context.Context, token string) (*PasswordResetToken, *User, error) {
	if token == "" {
		return nil, nil, apperr.Token(MsgTokenInvalid)
	}

	record, err := service.resetTokenRepository.FindByToken(context, token)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, nil, apperr.Token(MsgTokenInvalid)
		}
		return nil, nil, fmt.Errorf("auth_service_token_lookup_failed: %w", err)
	}

	switch {
	case record.IsUsed():
		return nil, nil, apperr.Token(MsgTokenUsed)
	case record.IsExpired(service.now()):
		return nil, nil, apperr.Token(MsgTokenExpired)
	}

	user, err := service.userRepository.FindByID(context, record.UserID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, nil, apperr.Token(MsgTokenInvalid)
		}
		return nil, nil, fmt.Errorf("auth_service_token_owner_failed: %w", err)
	}

	return record, user, nil
}
