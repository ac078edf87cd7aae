// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/taibuivan/hms/internal/platform/apperr"
	"github.com/taibuivan/hms/internal/platform/ctxutil"
	"github.com/taibuivan/hms/internal/platform/dberr"
	"github.com/taibuivan/hms/internal/platform/mail"
	"github.com/taibuivan/hms/internal/platform/sec"
	"github.com/taibuivan/hms/pkg/uuid"
)

// # Contracts & Types

// Service implements the account access use cases.
//
// # Review Process
//
// This service is critical for security. Any change to credential checks,
// token handling or error messages must keep the unknown-email and
// wrong-password paths indistinguishable to the client.
type Service struct {
	userRepository       UserRepository
	resetTokenRepository ResetTokenRepository
	hasher               sec.PasswordHasher
	limiter              AttemptLimiter
	mailer               mail.Sender
	mailBaseURL          string
	now                  func() time.Time
}

// Option customizes a [Service].
type Option func(*Service)

// WithAttemptLimiter enables failed-login throttling.
func WithAttemptLimiter(limiter AttemptLimiter) Option {
	return func(service *Service) { service.limiter = limiter }
}

// WithMailer e-mails reset links in addition to returning them.
//
// Mailed links always point at baseURL, the configured public origin, and
// never at an origin taken from the request. An empty baseURL disables mail.
func WithMailer(sender mail.Sender, baseURL string) Option {
	return func(service *Service) {
		service.mailer = sender
		service.mailBaseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithClock overrides the clock used for token expiry. Tests only.
func WithClock(now func() time.Time) Option {
	return func(service *Service) { service.now = now }
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	resetRepo ResetTokenRepository,
	hasher sec.PasswordHasher,
	opts ...Option,
) *Service {
	service := &Service{
		userRepository:       userRepo,
		resetTokenRepository: resetRepo,
		hasher:               hasher,
		now:                  time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// # Authentication Flow

/*
Login checks credentials and returns the matching account.

Description: An unknown email and a wrong password produce the same auth
error. When throttling is enabled, a locked-out email and client pair is
refused before the password is checked.

Parameters:
  - context: context.Context
  - form: LoginForm (raw submission)
  - clientIP: string (throttling key component)

Returns:
  - *User: Authenticated account
  - error: validation, auth, rate_limited, or internal failures
*/
func (service *Service) Login(context context.Context, form LoginForm, clientIP string) (*User, error) {
	input, err := form.Validate()
	if err != nil {
		return nil, err
	}

	attemptKey := input.Email + "|" + clientIP

	// Throttle before touching the hash; Redis outages fail open.
	if service.limiter != nil {
		remaining, err := service.limiter.Blocked(context, attemptKey)
		if err != nil {
			ctxutil.GetLogger(context).WarnContext(context, "login_throttle_unavailable", slog.Any("error", err))
		} else if remaining > 0 {
			return nil, apperr.RateLimited(int(math.Ceil(remaining.Seconds())))
		}
	}

	user, err := service.userRepository.FindByEmail(context, input.Email)
	if err != nil {
		if dberr.IsNotFound(err) {
			service.recordFailure(context, attemptKey)
			return nil, apperr.Auth(MsgInvalidCredentials)
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	if !service.hasher.Verify(input.Password, user.PasswordHash) {
		service.recordFailure(context, attemptKey)
		return nil, apperr.Auth(MsgInvalidCredentials)
	}

	// Guard against storage drift; this is not a client error.
	if err := user.checkShape(); err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_login_record: %w", err))
	}

	if service.limiter != nil {
		if err := service.limiter.Reset(context, attemptKey); err != nil {
			ctxutil.GetLogger(context).WarnContext(context, "login_throttle_reset_failed", slog.Any("error", err))
		}
	}

	return user, nil
}

func (service *Service) recordFailure(context context.Context, key string) {
	if service.limiter == nil {
		return
	}
	if err := service.limiter.Fail(context, key); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "login_throttle_record_failed", slog.Any("error", err))
	}
}

// # Registration Flow

/*
Register validates, hashes, and persists a brand new account.

Description: A duplicate email is reported as a validation error on the
email field, whether found up front or raised by the unique index when two
registrations race.

Parameters:
  - context: context.Context
  - form: RegisterForm (raw submission)

Returns:
  - *User: Created account
  - error: validation or internal failures
*/
func (service *Service) Register(context context.Context, form RegisterForm) (*User, error) {
	input, err := form.Validate()
	if err != nil {
		return nil, err
	}

	_, err = service.userRepository.FindByEmail(context, input.Email)
	switch {
	case err == nil:
		return nil, apperr.FieldError(FieldEmail, MsgEmailTaken)
	case !dberr.IsNotFound(err):
		return nil, fmt.Errorf("auth_service_register_lookup_failed: %w", err)
	}

	hashedPassword, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_hash_failed: %w", err))
	}

	user := &User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Name:         input.Name,
		CreatedAt:    service.now().UTC(),
	}

	if err := service.userRepository.Create(context, user); err != nil {
		if dberr.IsConflict(err) {
			return nil, apperr.FieldError(FieldEmail, MsgEmailTaken)
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return user, nil
}

// # Session Owner

// CurrentUser loads the account behind a session.
//
// A session whose account no longer exists yields dberr.ErrNotFound.
func (service *Service) CurrentUser(context context.Context, userID string) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("auth_service_current_user_failed: %w", err)
	}
	return user, nil
}
