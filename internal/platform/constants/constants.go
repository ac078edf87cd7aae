// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Sessions & Tokens: Cookie names, lifetimes and token sizes.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "hms-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 20.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 40

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Sessions & Password Reset

const (
	// SessionIssuer is the 'iss' claim of the signed session cookie.
	SessionIssuer = "hms"

	// SessionCookieName is the name of the signed session cookie.
	SessionCookieName = "__session"

	// SessionMaxAge is the lifetime of the session cookie.
	SessionMaxAge = 7 * 24 * time.Hour

	// ResetTokenTTL is how long a password reset link stays valid.
	ResetTokenTTL = time.Hour

	// ResetTokenBytes is the entropy of a reset token; hex-encoded it is twice as long.
	ResetTokenBytes = 32

	// MinPasswordLength applies to login, registration and password reset.
	MinPasswordLength = 8

	// MaxPasswordBytes is the bcrypt input limit; longer passwords are rejected at validation.
	MaxPasswordBytes = 72
)

// # HTTP Headers

const (
	HeaderXRequestID      = "X-Request-ID"
	HeaderXRealIP         = "X-Real-IP"
	HeaderXForwardedFor   = "X-Forwarded-For"
	HeaderXForwardedProto = "X-Forwarded-Proto"
	HeaderOrigin          = "Origin"
	HeaderRetryAfter      = "Retry-After"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaUsers     = "users"
	SchemaInventory = "inventory"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisPrefixLoginAttempts counts failed logins per email and client IP.
	RedisPrefixLoginAttempts = "auth:login_attempts:"
)
