// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file is
loaded first (via 'joho/godotenv') when present; real environment variables win.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, Sessions) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// InsecureDevSessionSecret is the fallback cookie-signing key outside production.
const InsecureDevSessionSecret = "hms-insecure-development-secret"

var (
	// ErrMissingSessionSecret is returned when production starts without a signing key.
	ErrMissingSessionSecret = errors.New("config: SESSION_SECRET is required in production")

	// ErrMissingBaseURL is returned when reset links could leave the process
	// (SMTP or production) without a fixed public origin.
	ErrMissingBaseURL = errors.New("config: APP_BASE_URL is required when SMTP is enabled or in production")
)

// # Configuration Schema

// Config holds all runtime configuration for the HMS API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"`
	NodeEnv     string `env:"NODE_ENV"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// AppBaseURL is the public origin used to build password reset links.
	// Empty means "derive from the incoming request", which is allowed in
	// development only and never used for e-mailed links.
	AppBaseURL string `env:"APP_BASE_URL"`

	// TrustedProxies lists the proxy IPs or CIDRs whose X-Real-IP and
	// X-Forwarded-For headers are believed. Empty trusts no header.
	TrustedProxies string `env:"TRUSTED_PROXIES"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis). Optional: login throttling is disabled without it.
	RedisURL string `env:"REDIS_URL"`

	// Cookie-signing key for the session cookie.
	SessionSecret string `env:"SESSION_SECRET"`

	// Password hashing work factor.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	// Failed-login throttling (Redis only).
	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS" envDefault:"5"`
	LoginLockout     time.Duration `env:"LOGIN_LOCKOUT"      envDefault:"15m"`

	// Outgoing mail (password reset links). Disabled when SMTPHost is empty.
	SMTP SMTP `envPrefix:"SMTP_"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// SMTP holds the outgoing mail server settings.
type SMTP struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT"     envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"     envDefault:"no-reply@hms.local"`
	TLS      bool   `env:"TLS"      envDefault:"true"`
}

// Enabled reports whether a mail server is configured.
func (s SMTP) Enabled() bool {
	return s.Host != ""
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Best effort: a missing .env is the normal case in containers.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("config: failed to load .env: %w", err)
		}
	}

	return parse()
}

// parse maps the process environment onto a fresh [Config] and validates it.
func parse() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// ENVIRONMENT wins over NODE_ENV; development is the default.
	if cfg.Environment == "" {
		cfg.Environment = cfg.NodeEnv
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate enforces cross-field rules that struct tags cannot express.
func (c *Config) Validate() error {
	if c.IsProduction() && c.SessionSecret == "" {
		return ErrMissingSessionSecret
	}
	if (c.IsProduction() || c.SMTP.Enabled()) && c.AppBaseURL == "" {
		return ErrMissingBaseURL
	}
	if c.LoginMaxAttempts < 1 {
		return fmt.Errorf("config: LOGIN_MAX_ATTEMPTS must be positive, got %d", c.LoginMaxAttempts)
	}
	if _, err := c.TrustedProxyPrefixes(); err != nil {
		return err
	}
	return nil
}

// TrustedProxyPrefixes parses TRUSTED_PROXIES. Bare addresses become
// single-host prefixes.
func (c *Config) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, entry := range strings.Split(c.TrustedProxies, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("config: invalid TRUSTED_PROXIES entry %q: %w", entry, err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("config: invalid TRUSTED_PROXIES entry %q: %w", entry, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// EffectiveSessionSecret returns the configured secret, or the insecure
// development fallback. The second value reports whether the fallback was used.
func (c *Config) EffectiveSessionSecret() (string, bool) {
	if c.SessionSecret != "" {
		return c.SessionSecret, false
	}
	return InsecureDevSessionSecret, true
}

// AllowedOrigins lists the origins trusted by CORS outside development:
// the public base URL plus the comma-separated EXTRA_ORIGINS.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	if c.AppBaseURL != "" {
		origins = append(origins, strings.TrimRight(c.AppBaseURL, "/"))
	}
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
