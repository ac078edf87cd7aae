// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the HMS HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Run database migrations (idempotent).
//  4. Connect to PostgreSQL (pgxpool).
//  5. Connect to Redis when configured (login throttling).
//  6. Wire services and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/hms/internal/api"
	"github.com/taibuivan/hms/internal/inventory/catalog"
	"github.com/taibuivan/hms/internal/inventory/item"
	"github.com/taibuivan/hms/internal/platform/config"
	"github.com/taibuivan/hms/internal/platform/constants"
	"github.com/taibuivan/hms/internal/platform/mail"
	"github.com/taibuivan/hms/internal/platform/migration"
	pgstore "github.com/taibuivan/hms/internal/platform/postgres"
	redisstore "github.com/taibuivan/hms/internal/platform/redis"
	"github.com/taibuivan/hms/internal/platform/sec"
	"github.com/taibuivan/hms/internal/platform/session"
	"github.com/taibuivan/hms/internal/users/account"
	"github.com/taibuivan/hms/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("[HMS] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("redis", cfg.RedisURL != ""),
		slog.Bool("smtp", cfg.SMTP.Enabled()),
	)

	secret, insecure := cfg.EffectiveSessionSecret()
	if insecure {
		log.Warn("session_secret_missing_using_insecure_default")
	}

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 4. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 5. Redis (optional) ───────────────────────────────────────────────
	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
	}

	// ── 6. Health handlers (wired with real dependency checkers) ──────────
	dependencies := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
	}
	if rdb != nil {
		dependencies.CheckCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	}
	liveness, readiness := api.NewHealthHandlers(dependencies, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	sessions, err := session.NewManager(session.Options{Secret: secret, Secure: cfg.IsProduction()})
	must(log, err, "initialize sessions")

	var authOptions []auth.Option
	if mailer := newMailer(cfg, log); mailer != nil {
		authOptions = append(authOptions, auth.WithMailer(mailer, cfg.AppBaseURL))
	}
	if rdb != nil {
		authOptions = append(authOptions, auth.WithAttemptLimiter(auth.NewAttemptLimiter(rdb, cfg.LoginMaxAttempts, cfg.LoginLockout)))
	}

	hasher := sec.NewBcryptHasher(cfg.BcryptCost)
	authService := auth.NewService(
		auth.NewUserRepository(pool),
		auth.NewResetTokenRepository(pool),
		hasher,
		authOptions...,
	)
	accountService := account.NewService(account.NewPostgresRepository(pool), hasher, log)
	catalogService := catalog.NewService(catalog.NewPostgresRepository(pool), log)
	itemService := item.NewService(item.NewPostgresRepository(pool), log)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, sessions, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, sessions, cfg.AppBaseURL),
		Account:   account.NewHandler(accountService, sessions),
		Catalog:   catalog.NewHandler(catalogService),
		Item:      item.NewHandler(itemService),
	})

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the JSON logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", "hms"))
}

// newMailer picks SMTP delivery when configured. Without SMTP, development
// logs that a mail would have gone out and other environments send nothing.
func newMailer(cfg *config.Config, log *slog.Logger) mail.Sender {
	if !cfg.SMTP.Enabled() {
		if cfg.IsDevelopment() {
			return mail.LogSender{Logger: log}
		}
		return nil
	}

	sender, err := mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		TLS:      cfg.SMTP.TLS,
	})
	must(log, err, "initialize smtp sender")
	return sender
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
