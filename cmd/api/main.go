// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Reelhub HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the storage driver (postgres + migrations, mongo + indexes, or memory).
//  4. Connect to Redis when configured (signin throttle).
//  5. Build credential, token and external identity services.
//  6. Wire HTTP handlers.
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

	"github.com/taibuivan/reelhub/internal/api"
	"github.com/taibuivan/reelhub/internal/library/favorite"
	"github.com/taibuivan/reelhub/internal/library/review"
	"github.com/taibuivan/reelhub/internal/platform/config"
	"github.com/taibuivan/reelhub/internal/platform/constants"
	"github.com/taibuivan/reelhub/internal/platform/middleware"
	redisstore "github.com/taibuivan/reelhub/internal/platform/redis"
	"github.com/taibuivan/reelhub/internal/platform/sec"
	"github.com/taibuivan/reelhub/internal/users/account"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing")

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
		slog.String("storage_driver", cfg.StorageDriver),
	)

	// Bounded startup so misconfiguration fails fast instead of hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer startupCancel()

	// Lives until shutdown; stops background workers such as the IP limiter sweeper.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. Storage ────────────────────────────────────────────────────────
	store, err := openStorage(startupCtx, cfg, log)
	must(log, err, "open storage")
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		store.close(closeCtx)
	}()

	checks := []api.Check{store.check}

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	var limiter account.AttemptLimiter = account.NoopAttemptLimiter{}
	if cfg.ThrottleEnabled() {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		limiter = account.NewRedisAttemptLimiter(rdb, cfg.SigninMaxAttempts, cfg.SigninLockout)
		checks = append(checks, api.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}})
	} else {
		log.Warn("signin_throttle_disabled", slog.String("reason", "REDIS_URL is empty"))
	}

	// ── 5. Security Services ──────────────────────────────────────────────
	credentials, err := sec.NewCredentialStore(cfg.KDFParams())
	must(log, err, "initialize credential store")

	tokens, err := sec.NewTokenService([]byte(cfg.TokenSecret), cfg.TokenTTL, cfg.TokenIssuer)
	must(log, err, "initialize token service")

	var identities account.IdentityVerifier
	if cfg.ExternalSigninEnabled() {
		verifier, err := sec.NewOIDCVerifier(startupCtx, cfg.OIDCIssuer, cfg.OIDCClientID)
		must(log, err, "discover openid provider")
		identities = verifier
		log.Info("external_signin_enabled", slog.String("issuer", cfg.OIDCIssuer))
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	accountService := account.NewService(store.accounts, credentials, tokens, limiter, identities, log)
	favoriteService := favorite.NewService(store.favorites, log)
	reviewService := review.NewService(store.reviews, log)

	liveness, readiness := api.NewHealthHandlers(checks, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Account:   account.NewHandler(accountService),
		Favorite:  favorite.NewHandler(favoriteService),
		Review:    review.NewHandler(reviewService),
	}

	server := api.NewServer(appCtx, cfg, log, middleware.RequireAccount(tokens, accountService), handlers)

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
	}

	log.Info("server_stopped")
}

// newLogger builds the JSON logger carrying the app and version on every line.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(
			slog.String(constants.FieldApp, constants.AppName),
			slog.String(constants.FieldVersion, constants.AppVersion),
		)
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// Limited to startup wiring. After startup, errors are returned and handled.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
