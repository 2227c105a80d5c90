// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the WeebTsuki HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire domain services and HTTP handlers.
//  7. Schedule maintenance jobs.
//  8. Start HTTP server with graceful shutdown.
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

	"github.com/taibuivan/weebtsuki/internal/api"
	"github.com/taibuivan/weebtsuki/internal/core/blog"
	"github.com/taibuivan/weebtsuki/internal/core/comment"
	"github.com/taibuivan/weebtsuki/internal/platform/cache"
	"github.com/taibuivan/weebtsuki/internal/platform/config"
	"github.com/taibuivan/weebtsuki/internal/platform/constants"
	"github.com/taibuivan/weebtsuki/internal/platform/cron"
	"github.com/taibuivan/weebtsuki/internal/platform/mail"
	"github.com/taibuivan/weebtsuki/internal/platform/migration"
	pgstore "github.com/taibuivan/weebtsuki/internal/platform/postgres"
	redisstore "github.com/taibuivan/weebtsuki/internal/platform/redis"
	"github.com/taibuivan/weebtsuki/internal/platform/sec"
	"github.com/taibuivan/weebtsuki/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("[WeebTsuki] service_initializing")

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
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Auth Service ───────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")
	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		Checks: []api.DependencyCheck{
			{Name: "postgres", Check: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }},
			{Name: "redis", Check: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }},
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	blogRepository := blog.NewBlogRepository(pool)
	var sectionCache cache.Store = cache.NewRedisStore(rdb)
	if cfg.HomeSectionsCache == config.CacheBackendMemory {
		log.Warn("home_sections_cache_in_process")
		sectionCache = cache.NewMemoryStore()
	}
	blogService := blog.NewService(blogRepository, sectionCache, cfg.HomeSectionsCacheTTL, log)
	viewCounter := blog.NewViewCounter(blogRepository, log, constants.BackgroundTaskTimeout)
	blogHandler := blog.NewHandler(blogService, viewCounter)

	commentService := comment.NewService(comment.NewRepository(pool), blogService, log)
	commentHandler := comment.NewHandler(commentService)

	var mailer mail.Sender = mail.NewLogSender(log)
	if cfg.SMTPHost != "" {
		smtpSender, err := mail.NewSMTPSender(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
			Timeout:  constants.SMTPTimeout,
		})
		must(log, err, "configure smtp sender")
		mailer = smtpSender
	} else {
		log.Warn("smtp_not_configured_using_log_mailer")
	}

	authService := auth.NewService(auth.Dependencies{
		Users:       auth.NewUserRepository(pool),
		OTPs:        auth.NewOTPRepository(rdb),
		ResetTokens: auth.NewResetTokenRepository(rdb),
		Tokens:      jwtSvc,
		Mailer:      mailer,
		Logger:      log,
		FrontendURL: cfg.FrontendURL,
	})
	authHandler := auth.NewHandler(authService)

	// ── 9. Maintenance Jobs ───────────────────────────────────────────────
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	scheduler := cron.New(rootCtx, log, constants.CronJobTimeout)
	must(log, scheduler.Add("warm_home_sections", cfg.CronWarmSections, blogService.WarmSections), "schedule section warm-up")
	must(log, scheduler.Add("reconcile_ratings", cfg.CronReconcileRatings, blogService.ReconcileRatings), "schedule rating reconciliation")
	scheduler.Start()

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Blog:      blogHandler,
		Comment:   commentHandler,
	}

	server := api.NewServer(rootCtx, cfg, log, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ──────────────────────────────────────────────
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
	}

	// Background work must finish before the deferred pool closes run.
	drainCtx, drainCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer drainCancel()

	scheduler.Stop(drainCtx)
	if err := viewCounter.Wait(drainCtx); err != nil {
		log.Warn("view_counter_drain_incomplete", slog.Any("error", err))
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
// newLogger builds the JSON root logger. Every entry carries the service
// name and build version.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(
		slog.String("app", constants.AppName),
		slog.String("version", constants.AppVersion),
	)
}

func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
