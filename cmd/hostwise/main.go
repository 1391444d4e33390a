// Package main is the entry point for the hostwise API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hostwise/internal/cache"
	"hostwise/internal/config"
	"hostwise/internal/database"
	"hostwise/internal/handlers"
	"hostwise/internal/mailer"
	"hostwise/internal/ratelimit"
	"hostwise/internal/router"
	"hostwise/internal/service"
	"hostwise/internal/session"
	"hostwise/internal/storage"
	"hostwise/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Redis (sessions, submission cooldowns, board cache).
	redisClient, err := cache.Connect(cfg.RedisAddr(), cfg.RedisPassword)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// In non-development environments, mark session cookies as Secure.
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(redisClient, secureCookies)

	// Data stores.
	userStore := store.NewUserStore(db)
	postStore := store.NewPostStore(db)
	categoryStore := store.NewCategoryStore(db)
	partnerStore := store.NewPartnerStore(db)
	requestStore := store.NewServiceRequestStore(db)
	documentStore := store.NewDocumentStore(db)

	// Connect to S3-compatible object storage (optional, app works without it).
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize s3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured, document uploads disabled")
	}

	// Board services.
	boardCache := cache.NewBoardCache(redisClient, cache.DefaultBoardTTL)
	queryService := service.NewPostQueryService(postStore, cfg.SearchFetchCap)
	boardService := service.NewBoardService(queryService, postStore)
	aggregator := service.NewCategoryAggregator(categoryStore, postStore, boardCache)

	// Intake: transactional email plus a per-email submission cooldown.
	var m service.Mailer
	if cfg.EmailEnabled() {
		m = mailer.New(cfg.ResendAPIKey, cfg.EmailFrom, cfg.AdminEmail, cfg.EmailMaxAttempts)
		slog.Info("transactional email enabled", "from", cfg.EmailFrom)
	} else {
		slog.Warn("transactional email not configured, intake notifications disabled")
	}

	var limiter service.SubmissionLimiter
	if cfg.SubmitLimitOn {
		limiter = ratelimit.NewSubmissionLimiter(redisClient, cfg.SubmitWindow)
	}
	intakeService := service.NewIntakeService(requestStore, m, limiter)

	// Handler groups.
	publicHandlers := handlers.NewPublicHandler(boardService, aggregator, partnerStore, documentStore, db)
	intakeHandlers := handlers.NewIntakeHandler(intakeService)
	authHandlers := handlers.NewAuthHandler(userStore, sessionStore)
	adminHandlers := handlers.NewAdminHandler(
		postStore, categoryStore, partnerStore, requestStore, documentStore,
		queryService, aggregator, storageClient,
	)

	r := router.New(router.Deps{
		Public:        publicHandlers,
		Intake:        intakeHandlers,
		Auth:          authHandlers,
		Admin:         adminHandlers,
		Sessions:      sessionStore,
		AllowedOrigin: cfg.AllowedOrigin,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
