// Package main is the entry point for the DDU Connect auth API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ddu-connect/backend/config"
	"github.com/ddu-connect/backend/internal/application/adapter"
	"github.com/ddu-connect/backend/internal/infra/db"
	"github.com/ddu-connect/backend/internal/infra/dependency"
	"github.com/ddu-connect/backend/internal/infra/metrics"
	"github.com/ddu-connect/backend/internal/infra/server/router"
	"github.com/ddu-connect/backend/internal/integration/adapters"
	"github.com/ddu-connect/backend/internal/integration/allowlist"
	"github.com/ddu-connect/backend/internal/integration/email"
	"github.com/ddu-connect/backend/internal/integration/entrypoint/controller"
	"github.com/ddu-connect/backend/internal/integration/locker"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting DDU Connect API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	ids, err := allowlist.LoadFile(cfg.Auth.AllowlistFile)
	if err != nil {
		slog.Error("Failed to load identity allowlist", "error", err, "path", cfg.Auth.AllowlistFile)
		os.Exit(1)
	}
	slog.Info("Identity allowlist loaded", "count", ids.Len())

	emailSender, err := newEmailSender(cfg)
	if err != nil {
		slog.Error("Failed to configure email sender", "error", err)
		os.Exit(1)
	}

	accountLocker, closeLocker := newAccountLocker(cfg)
	defer closeLocker()

	m := metrics.New()

	var r *router.Router
	database, err := db.Open(context.Background(), cfg.Database)
	if err != nil {
		slog.Warn("Database connection failed, running without database",
			"error", err,
		)
		r = router.NewRouter(
			controller.NewHealthController(nil, nil),
			nil,
			nil,
			m,
			cfg.CORS.AllowedOrigins,
		)
	} else {
		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()

		if cfg.Database.AutoMigrate {
			if err := database.Migrate(); err != nil {
				slog.Error("Failed to run database migrations", "error", err)
				os.Exit(1)
			}
			slog.Info("Database migrations completed successfully")
		}

		injector, err := dependency.NewInjector(cfg, database.Conn(), dependency.Dependencies{
			EmailSender: emailSender,
			Locker:      accountLocker,
			Allowlist:   ids,
			Clock:       adapters.NewSystemClock(),
			Metrics:     m,
		})
		if err != nil {
			slog.Error("Failed to wire dependencies", "error", err)
			os.Exit(1)
		}
		r = injector.Router

		slog.Info("Auth system initialized successfully")
	}

	engine := r.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return
	}

	slog.Info("Server exited properly")
}

// newEmailSender uses Resend when an API key is configured.
func newEmailSender(cfg *config.Config) (adapter.EmailSender, error) {
	if cfg.Email.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set, emails will only be logged")
		return email.NewLogSender(slog.Default()), nil
	}

	var opts []email.ResendOption
	if cfg.Email.ResendBaseURL != "" {
		opts = append(opts, email.WithBaseURL(cfg.Email.ResendBaseURL))
	}
	return email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail, opts...)
}

// newAccountLocker uses Redis when configured and reachable, else an in-process lock.
func newAccountLocker(cfg *config.Config) (adapter.AccountLocker, func()) {
	if cfg.Redis.URL == "" {
		return locker.NewMemoryLocker(), func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := locker.NewRedisClient(ctx, cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		slog.Warn("Redis unavailable, using in-process account lock", "error", err)
		return locker.NewMemoryLocker(), func() {}
	}

	slog.Info("Using Redis account lock")
	return locker.NewRedisLocker(client, cfg.Redis.LockTTL), func() {
		if err := client.Close(); err != nil {
			slog.Error("Failed to close redis client", "error", err)
		}
	}
}
