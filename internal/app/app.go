// Package app wires configuration, adapters, services and transport into
// runnable commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jqhoogland/open-dictionary/internal/adapter/postgres"
	"github.com/jqhoogland/open-dictionary/internal/adapter/postgres/pagecache"
	"github.com/jqhoogland/open-dictionary/internal/adapter/provider/wiktionary"
	"github.com/jqhoogland/open-dictionary/internal/auth"
	"github.com/jqhoogland/open-dictionary/internal/config"
	"github.com/jqhoogland/open-dictionary/internal/metrics"
	"github.com/jqhoogland/open-dictionary/internal/parser"
	"github.com/jqhoogland/open-dictionary/internal/service/lookup"
	"github.com/jqhoogland/open-dictionary/internal/transport/middleware"
	"github.com/jqhoogland/open-dictionary/internal/transport/rest"
)

// NewProvider builds the wiki page provider from config.
func NewProvider(cfg config.WiktionaryConfig, logger *slog.Logger) *wiktionary.Provider {
	return wiktionary.NewProvider(wiktionary.Config{
		Wiki:          cfg.Wiki,
		BaseURL:       cfg.BaseURL,
		UserAgent:     cfg.UserAgent,
		Timeout:       cfg.Timeout,
		RetryAttempts: cfg.RetryAttempts,
		RetryDelay:    cfg.RetryDelay,
	}, logger)
}

// NewLookupService builds the lookup service. A nil pool disables the page
// cache: every lookup then fetches from the wiki.
func NewLookupService(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool, rec metrics.Recorder) *lookup.Service {
	opts := lookup.Options{
		PageTTL:          cfg.Cache.PageTTL,
		BatchConcurrency: cfg.Lookup.BatchConcurrency,
		BatchWait:        cfg.Lookup.BatchWait,
		BatchCapacity:    cfg.Lookup.BatchCapacity,
	}
	pages := NewProvider(cfg.Wiktionary, logger)
	p := parser.New(logger, nil, nil)

	if pool == nil {
		return lookup.NewService(logger, nil, nil, pages, p, rec, opts)
	}
	return lookup.NewService(logger, pagecache.New(pool), postgres.NewTxManager(pool), pages, p, rec, opts)
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func Serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if err := cfg.RequireDatabase(); err != nil {
		return err
	}

	logger.Info("starting server",
		slog.String("version", BuildVersion()),
		slog.String("wiki", cfg.Wiktionary.Wiki),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, postgres.MigrateUp, logger); err != nil {
			return err
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	rec := metrics.NewPrometheusRecorder(nil)
	svc := NewLookupService(cfg, logger, pool, rec)

	rl := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer rl.Stop()

	deps := rest.RouterDeps{
		Entries:   rest.NewEntriesHandler(svc, logger, cfg.Server.MaxBodyBytes),
		Health:    rest.NewHealthHandler(pool, cfg.Wiktionary.Wiki, BuildVersion()),
		Metrics:   rec.Handler(),
		CORS:      middleware.CORS(cfg.CORS),
		RateLimit: rl.Limit(cfg.RateLimit.RequestsPerMinute),
		Logger:    logger,
	}
	if cfg.Auth.AdminEnabled() {
		jwtm := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AdminTokenTTL)
		deps.Admin = rest.NewAdminHandler(svc, logger)
		deps.Auth = middleware.Auth(jwtm)
	} else {
		logger.Warn("auth.jwt_secret not set, admin endpoints disabled")
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           rest.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	return runServer(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

func runServer(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
