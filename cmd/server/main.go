// Package main is the entrypoint for the SoilScope API server.
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

	"github.com/soilscope/soilscope/internal/ai"
	"github.com/soilscope/soilscope/internal/analysis"
	"github.com/soilscope/soilscope/internal/api"
	"github.com/soilscope/soilscope/internal/api/handler"
	mw "github.com/soilscope/soilscope/internal/api/middleware"
	"github.com/soilscope/soilscope/internal/api/response"
	"github.com/soilscope/soilscope/internal/cache"
	"github.com/soilscope/soilscope/internal/config"
	"github.com/soilscope/soilscope/internal/extract"
	"github.com/soilscope/soilscope/internal/report"
	"github.com/soilscope/soilscope/internal/store"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config — fail fast on invalid config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "env", cfg.Server.Env, "model", cfg.AI.Model)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Connect to database
	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	slog.Info("database connected")

	// 3. Run migrations
	if err := store.RunMigrations(cfg.Database.URL, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("database migrations applied")

	// 4. Pick a cache: Redis when configured, in-process otherwise
	var appCache cache.Cache
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("create redis cache: %w", err)
		}
		defer redisCache.Close()

		if err := redisCache.Ping(ctx); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		slog.Info("redis connected")
		appCache = redisCache
	} else {
		slog.Info("no REDIS_URL set, using in-process cache")
		appCache = cache.NewMemoryCache()
	}

	// 5. Create AI provider; nil means deterministic mock mode
	provider := ai.NewProvider(cfg.AI)
	if provider == nil {
		slog.Warn("no OPENAI_API_KEY set, serving mock analyses")
	} else {
		slog.Info("AI provider initialized", "provider", provider.Name())
	}

	// 6. Create store and services
	pgStore := store.NewPostgresStore(pool)
	extractor := extract.NewService(appCache, cfg.Cache.ExtractionTTL)
	analyzer := analysis.NewService(provider, appCache, cfg.AI, cfg.Cache.AnalysisTTL)
	reports := report.NewService(pgStore, analyzer)

	// 7. Build router with dependencies
	auth := mw.NewAuth(pgStore)
	rateLimit := mw.NewRateLimit(appCache, 60)

	deps := api.Dependencies{
		Auth:      auth,
		RateLimit: rateLimit,

		HealthHandler:   healthHandler(pgStore, appCache),
		UploadHandler:   handler.NewUploadHandler(reports, extractor, cfg.Upload.Dir, cfg.Upload.MaxBytes),
		MyReports:       handler.NewMyReportsHandler(reports),
		GetReport:       handler.NewGetReportHandler(reports),
		ReportStatus:    handler.NewReportStatusHandler(reports),
		DetailedHandler: handler.NewDetailedRecommendationsHandler(reports, analyzer),
		AdminReports:    handler.NewAdminReportsHandler(reports),
	}

	router := api.NewRouter(deps)

	// 8. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// healthHandler checks database and cache connectivity.
func healthHandler(s store.Store, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"database": "ok",
			"cache":    "ok",
		}

		if err := s.Ping(r.Context()); err != nil {
			checks["database"] = "degraded"
		}
		if err := c.Ping(r.Context()); err != nil {
			checks["cache"] = "degraded"
		}

		degraded := checks["database"] != "ok" || checks["cache"] != "ok"
		if degraded {
			response.Error(w, http.StatusServiceUnavailable, "DEGRADED",
				"One or more services degraded", checks)
			return
		}

		response.JSON(w, map[string]any{
			"status":   "ok",
			"services": checks,
		})
	}
}
