// Command api is the FPL Analytics API server: a proxy and aggregation layer
// in front of the public Fantasy Premier League API.
//
// Usage:
//
//	fpl-api
//	PORT=8080 LEAGUE_ID=314 fpl-api
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/fplhub/fpl-analytics/internal/analysis"
	"github.com/fplhub/fpl-analytics/internal/api"
	"github.com/fplhub/fpl-analytics/internal/api/handler"
	"github.com/fplhub/fpl-analytics/internal/config"
	"github.com/fplhub/fpl-analytics/internal/fpl"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Upstream client, bootstrap cache, analyzer
	client := fpl.NewClient(cfg.FPLBaseURL, cfg.ImageBaseURL, cfg.UpstreamTimeout, cfg.UpstreamRPS, logger)
	bootstrap := fpl.NewBootstrapCache(client, cfg.BootstrapTTL, logger)
	analyzer := analysis.New(client, bootstrap, cfg.LeagueID, cfg.FetchBatchSize, logger)
	logger.Info("Upstream client initialized",
		"base_url", cfg.FPLBaseURL,
		"timeout", cfg.UpstreamTimeout,
		"bootstrap_ttl", cfg.BootstrapTTL)

	// Create router
	h := handler.New(client, bootstrap, analyzer, cfg, logger)
	router := api.NewRouter(h, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting FPL Analytics API",
			"addr", addr,
			"environment", cfg.Environment,
			"league_id", cfg.LeagueID,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
