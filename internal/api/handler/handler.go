// Package handler provides HTTP handlers for all API endpoints. Passthrough
// handlers relay raw upstream bytes; the analyze handler drives the
// aggregation engine.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fplhub/fpl-analytics/internal/analysis"
	"github.com/fplhub/fpl-analytics/internal/api/respond"
	"github.com/fplhub/fpl-analytics/internal/config"
	"github.com/fplhub/fpl-analytics/internal/fpl"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	client    *fpl.Client
	bootstrap *fpl.BootstrapCache
	analyzer  *analysis.Analyzer
	cfg       *config.Config
	logger    *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(client *fpl.Client, bootstrap *fpl.BootstrapCache, analyzer *analysis.Analyzer, cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		client:    client,
		bootstrap: bootstrap,
		analyzer:  analyzer,
		cfg:       cfg,
		logger:    logger,
	}
}

// Root serves API info at /.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"name":    "FPL Analytics API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
