package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/fplhub/fpl-analytics/internal/api/docs"
	"github.com/fplhub/fpl-analytics/internal/api/handler"
	"github.com/fplhub/fpl-analytics/internal/config"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(h *handler.Handler, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS — permissive by default, the whole point of this proxy.
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Routes ---

	r.Get("/", h.Root)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	// Swagger UI over the embedded OpenAPI document.
	r.Get("/docs/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(docs.OpenAPI)
	})
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/openapi.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HealthCheck)

		// Raw passthrough of upstream resources
		r.Get("/bootstrap-static", h.GetBootstrapStatic)
		r.Get("/entry/{managerId}", h.GetEntry)
		r.Get("/entry/{managerId}/history", h.GetEntryHistory)
		r.Get("/entry/{managerId}/event/{gameweek}/picks", h.GetEntryPicks)
		r.Get("/element-summary/{playerId}", h.GetElementSummary)
		r.Get("/leagues-classic/{leagueId}/standings", h.GetLeagueStandings)

		// Derived views
		r.Get("/player-stats/{position}", h.GetPlayersByPosition)
		r.Get("/player-image/{playerId}", h.GetPlayerImage)
		r.Get("/analyze-manager/{managerId}", h.AnalyzeManager)
	})

	return r
}
