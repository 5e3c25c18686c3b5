package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"aircli/internal/config"
	mw "aircli/internal/middleware"
)

// NewRouter assembles the full HTTP surface: the dataset API under /api,
// health and prometheus endpoints, and the standard middleware chain.
func NewRouter(service *DatasetService, cfg *config.Config, logger *slog.Logger) chi.Router {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.StructuredLogger(logger))
	r.Use(mw.Recoverer(logger))
	if cfg.Server.RateLimit.Enabled {
		limiter := mw.NewRateLimiter(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst, logger)
		r.Use(limiter.Handler)
	}

	r.Get("/healthz", healthz)
	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/api", NewDatasetHandler(service, logger).Routes())

	return r
}

func healthz(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}
