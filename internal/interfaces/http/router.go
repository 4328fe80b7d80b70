// Package http wires the browse API's route tree and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/veritext/frameunify/internal/infrastructure/monitoring/logging"
	"github.com/veritext/frameunify/internal/infrastructure/monitoring/prometheus"
	"github.com/veritext/frameunify/internal/interfaces/http/handlers"
	"github.com/veritext/frameunify/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and middleware dependencies of the
// route tree.
type RouterConfig struct {
	InstanceHandler *handlers.InstanceHandler
	OntologyHandler *handlers.OntologyHandler
	HealthHandler   *handlers.HealthHandler

	RateLimiter *middleware.RateLimiter

	Logger           logging.Logger
	MetricsCollector prometheus.MetricsCollector
	HTTPMetrics      *prometheus.HTTPMetrics
}

// NewRouter builds the full route tree: public probes, the metrics endpoint
// and the versioned API group.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if cfg.Logger != nil {
		r.Use(middleware.RequestLogging(cfg.Logger, "/healthz", "/readyz", "/metrics"))
	}
	if cfg.HTTPMetrics != nil {
		r.Use(middleware.Metrics(cfg.HTTPMetrics))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Handler)
	}

	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsCollector != nil {
		r.Handle("/metrics", cfg.MetricsCollector.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		if cfg.InstanceHandler != nil {
			api.Get("/metadata", cfg.InstanceHandler.Metadata)
			api.Get("/instances", cfg.InstanceHandler.List)
			api.Get("/instances/{id}", cfg.InstanceHandler.Get)
			api.Get("/search", cfg.InstanceHandler.Search)
		}
		if cfg.OntologyHandler != nil {
			api.Get("/frames", cfg.OntologyHandler.ListFrames)
			api.Get("/frames/{name}", cfg.OntologyHandler.GetFrame)
			api.Get("/hierarchy", cfg.OntologyHandler.Hierarchy)
		}
	})

	return r
}
