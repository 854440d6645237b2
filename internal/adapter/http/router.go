package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/erginozdemir/tools4audit/internal/adapter/http/handler"
	"github.com/erginozdemir/tools4audit/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AgingHandler  *handler.AgingHandler
	CashHandler   *handler.CashHandler
	PageHandler   *handler.PageHandler
	HealthHandler *handler.HealthHandler
	Logger        zerolog.Logger
	// Optional
	RateLimiter    *middleware.RateLimiter
	HTTPMetrics    *middleware.HTTPMetrics
	MetricsHandler http.Handler
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.HTTPMetrics != nil {
		r.Use(cfg.HTTPMetrics.Wrap)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Group(func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Limit)
		}

		// Pages
		r.Get("/", cfg.PageHandler.Home)
		r.Route("/aging", func(r chi.Router) {
			r.Post("/", cfg.AgingHandler.Upload)
			r.Get("/sample", cfg.AgingHandler.Sample)
			r.Get("/{id}/download", cfg.AgingHandler.Download)
		})
		r.Post("/cash", cfg.CashHandler.Upload)

		// API v1
		r.Route("/api/v1", func(r chi.Router) {
			r.Route("/aging", func(r chi.Router) {
				r.Post("/", cfg.AgingHandler.Create)
				r.Get("/{id}", cfg.AgingHandler.Get)
			})
			r.Post("/cash", cfg.CashHandler.Analyze)
		})
	})

	return r
}
