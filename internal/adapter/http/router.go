package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lftbrito/bip-teste-integrado/internal/adapter/http/handler"
	"github.com/lftbrito/bip-teste-integrado/internal/adapter/http/middleware"
	"github.com/lftbrito/bip-teste-integrado/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	BenefitHandler   *handler.BenefitHandler
	TransferHandler  *handler.TransferHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Route("/benefits", func(r chi.Router) {
			r.Post("/", cfg.BenefitHandler.Create)
			r.Get("/", cfg.BenefitHandler.List)
			r.Get("/active", cfg.BenefitHandler.ListActive)
			r.Get("/{id}", cfg.BenefitHandler.Get)
			r.Put("/{id}", cfg.BenefitHandler.Update)
			r.Delete("/{id}", cfg.BenefitHandler.Deactivate)
		})

		r.Post("/transfers", cfg.TransferHandler.Create)
	})

	return r
}
