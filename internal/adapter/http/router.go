package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/atharvapisal16/household-ledger/internal/adapter/http/handler"
	"github.com/atharvapisal16/household-ledger/internal/adapter/http/middleware"
	"github.com/atharvapisal16/household-ledger/internal/infrastructure/auth"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler    *handler.AuthHandler
	ExpenseHandler *handler.ExpenseHandler
	ReportHandler  *handler.ReportHandler
	HealthHandler  *handler.HealthHandler
	JWTManager     *auth.JWTManager
	Logger         zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Open endpoints
		r.Post("/auth/register", cfg.AuthHandler.Register)
		r.Post("/auth/login", cfg.AuthHandler.Login)

		// Everything below requires a valid token
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))

			r.Get("/auth/me", cfg.AuthHandler.Me)

			r.Route("/sections/{section}", func(r chi.Router) {
				r.Route("/expenses", func(r chi.Router) {
					r.Post("/", cfg.ExpenseHandler.Create)
					r.Get("/", cfg.ExpenseHandler.List)
					r.Put("/{id}", cfg.ExpenseHandler.Update)
					r.Delete("/{id}", cfg.ExpenseHandler.Delete)
				})
				r.Post("/import", cfg.ExpenseHandler.Import)
				r.Get("/export", cfg.ReportHandler.Export)
				r.Get("/categories", cfg.ExpenseHandler.Categories)

				r.Route("/reports", func(r chi.Router) {
					r.Get("/summary", cfg.ReportHandler.Summary)
					r.Get("/categories", cfg.ReportHandler.CategoryTotals)
					r.Get("/daily", cfg.ReportHandler.DailyTrend)
					r.Get("/breakdown", cfg.ReportHandler.Breakdown)
				})
			})
		})
	})

	return r
}
