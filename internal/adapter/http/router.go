package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/schoolpay/feeledger/internal/adapter/http/handler"
	"github.com/schoolpay/feeledger/internal/adapter/http/middleware"
	"github.com/schoolpay/feeledger/internal/infrastructure/auth"
	"github.com/schoolpay/feeledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	EnrollmentHandler     *handler.EnrollmentHandler
	PaymentHandler        *handler.PaymentHandler
	AccountHandler        *handler.AccountHandler
	FeeScheduleHandler    *handler.FeeScheduleHandler
	RosterHandler         *handler.RosterHandler
	JournalHandler        *handler.JournalHandler
	ReconciliationHandler *handler.ReconciliationHandler
	HealthHandler         *handler.HealthHandler
	IdempotencyStore      usecase.IdempotencyStore
	JWTManager            *auth.JWTManager
	Logger                zerolog.Logger
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
		if cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Enrollment and payments
		r.Group(func(r chi.Router) {
			if cfg.JWTManager != nil {
				r.Use(middleware.RequireBilling)
			}

			r.Post("/enrollments", cfg.EnrollmentHandler.Enroll)
			r.Post("/payments", cfg.PaymentHandler.Record)
		})

		r.Get("/payments/{id}", cfg.PaymentHandler.Get)
		r.Get("/payments/{id}/receipt", cfg.PaymentHandler.GetReceipt)

		// Students
		r.Route("/students/{studentID}", func(r chi.Router) {
			r.Get("/account", cfg.AccountHandler.Get)
			r.Get("/payments", cfg.PaymentHandler.ListByStudent)
			r.Get("/reconciliation", cfg.ReconciliationHandler.ReconcileStudent)
		})

		// Classes
		r.Route("/classes", func(r chi.Router) {
			r.Get("/", cfg.RosterHandler.List)
			r.Get("/{classID}", cfg.RosterHandler.Get)
			r.Get("/{classID}/accounts", cfg.AccountHandler.ListByClass)

			r.Group(func(r chi.Router) {
				if cfg.JWTManager != nil {
					r.Use(middleware.RequireScheduleAdmin)
				}

				r.Post("/", cfg.RosterHandler.Create)
			})
		})

		// Fee schedule
		r.Route("/fees", func(r chi.Router) {
			r.Get("/", cfg.FeeScheduleHandler.List)
			r.Get("/{grade}", cfg.FeeScheduleHandler.Get)

			r.Group(func(r chi.Router) {
				if cfg.JWTManager != nil {
					r.Use(middleware.RequireScheduleAdmin)
				}

				r.Post("/", cfg.FeeScheduleHandler.Upsert)
				r.Delete("/{grade}", cfg.FeeScheduleHandler.Delete)
			})
		})

		// Journal
		r.Route("/journal", func(r chi.Router) {
			r.Get("/", cfg.JournalHandler.List)
			r.Get("/{id}", cfg.JournalHandler.Get)
		})

		// Ledger-wide reconciliation
		r.Get("/reconciliation/pairing", cfg.ReconciliationHandler.CheckPairing)
	})

	return r
}
