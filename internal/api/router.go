package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/api/handlers"
	custommiddleware "github.com/Fellipe-Tripovichy/ubs-watchdog/internal/api/middleware"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/config"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/logging"
	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/service"
)

// Services bundles the services the router exposes over HTTP.
type Services struct {
	System      *service.SystemService
	Client      *service.ClientService
	Transaction *service.TransactionService
	Alert       *service.AlertService
	Report      *service.ReportService
	Snapshot    *service.SnapshotService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	logger = logging.OrNop(logger)

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)
	r.Use(custommiddleware.Metrics)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	r.Handle("/metrics", promhttp.Handler())

	limiter := custommiddleware.NewRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst, 10*time.Minute)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(limiter.Middleware)

		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/client", func(r chi.Router) {
			clientHandler := handlers.NewClientHandler(svc.Client)
			r.Get("/", clientHandler.Clients)
			r.Post("/", clientHandler.CreateClient)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", clientHandler.GetClient)
			})
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svc.Transaction)
			r.Get("/", transactionHandler.Transactions)
			r.Post("/", transactionHandler.CreateTransaction)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
			})
		})

		r.Route("/alert", func(r chi.Router) {
			alertHandler := handlers.NewAlertHandler(svc.Alert)
			r.Get("/", alertHandler.Alerts)
			r.Post("/", alertHandler.CreateAlert)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", alertHandler.GetAlert)
				r.Post("/start-analysis", alertHandler.StartAnalysis)
				r.Post("/resolve", alertHandler.Resolve)
			})
		})

		r.Route("/report", func(r chi.Router) {
			reportHandler := handlers.NewReportHandler(svc.Report, svc.Snapshot)
			r.Get("/", reportHandler.GlobalReport)

			r.Route("/client/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", reportHandler.ClientReport)
				r.Get("/snapshot", reportHandler.Snapshot)
				r.Post("/snapshot", reportHandler.RefreshSnapshot)
			})
		})
	})

	return r
}
