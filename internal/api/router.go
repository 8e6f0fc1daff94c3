// Package api provides the HTTP API for AquaWatch.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/aquawatch/aquawatch/internal/api/handler"
	"github.com/aquawatch/aquawatch/internal/api/middleware"
	"github.com/aquawatch/aquawatch/internal/api/response"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version   string
	BuildTime string
	Logger    zerolog.Logger
	Clock     clockwork.Clock

	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
	Metrics        *middleware.Metrics

	// Gatherer exposes pipeline metrics on /metrics when set.
	Gatherer prometheus.Gatherer

	RequireTLS bool

	Catalog  handler.StationCatalog
	Pipeline handler.Pipeline
	Dataset  handler.DatasetSource
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware - order matters
	r.Use(middleware.RequestID)                   // Generate/propagate request ID first
	r.Use(middleware.Tracing(cfg.TracerProvider)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))         // Structured logging
	r.Use(middleware.Recovery(cfg.Logger))       // Panic recovery
	r.Use(chimiddleware.RealIP)                  // Real IP extraction
	r.Use(middleware.SecurityHeaders)            // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS(cfg.RequireTLS)) // TLS enforcement
	r.Use(middleware.ContentTypeJSON)            // JSON content type

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, r, "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w, r, r.Method+" is not supported on "+r.URL.Path)
	})

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(handler.OpsConfig{
		Version:   cfg.Version,
		BuildTime: cfg.BuildTime,
		Clock:     cfg.Clock,
		Catalog:   cfg.Catalog,
		Pipeline:  cfg.Pipeline,
		Dataset:   cfg.Dataset,
	})
	metadataHandler := handler.NewMetadataHandler(cfg.Catalog)
	stationHandler := handler.NewStationHandler(cfg.Catalog)
	predictionHandler := handler.NewPredictionHandler(cfg.Pipeline, cfg.Logger)
	analysisHandler := handler.NewAnalysisHandler(cfg.Dataset)

	// Create rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (unlimited, polled by the platform)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		r.Group(func(r chi.Router) {
			r.Use(standardRateLimit)

			r.Get("/model", predictionHandler.GetModel)

			r.Route("/stations", func(r chi.Router) {
				r.Get("/", stationHandler.ListStations)
				r.Get("/{stationId}", stationHandler.GetStation)
			})

			r.Route("/metadata", func(r chi.Router) {
				r.Get("/states", metadataHandler.ListStates)
				r.Get("/cities", metadataHandler.ListCities)
				r.Get("/enums", metadataHandler.GetEnums)
			})

			r.Route("/analysis", func(r chi.Router) {
				r.Get("/overview", analysisHandler.Overview)
				r.Get("/states", analysisHandler.StateAverages)
				r.Get("/cities", analysisHandler.CityAverages)
				r.Get("/trends", analysisHandler.Trends)
				r.Get("/stations", analysisHandler.StationComparison)
			})

			r.With(middleware.RequireJSON).Post("/assessments", predictionHandler.CreateAssessment)
		})

		// Model inference - expensive compute, strict rate limiting
		r.With(expensiveRateLimit, middleware.RequireJSON).Post("/predictions", predictionHandler.CreatePrediction)
	})

	return r
}
