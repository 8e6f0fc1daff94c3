// Package main provides the entrypoint for the AquaWatch API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/aquawatch/aquawatch/internal/api"
	"github.com/aquawatch/aquawatch/internal/api/middleware"
	"github.com/aquawatch/aquawatch/internal/config"
	"github.com/aquawatch/aquawatch/internal/dataset"
	"github.com/aquawatch/aquawatch/internal/geography"
	"github.com/aquawatch/aquawatch/internal/inference"
	"github.com/aquawatch/aquawatch/internal/prediction"
	"github.com/aquawatch/aquawatch/internal/telemetry"
)

// ServiceName identifies this binary in logs and traces.
const ServiceName = "aquawatch-api"

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", ServiceName).
		Str("version", Version).
		Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	log = log.Level(cfg.LogLevel)

	log.Info().
		Str("build_time", BuildTime).
		Str("environment", cfg.Environment).
		Msg("starting AquaWatch API")

	if err := run(context.Background(), cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// Initialize OpenTelemetry
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    ServiceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.OTelEnabled,
	})
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.OTelEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	httpMetrics, err := middleware.NewMetrics(nil)
	if err != nil {
		return err
	}
	pipelineMetrics := telemetry.NewPipelineMetrics(prometheus.DefaultRegisterer)

	// Station catalog
	catalog, err := geography.Load(cfg.StationsPath)
	if err != nil {
		return err
	}
	log.Info().Int("stations", catalog.Len()).Str("path", cfg.StationsPath).Msg("station catalog loaded")

	// Model artifacts; the service cannot predict without them
	predictor, err := inference.Load(cfg.Inference(log))
	if err != nil {
		return err
	}
	untrained, err := prediction.CheckColumns(predictor.ExpectedColumns(), catalog)
	if err != nil {
		return err
	}
	if len(untrained) > 0 {
		log.Warn().
			Ints("station_ids", untrained).
			Msg("catalog stations without a model column, predictions use the year only")
	}
	pipelineMetrics.SetModelLoaded(true)

	pipeline := prediction.NewService(prediction.ServiceConfig{
		Catalog:   catalog,
		Predictor: predictor,
		Logger:    log,
		Metrics:   pipelineMetrics,
	})

	// Historical dataset; analysis degrades without it
	data := dataset.NewService(dataset.ServiceConfig{
		Path:    cfg.DatasetPath,
		Catalog: catalog,
		Logger:  log,
		Metrics: pipelineMetrics,
	})
	_ = data.Load(ctx)

	router := api.NewRouter(api.RouterConfig{
		Version:    Version,
		BuildTime:  BuildTime,
		Logger:     log,
		Metrics:    httpMetrics,
		Gatherer:   prometheus.DefaultGatherer,
		RequireTLS: cfg.RequireTLS,
		Catalog:    catalog,
		Pipeline:   pipeline,
		Dataset:    data,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.ModelTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for interrupt signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down server")
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
