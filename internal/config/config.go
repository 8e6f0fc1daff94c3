// Package config reads service settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/aquawatch/aquawatch/internal/inference"
)

// Config holds all service settings.
type Config struct {
	Port        string
	Environment string
	LogLevel    zerolog.Level

	ModelKind        inference.Kind
	ModelPath        string
	ModelColumnsPath string
	ModelServerURL   string
	ModelTimeout     time.Duration

	DatasetPath  string
	StationsPath string

	OTelEnabled  bool
	OTLPEndpoint string

	RequireTLS      bool
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment, applying defaults where unset.
func Load() (*Config, error) {
	level, err := zerolog.ParseLevel(getEnvOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	modelTimeout, err := parseDuration("MODEL_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	otelEnabled, err := parseBool("OTEL_ENABLED")
	if err != nil {
		return nil, err
	}
	requireTLS, err := parseBool("REQUIRE_TLS")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:             getEnvOrDefault("APP_PORT", "8080"),
		Environment:      getEnvOrDefault("APP_ENV", "development"),
		LogLevel:         level,
		ModelKind:        inference.Kind(getEnvOrDefault("MODEL_KIND", string(inference.KindLinear))),
		ModelPath:        getEnvOrDefault("MODEL_PATH", "pollution_model.json"),
		ModelColumnsPath: getEnvOrDefault("MODEL_COLUMNS_PATH", "model_columns.json"),
		ModelServerURL:   os.Getenv("MODEL_SERVER_URL"),
		ModelTimeout:     modelTimeout,
		DatasetPath:      getEnvOrDefault("DATASET_PATH", "PB_All_2000_2021.csv"),
		StationsPath:     os.Getenv("STATIONS_PATH"),
		OTelEnabled:      otelEnabled,
		OTLPEndpoint:     getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		RequireTLS:       requireTLS,
		ShutdownTimeout:  shutdownTimeout,
	}

	if port, err := strconv.Atoi(cfg.Port); err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid APP_PORT %q", cfg.Port)
	}
	switch cfg.ModelKind {
	case inference.KindLinear:
	case inference.KindRemote:
		if cfg.ModelServerURL == "" {
			return nil, errors.New("MODEL_SERVER_URL is required when MODEL_KIND is remote")
		}
	default:
		return nil, fmt.Errorf("invalid MODEL_KIND %q: want %q or %q", cfg.ModelKind, inference.KindLinear, inference.KindRemote)
	}

	return cfg, nil
}

// Inference returns the model loading settings.
func (c *Config) Inference(logger zerolog.Logger) inference.Config {
	return inference.Config{
		Kind:        c.ModelKind,
		ModelPath:   c.ModelPath,
		ColumnsPath: c.ModelColumnsPath,
		ServerURL:   c.ModelServerURL,
		Timeout:     c.ModelTimeout,
		Logger:      logger,
	}
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive duration", key)
	}
	return d, nil
}

func parseBool(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", key, v)
	}
	return b, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
