package dataset

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/aquawatch/aquawatch/internal/telemetry"
)

// ServiceConfig holds configuration for the dataset service.
type ServiceConfig struct {
	// Path is the semicolon-separated dataset file.
	Path string

	// Catalog resolves station ids.
	Catalog Catalog

	// Logger for service operations.
	Logger zerolog.Logger

	// Metrics is optional.
	Metrics *telemetry.PipelineMetrics
}

// Status reports whether the dataset is usable.
type Status struct {
	Available bool   `json:"available"`
	Path      string `json:"path"`
	Records   int    `json:"records"`
	Skipped   int    `json:"skipped"`
	Error     string `json:"error,omitempty"`
}

// Service owns the loaded dataset. A failed load leaves the service in
// degraded mode: Dataset returns ErrUnavailable and nothing else is affected.
type Service struct {
	path    string
	catalog Catalog
	logger  zerolog.Logger
	metrics *telemetry.PipelineMetrics

	mu      sync.RWMutex
	data    *Dataset
	loadErr error
}

// NewService creates a dataset service. Call Load before use.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		path:    cfg.Path,
		catalog: cfg.Catalog,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
		loadErr: fmt.Errorf("%w: not loaded", ErrUnavailable),
	}
}

// Load reads the dataset file. Errors are returned and also retained so
// that later calls to Dataset report them.
func (s *Service) Load(ctx context.Context) error {
	data, err := ReadFile(ctx, s.path, s.catalog)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.data = nil
		s.loadErr = fmt.Errorf("%w: %w", ErrUnavailable, err)
		s.metrics.SetDatasetRecords(0)
		s.logger.Warn().
			Err(err).
			Str("path", s.path).
			Msg("historical dataset unavailable, analysis disabled")
		return s.loadErr
	}

	s.data = data
	s.loadErr = nil
	s.metrics.SetDatasetRecords(data.Len())

	event := s.logger.Info()
	if data.Skipped() > 0 {
		event = s.logger.Warn()
	}
	event.
		Str("path", s.path).
		Int("records", data.Len()).
		Int("skipped", data.Skipped()).
		Msg("historical dataset loaded")
	return nil
}

// Dataset returns the loaded dataset or an error wrapping ErrUnavailable.
func (s *Service) Dataset() (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, s.loadErr
	}
	return s.data, nil
}

// Status describes the current dataset state.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{Path: s.path}
	if s.data == nil {
		st.Error = s.loadErr.Error()
		return st
	}
	st.Available = true
	st.Records = s.data.Len()
	st.Skipped = s.data.Skipped()
	return st
}
