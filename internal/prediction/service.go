package prediction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aquawatch/aquawatch/internal/geography"
	"github.com/aquawatch/aquawatch/internal/inference"
	"github.com/aquawatch/aquawatch/internal/telemetry"
	"github.com/aquawatch/aquawatch/internal/waterquality"
)

// ServiceConfig holds configuration for the prediction service.
type ServiceConfig struct {
	// Catalog validates station ids.
	Catalog Catalog

	// Predictor is the loaded model.
	Predictor inference.Predictor

	// Logger for service operations.
	Logger zerolog.Logger

	// Clock stamps reports and times inference (default: real clock).
	Clock clockwork.Clock

	// Tracer records one span per prediction (default: global tracer).
	Tracer trace.Tracer

	// Metrics is optional.
	Metrics *telemetry.PipelineMetrics
}

// Service runs predictions. It holds no mutable state and is safe for
// concurrent use.
type Service struct {
	catalog   Catalog
	predictor inference.Predictor
	columns   []string
	info      inference.Info
	logger    zerolog.Logger
	clock     clockwork.Clock
	tracer    trace.Tracer
	metrics   *telemetry.PipelineMetrics
}

// NewService creates a new prediction service.
func NewService(cfg ServiceConfig) *Service {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = telemetry.Tracer()
	}

	return &Service{
		catalog:   cfg.Catalog,
		predictor: cfg.Predictor,
		columns:   cfg.Predictor.ExpectedColumns(),
		info:      inference.Describe(cfg.Predictor),
		logger:    cfg.Logger,
		clock:     clock,
		tracer:    tracer,
		metrics:   cfg.Metrics,
	}
}

// Validate checks a request against the accepted year range and the catalog.
func (s *Service) Validate(req waterquality.Request) (geography.Station, error) {
	if req.Year < MinYear || req.Year > MaxYear {
		return geography.Station{}, fmt.Errorf("%w: %d not in [%d, %d]", ErrYearOutOfRange, req.Year, MinYear, MaxYear)
	}
	station, err := s.catalog.Lookup(req.StationID)
	if err != nil {
		return geography.Station{}, fmt.Errorf("%w: %d", ErrUnknownStation, req.StationID)
	}
	return station, nil
}

// Predict validates the request, runs the model and scores the result.
// Invalid requests never reach the model and no partial report is returned.
func (s *Service) Predict(ctx context.Context, req waterquality.Request) (*Report, error) {
	ctx, span := s.tracer.Start(ctx, "prediction.Predict", trace.WithAttributes(
		attribute.Int("station.id", req.StationID),
		attribute.Int("prediction.year", req.Year),
	))
	defer span.End()

	station, err := s.Validate(req)
	if err != nil {
		s.reject(span, err)
		return nil, err
	}

	features := waterquality.Encode(req, s.columns)

	start := s.clock.Now()
	raw, err := s.predictor.Predict(ctx, features)
	s.metrics.ObserveInference(s.info.Type, s.clock.Since(start))
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrInference, err)
		s.reject(span, err)
		s.logger.Error().Err(err).Int("station_id", req.StationID).Int("year", req.Year).Msg("inference failed")
		return nil, err
	}

	evaluation, err := Evaluate(raw)
	if err != nil {
		err = fmt.Errorf("%w: %w: %w", ErrInference, inference.ErrInvalidPrediction, err)
		s.reject(span, err)
		s.logger.Error().Err(err).Int("station_id", req.StationID).Int("year", req.Year).Msg("model output cannot be scored")
		return nil, err
	}

	report := &Report{
		ID:          uuid.NewString(),
		Station:     station,
		Year:        req.Year,
		Prediction:  raw,
		GeneratedAt: s.clock.Now().UTC(),
		Evaluation:  evaluation,
	}

	tier := report.Assessment.Tier
	span.SetAttributes(
		attribute.String("quality.tier", string(tier)),
		attribute.Float64("quality.score", report.Assessment.TotalScore),
	)
	s.metrics.ObservePrediction(string(tier), report.Assessment.TotalScore)

	s.logger.Debug().
		Str("report_id", report.ID).
		Int("station_id", station.ID).
		Int("year", req.Year).
		Str("tier", string(tier)).
		Float64("score", report.Assessment.TotalScore).
		Msg("prediction completed")

	return report, nil
}

// AssessMeasured derives TDS for measured pollutant values and scores them
// without consulting the model. Values whose derived TDS is not finite are
// rejected with an error wrapping waterquality.ErrNotFinite.
func (s *Service) AssessMeasured(values waterquality.PredictionResult) (Evaluation, error) {
	e, err := Evaluate(values)
	if err != nil {
		return Evaluation{}, err
	}
	s.metrics.ObserveAssessment(string(e.Assessment.Tier))
	return e, nil
}

// ModelInfo describes the loaded model.
func (s *Service) ModelInfo() ModelInfo {
	info := ModelInfo{
		Type:            s.info.Type,
		Features:        s.info.Features,
		TrainedStations: countStationColumns(s.columns),
		Parameters:      waterquality.AllParameters(),
		TDSFormula:      fmt.Sprintf("NO3 + SO4 + CL + %g", waterquality.TDSBaseline),
	}
	if hr, ok := s.predictor.(inference.HealthReporter); ok {
		h := hr.Health()
		info.Health = &h
	}
	return info
}

func (s *Service) reject(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	switch {
	case errors.Is(err, ErrYearOutOfRange):
		s.metrics.ObserveRejection(telemetry.ReasonYearOutOfRange)
	case errors.Is(err, ErrUnknownStation):
		s.metrics.ObserveRejection(telemetry.ReasonUnknownStation)
	default:
		s.metrics.ObserveRejection(telemetry.ReasonInferenceFailed)
	}
}

// Evaluate derives TDS from six pollutant values and scores all seven.
// It fails with waterquality.ErrNotFinite when any value, including the
// derived TDS, is NaN or infinite.
func Evaluate(raw waterquality.PredictionResult) (Evaluation, error) {
	ext := waterquality.Extend(raw)
	if err := ext.CheckFinite(); err != nil {
		return Evaluation{}, err
	}
	return Evaluation{
		Values:     ext.Values(),
		Extended:   ext,
		Assessment: waterquality.Assess(ext),
		TDSBand:    waterquality.ClassifyTDS(ext.TDS()),
		Chart:      BarChart(ext),
	}, nil
}
