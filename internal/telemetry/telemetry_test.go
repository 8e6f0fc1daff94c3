package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquawatch/aquawatch/internal/telemetry"
)

func TestInit_Disabled(t *testing.T) {
	ctx := context.Background()

	provider, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "aquawatch-test",
		ServiceVersion: "1.0.0",
		Environment:    "test",
		OTLPEndpoint:   "localhost:4317",
		Enabled:        false,
	})

	require.NoError(t, err)
	assert.NotNil(t, provider.Tracer)
	assert.NotNil(t, provider.Meter)
	assert.Nil(t, provider.TracerProvider)
	assert.Nil(t, provider.MeterProvider)
	assert.NoError(t, provider.Shutdown(ctx))
}

func TestProvider_Shutdown_NilProviders(t *testing.T) {
	provider := &telemetry.Provider{}
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestSampler(t *testing.T) {
	assert.Contains(t, telemetry.Sampler(0).Description(), "AlwaysOnSampler")
	assert.Contains(t, telemetry.Sampler(1.5).Description(), "AlwaysOnSampler")
	assert.Contains(t, telemetry.Sampler(0.25).Description(), "TraceIDRatioBased")
}

func TestGlobalInstruments(t *testing.T) {
	assert.NotNil(t, telemetry.Tracer())
	assert.NotNil(t, telemetry.Meter())
}

func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	out := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		out[f.GetName()] = f
	}
	return out
}

func TestPipelineMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := telemetry.NewPipelineMetrics(reg)

	m.ObservePrediction("SAFE", 7)
	m.ObservePrediction("SAFE", 6.5)
	m.ObservePrediction("UNSAFE", 2)
	m.ObserveAssessment("CONDITIONAL")
	m.ObserveRejection(telemetry.ReasonUnknownStation)
	m.ObserveInference("LinearRegression", 2*time.Millisecond)
	m.SetDatasetRecords(2861)
	m.SetModelLoaded(true)

	families := gather(t, reg)

	predictions := families["aquawatch_predictions_total"]
	require.NotNil(t, predictions)
	counts := map[string]float64{}
	for _, metric := range predictions.GetMetric() {
		counts[metric.GetLabel()[0].GetValue()] = metric.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{"SAFE": 2, "UNSAFE": 1}, counts)

	score := families["aquawatch_quality_score"].GetMetric()[0].GetHistogram()
	assert.Equal(t, uint64(3), score.GetSampleCount())
	assert.Equal(t, 15.5, score.GetSampleSum())

	assert.Equal(t, 2861.0, families["aquawatch_dataset_records"].GetMetric()[0].GetGauge().GetValue())
	assert.Equal(t, 1.0, families["aquawatch_model_loaded"].GetMetric()[0].GetGauge().GetValue())
	assert.Equal(t, 1.0, families["aquawatch_prediction_rejections_total"].GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, 1.0, families["aquawatch_assessments_total"].GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, uint64(1), families["aquawatch_inference_duration_seconds"].GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestPipelineMetrics_Nil(t *testing.T) {
	var m *telemetry.PipelineMetrics

	assert.NotPanics(t, func() {
		m.ObservePrediction("SAFE", 7)
		m.ObserveAssessment("SAFE")
		m.ObserveRejection(telemetry.ReasonYearOutOfRange)
		m.ObserveInference("x", time.Second)
		m.SetDatasetRecords(1)
		m.SetModelLoaded(false)
	})
}
