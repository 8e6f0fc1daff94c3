package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "aquawatch"

// Rejection reasons recorded by PipelineMetrics.
const (
	ReasonUnknownStation  = "unknown_station"
	ReasonYearOutOfRange  = "year_out_of_range"
	ReasonInferenceFailed = "inference_failed"
)

// PipelineMetrics holds the Prometheus instruments of the prediction pipeline.
// A nil *PipelineMetrics is valid and records nothing.
type PipelineMetrics struct {
	Predictions       *prometheus.CounterVec // labels: tier
	Assessments       *prometheus.CounterVec // labels: tier
	Rejections        *prometheus.CounterVec // labels: reason
	InferenceDuration *prometheus.HistogramVec
	QualityScore      prometheus.Histogram
	DatasetRecords    prometheus.Gauge
	ModelLoaded       prometheus.Gauge
}

// NewPipelineMetrics creates the pipeline metrics and registers them with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	factory := promauto.With(reg)

	return &PipelineMetrics{
		Predictions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Completed predictions by drinking-safety tier.",
		}, []string{"tier"}),
		Assessments: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Assessments of measured values by drinking-safety tier.",
		}, []string{"tier"}),
		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_rejections_total",
			Help:      "Prediction requests that did not produce a result, by reason.",
		}, []string{"reason"}),
		InferenceDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "inference_duration_seconds",
			Help:      "Model inference latency in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}, []string{"model"}),
		QualityScore: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quality_score",
			Help:      "Distribution of predicted quality scores (0-7).",
			Buckets:   []float64{1, 2, 3, 4, 5, 6, 7},
		}),
		DatasetRecords: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_records",
			Help:      "Historical records loaded for analysis, 0 when unavailable.",
		}),
		ModelLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_loaded",
			Help:      "1 when the prediction model is loaded.",
		}),
	}
}

// ObservePrediction records a completed prediction.
func (m *PipelineMetrics) ObservePrediction(tier string, score float64) {
	if m == nil {
		return
	}
	m.Predictions.WithLabelValues(tier).Inc()
	m.QualityScore.Observe(score)
}

// ObserveAssessment records an assessment of measured values.
func (m *PipelineMetrics) ObserveAssessment(tier string) {
	if m == nil {
		return
	}
	m.Assessments.WithLabelValues(tier).Inc()
}

// ObserveRejection records a request rejected for reason.
func (m *PipelineMetrics) ObserveRejection(reason string) {
	if m == nil {
		return
	}
	m.Rejections.WithLabelValues(reason).Inc()
}

// ObserveInference records the latency of one model call.
func (m *PipelineMetrics) ObserveInference(model string, d time.Duration) {
	if m == nil {
		return
	}
	m.InferenceDuration.WithLabelValues(model).Observe(d.Seconds())
}

// SetDatasetRecords sets the number of loaded historical records.
func (m *PipelineMetrics) SetDatasetRecords(n int) {
	if m == nil {
		return
	}
	m.DatasetRecords.Set(float64(n))
}

// SetModelLoaded flags whether a model is available.
func (m *PipelineMetrics) SetModelLoaded(loaded bool) {
	if m == nil {
		return
	}
	if loaded {
		m.ModelLoaded.Set(1)
		return
	}
	m.ModelLoaded.Set(0)
}
