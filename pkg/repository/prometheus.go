package repository

import "github.com/prometheus/client_golang/prometheus"

// PrometheusMetricsRecorder exports operation timings and outcomes through
// a prometheus registry.
type PrometheusMetricsRecorder struct {
	durations *prometheus.HistogramVec
	results   *prometheus.CounterVec
}

// Compile-time contract assertion.
var _ MetricsRecorder = (*PrometheusMetricsRecorder)(nil)

// NewPrometheusMetricsRecorder constructs a recorder and registers its
// collectors with reg. A nil reg falls back to the default registerer.
func NewPrometheusMetricsRecorder(namespace string, reg prometheus.Registerer) (*PrometheusMetricsRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	rec := &PrometheusMetricsRecorder{
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "repository",
			Name:      "operation_duration_seconds",
			Help:      "Duration of repository operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "repository",
			Name:      "operation_results_total",
			Help:      "Repository operation outcomes by status.",
		}, []string{"operation", "status"}),
	}
	if err := reg.Register(rec.durations); err != nil {
		return nil, err
	}
	if err := reg.Register(rec.results); err != nil {
		return nil, err
	}
	return rec, nil
}

// RecordDuration observes the elapsed time for an operation.
func (r *PrometheusMetricsRecorder) RecordDuration(operation string, seconds float64) {
	r.durations.WithLabelValues(operation).Observe(seconds)
}

// RecordResult increments the counter for an operation/status pair.
func (r *PrometheusMetricsRecorder) RecordResult(operation, status string) {
	r.results.WithLabelValues(operation, status).Inc()
}
