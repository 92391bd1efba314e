package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"perfexp/internal/harness"
)

// Metrics is the Prometheus view of a run. It implements harness.Observer.
type Metrics struct {
	TrialsTotal   *prometheus.CounterVec
	TrialDuration *prometheus.HistogramVec
	AllocBytes    *prometheus.CounterVec
	CasesTotal    *prometheus.CounterVec
	MeanNanos     *prometheus.GaugeVec

	gatherer prometheus.Gatherer
}

var _ harness.Observer = (*Metrics)(nil)

// NewMetrics creates the collectors and registers them on a fresh registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.NewRegistry())
}

// NewMetricsWith registers the collectors on reg.
func NewMetricsWith(reg *prometheus.Registry) *Metrics {
	m := &Metrics{gatherer: reg}

	m.TrialsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "perfexp_trials_total",
			Help: "Timed trials of passed cases",
		},
		[]string{"group", "variant"},
	)

	// Micro-benchmark trials range from a few nanoseconds to tens of milliseconds.
	m.TrialDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "perfexp_trial_duration_seconds",
			Help:    "Wall time of one timed invocation",
			Buckets: prometheus.ExponentialBuckets(1e-8, 4, 14),
		},
		[]string{"group", "variant"},
	)

	m.AllocBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "perfexp_alloc_bytes_total",
			Help: "Heap bytes allocated by timed invocations",
		},
		[]string{"group", "variant"},
	)

	m.CasesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "perfexp_cases_total",
			Help: "Cases by outcome",
		},
		[]string{"group", "status"},
	)

	m.MeanNanos = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "perfexp_case_mean_nanoseconds",
			Help: "Mean trial duration of the latest passed run of a case",
		},
		[]string{"group", "variant", "params"},
	)

	reg.MustRegister(
		m.TrialsTotal,
		m.TrialDuration,
		m.AllocBytes,
		m.CasesTotal,
		m.MeanNanos,
	)

	return m
}

// ObserveMeasurement records one timed trial.
func (m *Metrics) ObserveMeasurement(s harness.Measurement) {
	g, v := s.Case.Group, s.Case.Variant
	m.TrialsTotal.WithLabelValues(g, v).Inc()
	m.TrialDuration.WithLabelValues(g, v).Observe(s.Duration.Seconds())
	if s.AllocBytes > 0 {
		m.AllocBytes.WithLabelValues(g, v).Add(float64(s.AllocBytes))
	}
}

// ObserveCase records a case outcome and, for passed cases, its mean.
func (m *Metrics) ObserveCase(r harness.CaseResult) {
	m.CasesTotal.WithLabelValues(r.Case.Group, string(r.Status)).Inc()
	if r.Status == harness.StatusPassed && len(r.Samples) > 0 {
		m.MeanNanos.WithLabelValues(r.Case.Group, r.Case.Variant, r.Case.Params.String()).Set(harness.MeanNanos(r.Samples))
	}
}

// Gatherer returns the registry the collectors live on.
func (m *Metrics) Gatherer() prometheus.Gatherer { return m.gatherer }

// Handler returns the Prometheus HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
