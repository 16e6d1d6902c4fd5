package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/veridoc/veridoc/internal/model"
)

// Metrics tracks verification activity for the /metrics endpoint
type Metrics struct {
	registry *prometheus.Registry

	runsTotal     *prometheus.CounterVec
	verdictsTotal *prometheus.CounterVec
	runDuration   prometheus.Histogram
}

// NewMetrics creates and registers the server's collectors
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "veridoc_runs_total",
			Help: "Verification runs by outcome.",
		}, []string{"outcome"}),
		verdictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "veridoc_verdicts_total",
			Help: "Claim verdicts by label.",
		}, []string{"verdict"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "veridoc_run_duration_seconds",
			Help:    "End-to-end duration of verification runs.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}

	registry.MustRegister(m.runsTotal, m.verdictsTotal, m.runDuration)
	return m
}

// ObserveRun records a completed run
func (m *Metrics) ObserveRun(run *model.RunResult) {
	m.runsTotal.WithLabelValues("complete").Inc()
	m.runDuration.Observe(float64(run.Duration) / float64(time.Second))
	for verdict, count := range run.Tally() {
		m.verdictsTotal.WithLabelValues(string(verdict)).Add(float64(count))
	}
}

// ObserveFailure records a run that failed before producing a result
func (m *Metrics) ObserveFailure() {
	m.runsTotal.WithLabelValues("failed").Inc()
}
