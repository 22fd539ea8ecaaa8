// Package metrics exposes Prometheus collectors for the archiver.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics owns the archiver's collectors. All methods are safe on a nil
// receiver so instrumentation stays optional for callers and tests.
type Metrics struct {
	outcomes   *prometheus.CounterVec
	retries    prometheus.Counter
	savedBytes prometheus.Counter
	runs       *prometheus.CounterVec
}

// New registers the collectors against reg. A nil reg falls back to the
// default registerer.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "archiver_urls_total",
			Help: "URLs that reached a terminal outcome, partitioned by outcome.",
		}, []string{"outcome"}),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "archiver_retries_total",
			Help: "Retry attempts after transient failures.",
		}),
		savedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "archiver_saved_bytes_total",
			Help: "Raw payload bytes written to the archive.",
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "archiver_runs_total",
			Help: "Archive runs partitioned by result.",
		}, []string{"result"}),
	}
	for _, c := range []prometheus.Collector{m.outcomes, m.retries, m.savedBytes, m.runs} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveOutcome counts one terminal outcome.
func (m *Metrics) ObserveOutcome(outcome string) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(outcome).Inc()
}

// ObserveRetry counts one retry attempt.
func (m *Metrics) ObserveRetry() {
	if m == nil {
		return
	}
	m.retries.Inc()
}

// ObserveSavedBytes counts payload bytes written to disk.
func (m *Metrics) ObserveSavedBytes(n int) {
	if m == nil {
		return
	}
	m.savedBytes.Add(float64(n))
}

// ObserveRun counts one finished run with its result label
// ("completed", "halted", or "canceled").
func (m *Metrics) ObserveRun(result string) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(result).Inc()
}
