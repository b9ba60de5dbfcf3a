// Package metrics holds the Prometheus instruments for the refinement
// pipeline. A Metrics value is optional everywhere it is accepted; a nil
// receiver is a no-op so library users pay nothing for observability they
// did not ask for.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics aggregates the pipeline instruments.
type Metrics struct {
	Attempts          prometheus.Counter
	SynthesisFailures prometheus.Counter
	FinalScore        prometheus.Histogram
	Accepted          prometheus.Counter
	Exhausted         prometheus.Counter
}

// New creates the instruments and registers them with reg. Pass
// prometheus.DefaultRegisterer for process-global metrics or a fresh
// registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Attempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flowforge",
			Subsystem: "pipeline",
			Name:      "attempts_total",
			Help:      "Synthesis attempts started, across all runs.",
		}),
		SynthesisFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flowforge",
			Subsystem: "pipeline",
			Name:      "synthesis_failures_total",
			Help:      "Attempts that produced no candidate graph.",
		}),
		FinalScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flowforge",
			Subsystem: "pipeline",
			Name:      "final_score",
			Help:      "Quality score of the returned workflow.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		Accepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flowforge",
			Subsystem: "pipeline",
			Name:      "accepted_total",
			Help:      "Runs that met the acceptance threshold.",
		}),
		Exhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flowforge",
			Subsystem: "pipeline",
			Name:      "exhausted_total",
			Help:      "Runs that returned a best-effort result below threshold.",
		}),
	}
	reg.MustRegister(m.Attempts, m.SynthesisFailures, m.FinalScore, m.Accepted, m.Exhausted)
	return m
}

// ObserveAttempt records one synthesis attempt. Safe on a nil receiver.
func (m *Metrics) ObserveAttempt() {
	if m == nil {
		return
	}
	m.Attempts.Inc()
}

// ObserveSynthesisFailure records an attempt that yielded no candidate.
func (m *Metrics) ObserveSynthesisFailure() {
	if m == nil {
		return
	}
	m.SynthesisFailures.Inc()
}

// ObserveOutcome records the terminal state of a run.
func (m *Metrics) ObserveOutcome(score int, accepted bool) {
	if m == nil {
		return
	}
	m.FinalScore.Observe(float64(score))
	if accepted {
		m.Accepted.Inc()
	} else {
		m.Exhausted.Inc()
	}
}
