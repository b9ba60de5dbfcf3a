package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservations(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveAttempt()
	m.ObserveAttempt()
	m.ObserveSynthesisFailure()
	m.ObserveOutcome(85, true)
	m.ObserveOutcome(40, false)

	assert.InDelta(t, 2, testutil.ToFloat64(m.Attempts), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SynthesisFailures), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Accepted), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Exhausted), 1e-9)
}

func TestNilReceiverIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.ObserveAttempt()
		m.ObserveSynthesisFailure()
		m.ObserveOutcome(0, false)
	})
}
