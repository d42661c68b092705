package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.EventsTotal.WithLabelValues("walk").Inc()
	m.Units.Set(2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsTotal.WithLabelValues("walk")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Units))

	n, err := testutil.GatherAndCount(reg, "arena_events_total", "arena_units")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestNew_TwiceOnSameRegistryPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	assert.Panics(t, func() { New(reg) })
}
