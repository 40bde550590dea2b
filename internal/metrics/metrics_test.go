package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RPCRequests.WithLabelValues("/trips.v1.TripService/GetTrip", "ok").Inc()
	m.RPCDuration.WithLabelValues("/trips.v1.TripService/GetTrip").Observe(0.01)
	m.TransfersPlanned.Add(3)
	m.VersionConflicts.Inc()

	assert.Equal(t, 3.0, testutil.ToFloat64(m.TransfersPlanned))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.VersionConflicts))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.IntegrityErrors))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "trips_rpc_requests_total")
	assert.Contains(t, names, "trips_rpc_duration_seconds")
}

func TestNewTwiceOnSameRegistryPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
