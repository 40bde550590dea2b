// Package metrics holds the Prometheus collectors of the trip service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups every collector the server exports.
type Metrics struct {
	RPCRequests      *prometheus.CounterVec
	RPCDuration      *prometheus.HistogramVec
	TransfersPlanned prometheus.Counter
	IntegrityErrors  prometheus.Counter
	VersionConflicts prometheus.Counter
}

// New creates the collectors and registers them with reg.
// Tests pass a fresh prometheus.NewRegistry() to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trips_rpc_requests_total",
			Help: "RPCs handled, by procedure and connect code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trips_rpc_duration_seconds",
			Help:    "RPC latency by procedure.",
			Buckets: prometheus.DefBuckets,
		}, []string{"procedure"}),
		TransfersPlanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trips_transfers_planned_total",
			Help: "Transfers produced by the settlement planner.",
		}),
		IntegrityErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trips_integrity_errors_total",
			Help: "Settlement plans rejected because balances did not net to zero.",
		}),
		VersionConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trips_version_conflicts_total",
			Help: "Saves rejected because the trip changed since it was read.",
		}),
	}
	reg.MustRegister(m.RPCRequests, m.RPCDuration, m.TransfersPlanned, m.IntegrityErrors, m.VersionConflicts)
	return m
}
