package observability

import (
	"context"

	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the workspace counters.
type Metrics struct {
	StatesAdded    *prometheus.CounterVec
	StatesRemoved  *prometheus.CounterVec
	Syncs          *prometheus.CounterVec
	DecodeFailures *prometheus.CounterVec
	ComputeErrors  *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them on reg (nil skips registration).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StatesAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "thermoprops_states_added_total",
			Help: "Total number of states added to workspaces",
		}, []string{"fluid"}),
		StatesRemoved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "thermoprops_states_removed_total",
			Help: "Total number of states removed from workspaces",
		}, []string{"fluid"}),
		Syncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "thermoprops_query_syncs_total",
			Help: "Workspace query synchronizations by direction",
		}, []string{"direction"}),
		DecodeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "thermoprops_decode_failures_total",
			Help: "State tokens or elements that failed to decode",
		}, []string{"kind"}),
		ComputeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "thermoprops_compute_errors_total",
			Help: "States that could not be evaluated",
		}, []string{"kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.StatesAdded, m.StatesRemoved, m.Syncs, m.DecodeFailures, m.ComputeErrors)
	}
	return m
}

// Hooks returns workspace hooks that increment the counters.
func (m *Metrics) Hooks() domain.WorkspaceHooks {
	return domain.WorkspaceHooks{
		OnStateAdded: func(_ context.Context, e *domain.StateEvent) {
			m.StatesAdded.WithLabelValues(e.Fluid).Inc()
		},
		OnStateRemoved: func(_ context.Context, e *domain.StateEvent) {
			m.StatesRemoved.WithLabelValues(e.Fluid).Inc()
		},
		OnSync: func(_ context.Context, e *domain.SyncEvent) {
			m.Syncs.WithLabelValues(string(e.Direction)).Inc()
		},
		OnDecodeFailure: func(_ context.Context, e *domain.FailureEvent) {
			m.DecodeFailures.WithLabelValues(e.Kind).Inc()
		},
		OnComputeError: func(_ context.Context, e *domain.FailureEvent) {
			m.ComputeErrors.WithLabelValues(e.Kind).Inc()
		},
	}
}
