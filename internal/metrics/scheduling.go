package metrics

import "github.com/prometheus/client_golang/prometheus"

// SchedulingMetrics counts scheduling operations and their rollbacks.
type SchedulingMetrics struct {
	operationsTotal *prometheus.CounterVec
	rollbacksTotal  *prometheus.CounterVec
	remoteLatency   *prometheus.HistogramVec
}

func NewSchedulingMetrics(reg prometheus.Registerer) *SchedulingMetrics {
	m := &SchedulingMetrics{
		operationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Name:      "operations_total",
			Help:      "Scheduling operations by outcome",
		}, []string{"op", "outcome"}),
		rollbacksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Name:      "rollbacks_total",
			Help:      "Optimistic changes reverted after a remote failure",
		}, []string{"op"}),
		remoteLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "scheduler",
			Name:      "remote_latency_seconds",
			Help:      "Latency of persistence calls made by scheduling operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.operationsTotal, m.rollbacksTotal, m.remoteLatency)
	return m
}

func (m *SchedulingMetrics) ObserveOperation(op, outcome string) {
	if m == nil {
		return
	}
	m.operationsTotal.WithLabelValues(op, outcome).Inc()
}

func (m *SchedulingMetrics) ObserveRollback(op string) {
	if m == nil {
		return
	}
	m.rollbacksTotal.WithLabelValues(op).Inc()
}

func (m *SchedulingMetrics) ObserveRemoteLatency(op string, seconds float64) {
	if m == nil {
		return
	}
	m.remoteLatency.WithLabelValues(op).Observe(seconds)
}
