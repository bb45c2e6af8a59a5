package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	Writes     *prometheus.CounterVec
	Rejections *prometheus.CounterVec
	Rollbacks  prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		Writes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "claimsys_record_writes_total",
			Help: "Committed record mutations by entity and operation",
		}, []string{"entity", "op"}),
		Rejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "claimsys_rejections_total",
			Help: "Mutations rejected by validation or business rules",
		}, []string{"entity", "kind"}),
		Rollbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "claimsys_tx_rollbacks_total",
			Help: "Units of work rolled back for any reason",
		}),
	}
}

func (m *Metrics) RecordWrite(entity, op string) {
	m.Writes.WithLabelValues(entity, op).Inc()
}

func (m *Metrics) RecordRejection(entity, kind string) {
	m.Rejections.WithLabelValues(entity, kind).Inc()
}

func (m *Metrics) RecordRollback() {
	m.Rollbacks.Inc()
}
