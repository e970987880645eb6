// internal/app/system/mongoconn/metrics.go
package mongoconn

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes the manager's state to Prometheus. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	state    prometheus.Gauge
	attempts *prometheus.CounterVec
}

// NewMetrics registers the connection collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		state: f.NewGauge(prometheus.GaugeOpts{
			Name: "coursecatalog_mongo_connection_state",
			Help: "Connection state: 0 disconnected, 1 connecting, 2 connected, 3 failed.",
		}),
		attempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "coursecatalog_mongo_connect_attempts_total",
			Help: "Connection attempts by result.",
		}, []string{"result"}),
	}
}

func (m *Metrics) observeState(s State) {
	if m == nil {
		return
	}
	m.state.Set(float64(s))
}

func (m *Metrics) observeAttempt(result string) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(result).Inc()
}
