package hashrouter

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultMatched   = "matched"
	resultUnmatched = "unmatched"
)

// Metrics counts dispatches per route and tracks the size of the route
// table. A nil *Metrics records nothing.
type Metrics struct {
	dispatches *prometheus.CounterVec
	routes     prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg, if reg is
// not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hashrouter",
			Name:      "dispatches_total",
			Help:      "Number of dispatched fragments by matched route and result.",
		}, []string{"route", "result"}),
		routes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hashrouter",
			Name:      "routes",
			Help:      "Number of registered routes.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.dispatches, m.routes)
	}

	return m
}

func (m *Metrics) observe(route string, matched bool) {
	if m == nil {
		return
	}

	result := resultUnmatched
	if matched {
		result = resultMatched
	}
	m.dispatches.WithLabelValues(route, result).Inc()
}

func (m *Metrics) setRoutes(n int) {
	if m == nil {
		return
	}
	m.routes.Set(float64(n))
}
