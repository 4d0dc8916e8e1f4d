package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storefront"

// Metrics groups the collectors exported by the storefront core.
type Metrics struct {
	fetchDuration *prometheus.HistogramVec
	cartMutations *prometheus.CounterVec
	cartItems     prometheus.Gauge
}

// New creates the collectors and registers them with reg. A nil registerer
// yields working but unregistered collectors.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "catalog_fetch_duration_seconds",
				Help:      "Duration of remote catalog retrievals",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"resource", "outcome"},
		),
		cartMutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cart_mutations_total",
				Help:      "Cart mutations by operation",
			},
			[]string{"op"},
		),
		cartItems: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "cart_items",
				Help:      "Number of units currently in the cart",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.fetchDuration, m.cartMutations, m.cartItems)
	}
	return m
}

// ObserveFetch records one catalog retrieval.
func (m *Metrics) ObserveFetch(resource string, started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.fetchDuration.WithLabelValues(resource, outcome).Observe(time.Since(started).Seconds())
}

// CartMutated records a committed cart mutation and the resulting unit count.
func (m *Metrics) CartMutated(op string, itemCount int) {
	if m == nil {
		return
	}
	m.cartMutations.WithLabelValues(op).Inc()
	m.cartItems.Set(float64(itemCount))
}
