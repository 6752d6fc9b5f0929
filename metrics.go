package herald

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "herald"

// Metrics holds the prometheus collectors shared by every observable created
// with WithMetrics. Series are labelled with the observable's name, which
// must be unique among the observables sharing one Metrics.
// A nil *Metrics records nothing.
type Metrics struct {
	emissions   *prometheus.CounterVec
	deliveries  *prometheus.CounterVec
	errors      *prometheus.CounterVec
	filtered    *prometheus.CounterVec
	subscribers *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
// It panics when they are already registered, like promauto does.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	labels := []string{"observable"}
	return &Metrics{
		emissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "emissions_total",
			Help:      "Values pushed through Next that reached the subscriber loop",
		}, labels),
		deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "deliveries_total",
			Help:      "Listener invocations that completed without error",
		}, labels),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "delivery_errors_total",
			Help:      "Listener or chain step failures routed to an error handler",
		}, labels),
		filtered: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "filtered_total",
			Help:      "Values rejected by an observable-level filter",
		}, labels),
		subscribers: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "subscribers",
			Help:      "Registered subscriptions",
		}, labels),
	}
}

func (m *Metrics) emitted(name string) {
	if m != nil {
		m.emissions.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) delivered(name string) {
	if m != nil {
		m.deliveries.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) failed(name string) {
	if m != nil {
		m.errors.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) rejected(name string) {
	if m != nil {
		m.filtered.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) size(name string, n int) {
	if m != nil {
		m.subscribers.WithLabelValues(name).Set(float64(n))
	}
}
