package herald

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	o := New(0,
		WithName[int]("quotes"),
		WithMetrics[int](m),
		WithErrorHandler[int](DiscardErrors),
	)
	o.Subscribe(func(int) {})
	o.Subscribe(func(int) { panic("boom") })
	o.AddFilter().Deny(func(v int) bool { return v < 0 })

	o.Stream(1, -1, 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.emissions.WithLabelValues("quotes")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.deliveries.WithLabelValues("quotes")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.errors.WithLabelValues("quotes")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.filtered.WithLabelValues("quotes")))

	expected := `
# HELP herald_subscribers Registered subscriptions
# TYPE herald_subscribers gauge
herald_subscribers{observable="quotes"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "herald_subscribers"))

	o.Destroy()
	assert.Zero(t, testutil.ToFloat64(m.subscribers.WithLabelValues("quotes")))
}

func TestMetricsTrackUnsubscribe(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	o := New(0, WithName[int]("subs"), WithMetrics[int](m))
	gauge := m.subscribers.WithLabelValues("subs")

	a := o.Subscribe(func(int) {})
	o.Pipe().Once().Subscribe(func(int) {})
	assert.Equal(t, 2.0, testutil.ToFloat64(gauge))

	o.Next(1)
	assert.Equal(t, 1.0, testutil.ToFloat64(gauge))

	a.Unsubscribe()
	assert.Zero(t, testutil.ToFloat64(gauge))
}

func TestMetricsSharedByNamedObservables(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	left := New(0, WithName[int]("left"), WithMetrics[int](m))
	right := New(0, WithName[int]("right"), WithMetrics[int](m))

	left.Subscribe(func(int) {})
	left.Subscribe(func(int) {})
	right.Subscribe(func(int) {})
	left.Next(1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.subscribers.WithLabelValues("left")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.subscribers.WithLabelValues("right")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.emissions.WithLabelValues("left")))
	assert.Zero(t, testutil.ToFloat64(m.emissions.WithLabelValues("right")))
	assert.Equal(t, 2, left.Size())
	assert.Equal(t, 1, right.Size())
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.emitted("x")
		m.delivered("x")
		m.failed("x")
		m.rejected("x")
		m.size("x", 3)
	})
}

func TestNewMetricsTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)
	assert.Panics(t, func() { NewMetrics(reg) })
}
