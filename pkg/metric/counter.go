package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Counter wraps a CounterVec with the name and help it was registered with.
type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

// Increment adds one to the series identified by the label values.
func (c *Counter) Increment(val ...string) {
	if c == nil {
		return
	}
	c.vec.WithLabelValues(val...).Inc()
}

// Vec exposes the underlying vector, mostly for tests.
func (c *Counter) Vec() *prometheus.CounterVec {
	return c.vec
}

// NewCounterWithRegistry creates a counter and registers it on reg.
// It panics if a collector with the same name is already registered.
func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) *Counter {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}, labels)

	reg.MustRegister(counter)

	return &Counter{
		Name: name,
		Help: help,
		vec:  counter,
	}
}
