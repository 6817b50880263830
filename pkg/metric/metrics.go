package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sidenav"

// Active-miss reasons.
const (
	ReasonNoMatch       = "no_match"
	ReasonEmptyLocation = "empty_location"
)

// Metrics holds the navigation counters.
// Each instance owns an isolated registry so tests and multiple menus never collide.
type Metrics struct {
	Registry *prometheus.Registry

	// Renders counts render passes by result ("active" or "none").
	Renders *Counter

	// IconMisses counts configured icon identifiers the registry could not resolve.
	IconMisses *Counter

	// ActiveMisses counts render passes where no item was active, by reason.
	ActiveMisses *Counter

	// BuildInfo is set to 1 with the running version as a label.
	BuildInfo *prometheus.GaugeVec
}

// NewMetrics creates the navigation counters on a fresh registry.
func NewMetrics(version string) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		Renders: NewCounterWithRegistry(reg, namespace+"_renders_total",
			"Total number of navigation render passes.", "result"),
		IconMisses: NewCounterWithRegistry(reg, namespace+"_icon_misses_total",
			"Total number of icon identifiers that resolved to no glyph.", "icon"),
		ActiveMisses: NewCounterWithRegistry(reg, namespace+"_active_misses_total",
			"Total number of render passes with no active item.", "reason"),
		BuildInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: namespace + "_build_info",
			Help: "Build information about the running sidenav.",
		}, []string{"version"}),
	}

	reg.MustRegister(m.BuildInfo)
	m.BuildInfo.WithLabelValues(version).Set(1)

	return m
}

// Handler returns an HTTP handler serving the metrics of this instance.
func (m *Metrics) Handler() http.Handler {
	return GetHandlerForRegistry(m.Registry)
}

// GetHandlerForRegistry returns an HTTP handler for serving Prometheus metrics from a custom registry.
func GetHandlerForRegistry(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
