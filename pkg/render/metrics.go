package render

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/dotrender/internal/errors"
)

// MetricsConfig configures renderer metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "dotrender").
	Namespace string

	// Subsystem is the metrics subsystem (default: "render").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for patch duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures renderer metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "dotrender",
		Subsystem: "render",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Patch modes reported in the patches_total metric.
const (
	patchInPlace = "in_place"
	patchReplace = "replace"
	patchAttr    = "attribute"
)

// Metrics holds the Prometheus collectors of a Renderer. A nil *Metrics
// records nothing.
type Metrics struct {
	mounts        prometheus.Counter
	patches       *prometheus.CounterVec
	patchDuration prometheus.Histogram
	teardowns     prometheus.Counter
	bindings      prometheus.Gauge
	errors        *prometheus.CounterVec
}

// NewMetrics registers the renderer collectors.
//
// Metrics collected:
//   - dotrender_render_mounts_total: roots mounted
//   - dotrender_render_patches_total: slot and attribute patches by mode
//   - dotrender_render_patch_duration_seconds: structural patch duration
//   - dotrender_render_teardowns_total: records torn down by a patch or unmount
//   - dotrender_render_live_bindings: store subscriptions held by mounted trees
//   - dotrender_render_errors_total: failures by error code
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		mounts: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mounts_total",
			Help:        "Total number of mounted roots",
			ConstLabels: config.ConstLabels,
		}),

		patches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_total",
			Help:        "Total number of patches applied, by mode",
			ConstLabels: config.ConstLabels,
		}, []string{"mode"}),

		patchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patch_duration_seconds",
			Help:        "Duration of slot patches in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		teardowns: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "teardowns_total",
			Help:        "Total number of content records torn down",
			ConstLabels: config.ConstLabels,
		}),

		bindings: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_bindings",
			Help:        "Store subscriptions currently owned by mounted trees",
			ConstLabels: config.ConstLabels,
		}),

		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "errors_total",
			Help:        "Total number of mount and patch failures, by error code",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),
	}
}

func (m *Metrics) mounted() {
	if m == nil {
		return
	}
	m.mounts.Inc()
}

func (m *Metrics) bound() {
	if m == nil {
		return
	}
	m.bindings.Inc()
}

func (m *Metrics) released(handles int) {
	if m == nil {
		return
	}
	m.teardowns.Inc()
	m.bindings.Sub(float64(handles))
}

func (m *Metrics) patched(mode string, d time.Duration) {
	if m == nil {
		return
	}
	m.patches.WithLabelValues(mode).Inc()
	if mode != patchAttr {
		m.patchDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) failed(err error) {
	if m == nil {
		return
	}
	code := "unknown"
	if e := errors.FromError(err, ""); e != nil && e.Code != "" {
		code = e.Code
	}
	m.errors.WithLabelValues(code).Inc()
}
