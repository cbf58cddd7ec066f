package render_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/dotrender/el"
	"github.com/vango-dev/dotrender/pkg/headless"
	"github.com/vango-dev/dotrender/pkg/render"
	"github.com/vango-dev/dotrender/pkg/store"
)

// metricValue returns the value of the series of name whose labels match.
func metricValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if !labelsMatch(m, labels) {
				continue
			}
			switch {
			case m.Counter != nil:
				return m.GetCounter().GetValue()
			case m.Gauge != nil:
				return m.GetGauge().GetValue()
			case m.Histogram != nil:
				return float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return 0
}

func labelsMatch(m *dto.Metric, labels map[string]string) bool {
	for k, v := range labels {
		found := false
		for _, lp := range m.GetLabel() {
			if lp.GetName() == k && lp.GetValue() == v {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := render.NewMetrics(render.WithRegistry(reg))

	show := store.New(true)
	text := store.New("a")
	height := store.New("1px")

	doc := headless.NewDocument()
	root, err := render.Render(doc, el.Div(
		el.StyleBind("height", height),
		text,
		showDivOrSpan(show),
	), doc.Body(),
		render.WithMetrics(m),
		render.WithTracer(noop.NewTracerProvider().Tracer("test")),
	)
	require.NoError(t, err)

	assert.Equal(t, 1.0, metricValue(t, reg, "dotrender_render_mounts_total", nil))
	assert.Equal(t, 3.0, metricValue(t, reg, "dotrender_render_live_bindings", nil))

	text.Set("b")
	show.Set(false)
	height.Set("2px")

	assert.Equal(t, 1.0, metricValue(t, reg, "dotrender_render_patches_total", map[string]string{"mode": "in_place"}))
	assert.Equal(t, 1.0, metricValue(t, reg, "dotrender_render_patches_total", map[string]string{"mode": "replace"}))
	assert.Equal(t, 1.0, metricValue(t, reg, "dotrender_render_patches_total", map[string]string{"mode": "attribute"}))
	assert.Equal(t, 2.0, metricValue(t, reg, "dotrender_render_patch_duration_seconds", nil))
	assert.Equal(t, 1.0, metricValue(t, reg, "dotrender_render_teardowns_total", nil))

	require.NoError(t, root.Unmount())
	assert.Equal(t, 0.0, metricValue(t, reg, "dotrender_render_live_bindings", nil))
	assert.Equal(t, 2.0, metricValue(t, reg, "dotrender_render_teardowns_total", nil))

	_, err = render.Render(doc, el.Div(42), doc.Body(), render.WithMetrics(m))
	require.Error(t, err)
	assert.Equal(t, 1.0, metricValue(t, reg, "dotrender_render_errors_total", map[string]string{"code": "R001"}))
}

func TestMetricsOptions(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := render.NewMetrics(
		render.WithRegistry(reg),
		render.WithNamespace("app"),
		render.WithSubsystem("ui"),
		render.WithConstLabels(prometheus.Labels{"instance": "a"}),
		render.WithBuckets([]float64{0.001, 0.01}),
	)

	doc := headless.NewDocument()
	_, err := render.Render(doc, el.Div(), doc.Body(), render.WithMetrics(m))
	require.NoError(t, err)

	assert.Equal(t, 1.0, metricValue(t, reg, "app_ui_mounts_total", map[string]string{"instance": "a"}))
}

func TestNilMetricsRecordNothing(t *testing.T) {
	text := store.New("a")
	_, root := mount(t, el.Div(text), render.WithMetrics(nil))

	text.Set("b")
	require.NoError(t, root.Unmount())
}
