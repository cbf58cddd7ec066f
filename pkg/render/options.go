package render

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the structured logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records renderer activity in m.
func WithMetrics(m *Metrics) Option {
	return func(r *Renderer) {
		r.metrics = m
	}
}

// WithTracer sets the tracer used for mount and patch spans.
// Default: the global tracer provider's "dotrender" tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Renderer) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// WithErrorHandler sets the function called when a patch fails. Patches run
// inside Store.Set, which has no error result; the default handler panics
// so the failure reaches the caller of Set.
func WithErrorHandler(fn func(error)) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.onError = fn
		}
	}
}

// PanicOnError is the default patch error handler.
func PanicOnError(err error) {
	panic(err)
}
