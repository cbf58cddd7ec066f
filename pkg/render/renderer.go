package render

import (
	"context"
	"log/slog"

	"github.com/vango-dev/dotrender/internal/errors"
	"github.com/vango-dev/dotrender/pkg/vdom"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for renderer spans.
const defaultTracerName = "dotrender"

// Renderer mounts vdom trees onto a Host. A Renderer keeps no per-tree
// state; everything a mounted tree needs lives in its records.
type Renderer struct {
	host    Host
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
	onError func(error)

	// depth counts the update callbacks currently running. Settle hooks
	// run when it drops back to zero.
	depth  int
	settle map[int]func()
	nextFn int
}

// New creates a Renderer for host.
func New(host Host, opts ...Option) *Renderer {
	r := &Renderer{
		host:    host,
		logger:  slog.Default(),
		tracer:  otel.Tracer(defaultTracerName),
		onError: PanicOnError,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render mounts tag as the last child of container using a Renderer built
// from opts.
func Render(host Host, tag *vdom.Tag, container Node, opts ...Option) (*Root, error) {
	return New(host, opts...).Mount(context.Background(), tag, container)
}

// Mount renders tag and appends it to container. Store bindings inside the
// tree stay active until the returned Root is unmounted.
//
// On failure the subscriptions created so far are released. Host mutations
// already applied are not rolled back.
func (r *Renderer) Mount(ctx context.Context, tag *vdom.Tag, container Node) (*Root, error) {
	_, span := r.tracer.Start(ctx, "dotrender.mount")
	defer span.End()

	root, err := r.mountRoot(tag, container)
	if err != nil {
		r.metrics.failed(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	stats := root.Stats()
	span.SetAttributes(
		attribute.String("dotrender.tag", tag.Name),
		attribute.Int("dotrender.records", stats.Records),
		attribute.Int("dotrender.handles", stats.Handles),
	)
	r.metrics.mounted()
	r.logger.Debug("dotrender: mounted",
		"tag", tag.Name,
		"records", stats.Records,
		"handles", stats.Handles,
	)
	return root, nil
}

func (r *Renderer) mountRoot(tag *vdom.Tag, container Node) (*Root, error) {
	if container == nil {
		return nil, errors.New("R003")
	}
	if err := tag.Err(); err != nil {
		return nil, err
	}

	scope := newRecord(vdom.KindElement, nil, 0)
	scope.node = container

	rec, err := r.mount(vdom.Element(tag), scope, 0)
	if err != nil {
		return nil, err
	}
	scope.children = []*Record{rec}

	if err := r.host.AppendChild(container, rec.node); err != nil {
		r.release(rec)
		return nil, hostErr("AppendChild", err)
	}
	return &Root{renderer: r, scope: scope, rec: rec}, nil
}

// release tears rec down and accounts for the released handles.
func (r *Renderer) release(rec *Record) int {
	if rec == nil || rec.torn {
		return 0
	}
	n := rec.Teardown()
	r.metrics.released(n)
	return n
}

// fail reports a patch failure.
func (r *Renderer) fail(err error) {
	r.metrics.failed(err)
	r.logger.Error("dotrender: patch failed", "error", err)
	r.onError(err)
}

// OnSettle registers fn to run after each outermost update of a tree
// mounted by r, once every nested patch has been applied. It returns a
// function that removes fn. Hooks run on the goroutine that called Set.
func (r *Renderer) OnSettle(fn func()) (cancel func()) {
	if r.settle == nil {
		r.settle = make(map[int]func())
	}
	id := r.nextFn
	r.nextFn++
	r.settle[id] = fn
	return func() { delete(r.settle, id) }
}

// enter marks the start of an update callback.
func (r *Renderer) enter() {
	r.depth++
}

// leave marks the end of an update callback and runs the settle hooks
// when it was the outermost one.
func (r *Renderer) leave() {
	r.depth--
	if r.depth > 0 {
		return
	}
	for i := 0; i < r.nextFn; i++ {
		if fn, ok := r.settle[i]; ok {
			fn()
		}
	}
}

// Root is a mounted tree.
type Root struct {
	renderer *Renderer
	scope    *Record
	rec      *Record
}

// Record returns the mount record of the root element.
func (root *Root) Record() *Record {
	return root.rec
}

// Container returns the host node the tree was mounted into.
func (root *Root) Container() Node {
	return root.scope.node
}

// Node returns the host node of the root element.
func (root *Root) Node() Node {
	return root.rec.node
}

// Stats summarizes the mounted tree.
func (root *Root) Stats() Stats {
	return root.rec.Stats()
}

// OnSettle registers fn with the renderer that mounted root.
func (root *Root) OnSettle(fn func()) (cancel func()) {
	return root.renderer.OnSettle(fn)
}

// Mounted reports whether the tree is still mounted.
func (root *Root) Mounted() bool {
	return !root.rec.torn
}

// Unmount releases every subscription of the tree and removes the root
// element from the container.
func (root *Root) Unmount() error {
	if root.rec.torn {
		return errors.New("R006")
	}
	r := root.renderer
	released := r.release(root.rec)
	if err := r.host.RemoveChild(root.scope.node, root.rec.node); err != nil {
		err = hostErr("RemoveChild", err)
		r.metrics.failed(err)
		return err
	}
	r.logger.Debug("dotrender: unmounted", "released", released)
	return nil
}
