package render

import (
	"context"
	"time"

	"github.com/vango-dev/dotrender/pkg/vdom"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// patch reconciles a dynamic slot with a newly emitted child.
func (r *Renderer) patch(slot *Record, next vdom.Child) {
	// A slot torn down earlier in the same notification pass.
	if slot.torn {
		return
	}
	r.enter()
	defer r.leave()

	start := time.Now()
	_, span := r.tracer.Start(context.Background(), "dotrender.patch")
	defer span.End()

	mode, err := r.reconcile(slot, next)
	span.SetAttributes(
		attribute.String("dotrender.next", next.Kind().String()),
		attribute.String("dotrender.mode", mode),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.fail(err)
		return
	}
	r.metrics.patched(mode, time.Since(start))
}

// reconcile updates text in place when both the old and new content are
// text and the host supports it. Otherwise it renders next detached, puts
// it where the old content was, removes the old node and tears the old
// record down.
func (r *Renderer) reconcile(slot *Record, next vdom.Child) (string, error) {
	prev := slot.Content()

	if prev.kind == vdom.KindText && next.Kind() == vdom.KindText {
		if ts, ok := r.host.(TextSetter); ok {
			return patchInPlace, hostErr("SetText", ts.SetText(prev.node, next.TextValue()))
		}
	}

	fresh, err := r.mount(next, slot, 0)
	if err != nil {
		return patchReplace, err
	}

	parent := slot.hostParent()
	oldNode := prev.firstNode()
	if n := fresh.firstNode(); n != nil {
		anchor := oldNode
		if anchor == nil {
			anchor = slot.anchor()
		}
		if err := r.insert(parent, n, anchor); err != nil {
			r.release(fresh)
			return patchReplace, err
		}
	}

	slot.children[0] = fresh

	var removeErr error
	if oldNode != nil {
		removeErr = hostErr("RemoveChild", r.host.RemoveChild(parent, oldNode))
	}
	r.release(prev)
	return patchReplace, removeErr
}

func (r *Renderer) insert(parent, child, anchor Node) error {
	if anchor == nil {
		return hostErr("AppendChild", r.host.AppendChild(parent, child))
	}
	return hostErr("InsertBefore", r.host.InsertBefore(parent, child, anchor))
}
