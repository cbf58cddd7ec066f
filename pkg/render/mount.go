package render

import (
	"github.com/vango-dev/dotrender/pkg/store"
	"github.com/vango-dev/dotrender/pkg/vdom"
)

// mount renders c into a new record under parent at index. Nodes are
// created but the record's own node is not attached; the caller attaches
// it. On error, subscriptions made so far are released.
func (r *Renderer) mount(c vdom.Child, parent *Record, index int) (*Record, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	rec := newRecord(c.Kind(), parent, index)

	var err error
	switch c.Kind() {
	case vdom.KindAbsent:
	case vdom.KindText:
		rec.node, err = r.host.CreateText(c.TextValue())
		err = hostErr("CreateText", err)
	case vdom.KindElement:
		err = r.mountElement(rec, c.Tag())
	case vdom.KindDynamic:
		err = r.mountDynamic(rec, c.Store())
	}
	if err != nil {
		r.release(rec)
		return nil, err
	}
	return rec, nil
}

func (r *Renderer) mountElement(rec *Record, tag *vdom.Tag) error {
	node, err := r.host.CreateElement(tag.Name)
	if err != nil {
		return hostErr("CreateElement", err)
	}
	rec.node = node

	if err := r.bindAttrs(rec, node, tag.Attrs); err != nil {
		return err
	}

	rec.children = make([]*Record, 0, len(tag.Children))
	for i, child := range tag.Children {
		cr, err := r.mount(child, rec, i)
		if err != nil {
			return err
		}
		rec.children = append(rec.children, cr)
		if n := cr.firstNode(); n != nil {
			if err := r.host.AppendChild(node, n); err != nil {
				return hostErr("AppendChild", err)
			}
		}
	}
	return nil
}

// mountDynamic renders the store's current value as the slot's content,
// then subscribes. The handle belongs to the slot record, so the binding
// lives exactly as long as the slot.
func (r *Renderer) mountDynamic(rec *Record, s store.Readable[vdom.Child]) error {
	content, err := r.mount(s.Get(), rec, 0)
	if err != nil {
		return err
	}
	rec.children = []*Record{content}

	rec.own(s.Subscribe(func(next vdom.Child) {
		r.patch(rec, next)
	}))
	r.metrics.bound()
	return nil
}

func (r *Renderer) bindAttrs(rec *Record, node Node, attrs vdom.Attributes) error {
	h := r.host

	if err := bindValue(r, rec, attrs.Class, func(v string) error {
		return hostErr("SetClassName", h.SetClassName(node, v))
	}); err != nil {
		return err
	}

	for _, prop := range attrs.StyleKeys() {
		prop := prop
		if err := bindValue(r, rec, attrs.Style[prop], func(v string) error {
			return hostErr("SetStyleProperty", h.SetStyleProperty(node, prop, v))
		}); err != nil {
			return err
		}
	}

	for _, name := range attrs.BoolKeys() {
		name := name
		if err := bindValue(r, rec, attrs.Bools[name], func(v bool) error {
			return hostErr("SetBooleanAttribute", h.SetBooleanAttribute(node, name, v))
		}); err != nil {
			return err
		}
	}

	for _, event := range attrs.EventKeys() {
		if err := h.AddEventListener(node, event, attrs.Events[event]); err != nil {
			return hostErr("AddEventListener", err)
		}
	}
	return nil
}

// bindValue applies v once and, when it is bound, re-applies it on every
// emission. Node identity never changes for attribute updates.
func bindValue[T any](r *Renderer, rec *Record, v vdom.Value[T], apply func(T) error) error {
	if !v.IsSet() {
		return nil
	}
	if err := apply(v.Get()); err != nil {
		return err
	}
	if !v.IsBound() {
		return nil
	}

	rec.own(v.Store().Subscribe(func(next T) {
		if rec.torn {
			return
		}
		r.enter()
		defer r.leave()
		if err := apply(next); err != nil {
			r.fail(err)
			return
		}
		r.metrics.patched(patchAttr, 0)
	}))
	r.metrics.bound()
	return nil
}
