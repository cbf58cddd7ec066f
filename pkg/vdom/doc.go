// Package vdom provides the host-independent virtual node model for dotrender.
//
// A Tag describes one element: its name, its attributes and an ordered list
// of children. Children are a tagged variant (see Child): absent, text, an
// element, or a store that produces a child. A store-backed child may change
// variant over its lifetime, which is what drives structural updates in the
// renderer.
//
// # Element API
//
// Tags are built with H (or the helpers in package el):
//
//	H("div", Class("card"), StyleBind("height", height),
//	    H("h1", "Title"),
//	    show, // store.Readable[Child]
//	    OnClick(func() { height.Set("200px") }),
//	)
//
// Arguments H does not understand are recorded as a configuration error on
// the Tag (see Tag.Err) and reported again when the tag is mounted. They are
// never dropped silently.
//
// Nothing in this package touches a host tree; the renderer is the only
// consumer. Tags are immutable once constructed.
package vdom
