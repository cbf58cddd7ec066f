// Package render mounts vdom trees onto a host tree and keeps them in sync
// with the stores they bind to.
//
// The renderer depends on the host only through the Host interface, so any
// tree that can create, insert and remove nodes works: a browser document, a
// headless tree (see package headless) or another rendering target.
//
// # Mount records
//
// Every rendered child position has a Record. A Record owns the store
// subscriptions created to produce its content and the records of its
// children. A dynamic slot's record owns its binding to the store and
// exactly one child record, the current content. When the store emits, the
// slot renders the new content into a fresh record, swaps it into the host
// tree, and tears the old record down. Teardown unsubscribes every owned
// handle depth-first, so stores used only by discarded content return to
// their previous subscriber counts.
//
// # Example
//
//	show := store.New(true)
//	doc := headless.NewDocument()
//	root, err := render.Render(doc, el.Div(
//	    vdom.When(show, vdom.Element(el.P("hello")), vdom.Absent()),
//	), doc.Body())
//
//	show.Set(false) // the <p> is removed before Set returns
//
// Everything is synchronous. Set returns after the host tree reflects every
// consequence of the new value.
package render
