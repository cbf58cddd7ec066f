// Package el provides the element DSL for dotrender.
//
// It re-exports the child constructors, attribute helpers and event helpers
// of package vdom, and adds one constructor per common HTML tag.
//
// Typical usage:
//
//	import . "github.com/vango-dev/dotrender/el"
//
//	Div(Class("card"),
//	    H1("Title"),
//	    When(open, Element(P("Body")), Absent()),
//	)
package el
