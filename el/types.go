package el

import "github.com/vango-dev/dotrender/pkg/vdom"

// Type aliases for the VDOM primitives used by the DSL.
type Tag = vdom.Tag
type Child = vdom.Child
type Attr = vdom.Attr
type EventHandler = vdom.EventHandler
