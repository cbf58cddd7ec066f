// This file re-exports vdom helper functions for the el package.
package el

import (
	"github.com/vango-dev/dotrender/pkg/store"
	"github.com/vango-dev/dotrender/pkg/vdom"
)

func Text(s string) Child {
	return vdom.Text(s)
}
func Absent() Child {
	return vdom.Absent()
}
func Element(t *Tag) Child {
	return vdom.Element(t)
}
func Dynamic(s store.Readable[Child]) Child {
	return vdom.Dynamic(s)
}
func BindText(s store.Readable[string]) Child {
	return vdom.BindText(s)
}
func When(cond store.Readable[bool], then, otherwise Child) Child {
	return vdom.When(cond, then, otherwise)
}
func Class(class string) Attr {
	return vdom.Class(class)
}
func ClassBind(s store.Readable[string]) Attr {
	return vdom.ClassBind(s)
}
func Style(prop, value string) Attr {
	return vdom.Style(prop, value)
}
func StyleBind(prop string, s store.Readable[string]) Attr {
	return vdom.StyleBind(prop, s)
}
func Hidden(hidden bool) Attr {
	return vdom.Hidden(hidden)
}
func BoolBind(name string, s store.Readable[bool]) Attr {
	return vdom.BoolBind(name, s)
}
func OnClick(handler EventHandler) Attr {
	return vdom.OnClick(handler)
}
func On(event string, handler EventHandler) Attr {
	return vdom.On(event, handler)
}
