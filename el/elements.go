// This file provides element constructors on top of vdom.H.
package el

import "github.com/vango-dev/dotrender/pkg/vdom"

func El(name string, args ...any) *Tag { return vdom.H(name, args...) }

func Div(args ...any) *Tag     { return vdom.H("div", args...) }
func Span(args ...any) *Tag    { return vdom.H("span", args...) }
func P(args ...any) *Tag       { return vdom.H("p", args...) }
func A(args ...any) *Tag       { return vdom.H("a", args...) }
func H1(args ...any) *Tag      { return vdom.H("h1", args...) }
func H2(args ...any) *Tag      { return vdom.H("h2", args...) }
func Section(args ...any) *Tag { return vdom.H("section", args...) }
func Ul(args ...any) *Tag      { return vdom.H("ul", args...) }
func Li(args ...any) *Tag      { return vdom.H("li", args...) }
func Button(args ...any) *Tag  { return vdom.H("button", args...) }
func Strong(args ...any) *Tag  { return vdom.H("strong", args...) }
