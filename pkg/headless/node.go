package headless

import (
	"sort"
	"strings"
)

// NodeType distinguishes elements from text nodes.
type NodeType uint8

const (
	ElementNode NodeType = iota + 1
	TextNode
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	default:
		return "Unknown"
	}
}

// Node is an element or text node of a Document.
type Node struct {
	typ       NodeType
	doc       *Document
	tag       string
	text      string
	className string
	style     map[string]string
	bools     map[string]bool
	listeners map[string][]func()
	parent    *Node
	children  []*Node
}

// Type reports whether n is an element or a text node.
func (n *Node) Type() NodeType {
	return n.typ
}

// TagName returns the upper-case tag name of an element, like the DOM.
func (n *Node) TagName() string {
	return strings.ToUpper(n.tag)
}

// LocalName returns the tag name as it was created.
func (n *Node) LocalName() string {
	return n.tag
}

// ClassName returns the class attribute.
func (n *Node) ClassName() string {
	return n.className
}

// Style returns one CSS property, or "" when unset.
func (n *Node) Style(prop string) string {
	return n.style[prop]
}

// StyleText returns the style attribute in "prop: value;" form with
// properties sorted.
func (n *Node) StyleText() string {
	if len(n.style) == 0 {
		return ""
	}
	keys := make([]string, 0, len(n.style))
	for k := range n.style {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(n.style[k])
		b.WriteByte(';')
	}
	return b.String()
}

// Bool returns a boolean attribute.
func (n *Node) Bool(name string) bool {
	return n.bools[name]
}

// Hidden returns the hidden attribute.
func (n *Node) Hidden() bool {
	return n.Bool("hidden")
}

// Data returns the content of a text node.
func (n *Node) Data() string {
	return n.text
}

// Parent returns the parent node, or nil when detached.
func (n *Node) Parent() *Node {
	return n.parent
}

// ChildNodes returns all children, text nodes included.
func (n *Node) ChildNodes() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Children returns the element children.
func (n *Node) Children() []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.typ == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// FirstChild returns the first child node, or nil.
func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// FirstElementChild returns the first element child, or nil.
func (n *Node) FirstElementChild() *Node {
	for _, c := range n.children {
		if c.typ == ElementNode {
			return c
		}
	}
	return nil
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	if n.typ == TextNode {
		return n.text
	}
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	for _, c := range n.children {
		if c.typ == TextNode {
			b.WriteString(c.text)
		} else {
			c.writeText(b)
		}
	}
}

// Click dispatches a click event.
func (n *Node) Click() {
	n.Dispatch("click")
}

// Dispatch calls every listener of event in registration order. Events do
// not bubble.
func (n *Node) Dispatch(event string) {
	handlers := make([]func(), len(n.listeners[event]))
	copy(handlers, n.listeners[event])
	for _, h := range handlers {
		h()
	}
}

// ListenerCount returns the number of listeners attached for event.
func (n *Node) ListenerCount(event string) int {
	return len(n.listeners[event])
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// detach removes n from its current parent, if any.
func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	if i := p.indexOf(n); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	n.parent = nil
}
