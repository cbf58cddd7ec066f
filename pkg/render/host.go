package render

import "github.com/vango-dev/dotrender/internal/errors"

// Node is a host tree node. The renderer never inspects it.
type Node = any

// Host is the tree the renderer mutates. It is the only capability the
// renderer relies on.
type Host interface {
	CreateElement(tag string) (Node, error)
	CreateText(text string) (Node, error)
	AppendChild(parent, child Node) error
	InsertBefore(parent, child, anchor Node) error
	RemoveChild(parent, child Node) error
	SetClassName(node Node, value string) error
	SetStyleProperty(node Node, prop, value string) error
	SetBooleanAttribute(node Node, name string, value bool) error
	AddEventListener(node Node, event string, handler func()) error
}

// TextSetter is implemented by hosts that can change a text node's content
// in place. When available, text-to-text updates keep the node.
type TextSetter interface {
	SetText(node Node, text string) error
}

// hostErr wraps a host failure.
func hostErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return errors.New("R004").WithOp(op).Wrap(err)
}
