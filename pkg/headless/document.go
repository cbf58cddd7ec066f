package headless

import (
	"errors"
	"fmt"

	"github.com/vango-dev/dotrender/pkg/render"
)

var (
	_ render.Host       = (*Document)(nil)
	_ render.TextSetter = (*Document)(nil)
)

// Errors returned by Document operations.
var (
	ErrForeignNode = errors.New("headless: node does not belong to this document")
	ErrNotElement  = errors.New("headless: operation needs an element node")
	ErrNotText     = errors.New("headless: operation needs a text node")
	ErrNotChild    = errors.New("headless: node is not a child of parent")
	ErrCycle       = errors.New("headless: insertion would create a cycle")
)

// MutationType classifies a Mutation.
type MutationType uint8

const (
	MutationChildList MutationType = iota + 1
	MutationAttribute
	MutationText
)

// String returns the string representation of the MutationType.
func (t MutationType) String() string {
	switch t {
	case MutationChildList:
		return "childList"
	case MutationAttribute:
		return "attributes"
	case MutationText:
		return "characterData"
	default:
		return "unknown"
	}
}

// Mutation describes one change to the document.
type Mutation struct {
	Type   MutationType
	Target *Node
	Name   string // attribute or style property for MutationAttribute
}

// Document is an in-memory tree with a body element.
type Document struct {
	body      *Node
	observers map[int]func(Mutation)
	nextObs   int
	mutations uint64
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	d := &Document{observers: make(map[int]func(Mutation))}
	d.body = d.newElement("body")
	return d
}

// Body returns the body element.
func (d *Document) Body() *Node {
	return d.body
}

// Mutations returns the number of mutations applied so far.
func (d *Document) Mutations() uint64 {
	return d.mutations
}

// Observe registers fn for every later mutation and returns a function
// that removes it.
func (d *Document) Observe(fn func(Mutation)) (cancel func()) {
	id := d.nextObs
	d.nextObs++
	d.observers[id] = fn
	return func() { delete(d.observers, id) }
}

func (d *Document) notify(m Mutation) {
	d.mutations++
	for i := 0; i < d.nextObs; i++ {
		if fn, ok := d.observers[i]; ok {
			fn(m)
		}
	}
}

func (d *Document) newElement(tag string) *Node {
	return &Node{
		typ:       ElementNode,
		doc:       d,
		tag:       tag,
		style:     make(map[string]string),
		bools:     make(map[string]bool),
		listeners: make(map[string][]func()),
	}
}

// node converts a render.Node to a *Node of this document.
func (d *Document) node(n render.Node) (*Node, error) {
	hn, ok := n.(*Node)
	if !ok || hn == nil || hn.doc != d {
		return nil, fmt.Errorf("%w (%T)", ErrForeignNode, n)
	}
	return hn, nil
}

func (d *Document) element(n render.Node) (*Node, error) {
	hn, err := d.node(n)
	if err != nil {
		return nil, err
	}
	if hn.typ != ElementNode {
		return nil, ErrNotElement
	}
	return hn, nil
}

// CreateElement implements render.Host.
func (d *Document) CreateElement(tag string) (render.Node, error) {
	return d.newElement(tag), nil
}

// CreateText implements render.Host.
func (d *Document) CreateText(text string) (render.Node, error) {
	return &Node{typ: TextNode, doc: d, text: text}, nil
}

// AppendChild implements render.Host. A child attached elsewhere is moved.
func (d *Document) AppendChild(parent, child render.Node) error {
	p, c, err := d.pair(parent, child)
	if err != nil {
		return err
	}
	c.detach()
	c.parent = p
	p.children = append(p.children, c)
	d.notify(Mutation{Type: MutationChildList, Target: p})
	return nil
}

// InsertBefore implements render.Host.
func (d *Document) InsertBefore(parent, child, anchor render.Node) error {
	p, c, err := d.pair(parent, child)
	if err != nil {
		return err
	}
	a, err := d.node(anchor)
	if err != nil {
		return err
	}
	if a.parent != p {
		return ErrNotChild
	}
	if a == c {
		return nil
	}
	c.detach()
	i := p.indexOf(a)
	p.children = append(p.children, nil)
	copy(p.children[i+1:], p.children[i:])
	p.children[i] = c
	c.parent = p
	d.notify(Mutation{Type: MutationChildList, Target: p})
	return nil
}

// RemoveChild implements render.Host.
func (d *Document) RemoveChild(parent, child render.Node) error {
	p, err := d.element(parent)
	if err != nil {
		return err
	}
	c, err := d.node(child)
	if err != nil {
		return err
	}
	if c.parent != p {
		return ErrNotChild
	}
	c.detach()
	d.notify(Mutation{Type: MutationChildList, Target: p})
	return nil
}

// SetClassName implements render.Host.
func (d *Document) SetClassName(node render.Node, value string) error {
	n, err := d.element(node)
	if err != nil {
		return err
	}
	n.className = value
	d.notify(Mutation{Type: MutationAttribute, Target: n, Name: "class"})
	return nil
}

// SetStyleProperty implements render.Host. An empty value removes the
// property.
func (d *Document) SetStyleProperty(node render.Node, prop, value string) error {
	n, err := d.element(node)
	if err != nil {
		return err
	}
	if value == "" {
		delete(n.style, prop)
	} else {
		n.style[prop] = value
	}
	d.notify(Mutation{Type: MutationAttribute, Target: n, Name: "style." + prop})
	return nil
}

// SetBooleanAttribute implements render.Host.
func (d *Document) SetBooleanAttribute(node render.Node, name string, value bool) error {
	n, err := d.element(node)
	if err != nil {
		return err
	}
	if value {
		n.bools[name] = true
	} else {
		delete(n.bools, name)
	}
	d.notify(Mutation{Type: MutationAttribute, Target: n, Name: name})
	return nil
}

// AddEventListener implements render.Host.
func (d *Document) AddEventListener(node render.Node, event string, handler func()) error {
	n, err := d.element(node)
	if err != nil {
		return err
	}
	n.listeners[event] = append(n.listeners[event], handler)
	return nil
}

// SetText implements render.TextSetter.
func (d *Document) SetText(node render.Node, text string) error {
	n, err := d.node(node)
	if err != nil {
		return err
	}
	if n.typ != TextNode {
		return ErrNotText
	}
	n.text = text
	d.notify(Mutation{Type: MutationText, Target: n})
	return nil
}

func (d *Document) pair(parent, child render.Node) (*Node, *Node, error) {
	p, err := d.element(parent)
	if err != nil {
		return nil, nil, err
	}
	c, err := d.node(child)
	if err != nil {
		return nil, nil, err
	}
	if c.Contains(p) {
		return nil, nil, ErrCycle
	}
	return p, c, nil
}
