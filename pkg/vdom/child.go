package vdom

import (
	"github.com/vango-dev/dotrender/internal/errors"
	"github.com/vango-dev/dotrender/pkg/store"
)

// ChildKind is the variant discriminator of Child.
type ChildKind uint8

const (
	KindAbsent  ChildKind = iota // Occupies a position, renders nothing
	KindText                     // Plain text node
	KindElement                  // <div>, <span>, etc.
	KindDynamic                  // Store producing a Child
)

// String returns the string representation of the ChildKind.
func (k ChildKind) String() string {
	switch k {
	case KindAbsent:
		return "Absent"
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	case KindDynamic:
		return "Dynamic"
	default:
		return "Unknown"
	}
}

// Child is one entry of a Tag's children. The zero Child is Absent.
type Child struct {
	kind    ChildKind
	text    string
	tag     *Tag
	dynamic store.Readable[Child]
}

// Absent returns a child that occupies a position but renders no node.
func Absent() Child {
	return Child{}
}

// Text returns a text child.
func Text(s string) Child {
	return Child{kind: KindText, text: s}
}

// Element returns an element child.
func Element(t *Tag) Child {
	return Child{kind: KindElement, tag: t}
}

// Dynamic returns a child whose content is produced by s.
func Dynamic(s store.Readable[Child]) Child {
	return Child{kind: KindDynamic, dynamic: s}
}

// BindText returns a dynamic text child that follows s. The view holds no
// subscription of its own: once the child is torn down, s is back to its
// previous subscriber count.
func BindText(s store.Readable[string]) Child {
	if store.IsNil(s) {
		return Dynamic(nil)
	}
	return Dynamic(store.Project(s, Text))
}

// BindTag returns a dynamic element child that follows s. A nil *Tag
// renders as absent.
func BindTag(s store.Readable[*Tag]) Child {
	if store.IsNil(s) {
		return Dynamic(nil)
	}
	return Dynamic(store.Project(s, orAbsent))
}

func orAbsent(t *Tag) Child {
	if t == nil {
		return Absent()
	}
	return Element(t)
}

// Kind reports the variant.
func (c Child) Kind() ChildKind {
	return c.kind
}

// TextValue returns the text of a Text child.
func (c Child) TextValue() string {
	return c.text
}

// Tag returns the tag of an Element child.
func (c Child) Tag() *Tag {
	return c.tag
}

// Store returns the store of a Dynamic child.
func (c Child) Store() store.Readable[Child] {
	return c.dynamic
}

// IsAbsent reports whether c renders nothing.
func (c Child) IsAbsent() bool {
	return c.kind == KindAbsent
}

// Validate reports a malformed child. It does not descend into element
// children or read dynamic stores.
func (c Child) Validate() error {
	switch c.kind {
	case KindAbsent, KindText:
		return nil
	case KindElement:
		if c.tag == nil {
			return errors.New("R002").WithDetail("Element child with a nil tag")
		}
		return c.tag.Err()
	case KindDynamic:
		if store.IsNil(c.dynamic) {
			return errors.New("R005").WithDetail("Dynamic child with a nil store")
		}
		return nil
	default:
		return errors.New("R001").WithDetailf("child kind %d", c.kind)
	}
}

// String returns a short description used in logs.
func (c Child) String() string {
	switch c.kind {
	case KindText:
		return "Text(" + c.text + ")"
	case KindElement:
		if c.tag == nil {
			return "Element(nil)"
		}
		return "Element(<" + c.tag.Name + ">)"
	default:
		return c.kind.String()
	}
}
