package vdom

import (
	"github.com/vango-dev/dotrender/internal/errors"
	"github.com/vango-dev/dotrender/pkg/store"
)

// Tag describes one element. A Tag must not be modified after construction;
// rendering never mutates it.
type Tag struct {
	Name     string
	Attrs    Attributes
	Children []Child

	// err is the first configuration error found while constructing the tag.
	err error
}

// H creates a tag named name. Arguments can be:
//   - Attr: an attribute option
//   - Child, []Child: children as given
//   - *Tag, []*Tag: element children; a nil *Tag is absent
//   - string: a text child
//   - nil: an absent child
//   - store.Readable[Child]: a dynamic child
//   - store.Readable[string]: dynamic text
//   - store.Readable[*Tag]: a dynamic element, absent while nil
//
// Any other argument is a configuration error, available from Err.
func H(name string, args ...any) *Tag {
	t := &Tag{
		Name:     name,
		Children: make([]Child, 0, len(args)),
	}
	if name == "" {
		t.fail(errors.New("R001").WithDetail("tag name is empty"))
	}

	for i, arg := range args {
		switch v := arg.(type) {
		case nil:
			t.Children = append(t.Children, Absent())

		case Attr:
			if v != nil {
				v(&t.Attrs)
			}

		case []Attr:
			for _, a := range v {
				if a != nil {
					a(&t.Attrs)
				}
			}

		case Child:
			t.addChild(v)

		case []Child:
			for _, c := range v {
				t.addChild(c)
			}

		case *Tag:
			t.Children = append(t.Children, orAbsent(v))
			if v != nil {
				t.fail(v.err)
			}

		case []*Tag:
			for _, c := range v {
				t.Children = append(t.Children, orAbsent(c))
				if c != nil {
					t.fail(c.err)
				}
			}

		case string:
			t.Children = append(t.Children, Text(v))

		case store.Readable[Child]:
			t.addChild(Dynamic(v))

		case store.Readable[string]:
			t.addChild(BindText(v))

		case store.Readable[*Tag]:
			t.addChild(BindTag(v))

		default:
			t.fail(errors.New("R001").
				WithDetailf("argument %d of <%s> has unsupported type %T", i, name, arg).
				WithSuggestion("pass a vdom.Child, a *vdom.Tag, a string, an Attr or a store"))
		}
	}

	t.fail(t.Attrs.validate())
	return t
}

// NewTag is H returning the construction error directly.
func NewTag(name string, args ...any) (*Tag, error) {
	t := H(name, args...)
	if t.err != nil {
		return nil, t.err
	}
	return t, nil
}

// Err returns the first configuration error recorded while constructing
// the tag or any tag nested in it.
func (t *Tag) Err() error {
	if t == nil {
		return errors.New("R002")
	}
	return t.err
}

// addChild appends c and records its validation error.
func (t *Tag) addChild(c Child) {
	t.Children = append(t.Children, c)
	t.fail(c.Validate())
}

// fail records err unless an earlier error is already recorded.
func (t *Tag) fail(err error) {
	if err != nil && t.err == nil {
		t.err = err
	}
}
