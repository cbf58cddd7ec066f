package vdom

import (
	"sort"

	"github.com/vango-dev/dotrender/internal/errors"
	"github.com/vango-dev/dotrender/pkg/store"
)

// EventHandler is called when the host dispatches the event it is attached to.
type EventHandler func()

// Attributes holds the properties of one element. Maps are keyed by CSS
// property, attribute name and event name (without the "on" prefix).
type Attributes struct {
	Class  Value[string]
	Style  map[string]Value[string]
	Bools  map[string]Value[bool]
	Events map[string]EventHandler
}

// Attr sets one property while a Tag is constructed.
type Attr func(*Attributes)

// StyleKeys returns the style properties in a stable order.
func (a Attributes) StyleKeys() []string {
	return sortedKeys(a.Style)
}

// BoolKeys returns the boolean attribute names in a stable order.
func (a Attributes) BoolKeys() []string {
	return sortedKeys(a.Bools)
}

// EventKeys returns the event names in a stable order.
func (a Attributes) EventKeys() []string {
	return sortedKeys(a.Events)
}

// IsZero reports whether no attribute is set.
func (a Attributes) IsZero() bool {
	return !a.Class.IsSet() && len(a.Style) == 0 && len(a.Bools) == 0 && len(a.Events) == 0
}

func (a Attributes) validate() error {
	if !a.Class.valid() {
		return errors.New("R005").WithDetail("class is bound to a nil store")
	}
	for _, k := range a.StyleKeys() {
		if !a.Style[k].valid() {
			return errors.New("R005").WithDetailf("style %q is bound to a nil store", k)
		}
	}
	for _, k := range a.BoolKeys() {
		if !a.Bools[k].valid() {
			return errors.New("R005").WithDetailf("attribute %q is bound to a nil store", k)
		}
	}
	for _, k := range a.EventKeys() {
		if a.Events[k] == nil {
			return errors.New("R001").WithDetailf("event %q has a nil handler", k)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Identity attributes

// Class sets the class attribute.
func Class(class string) Attr {
	return func(a *Attributes) { a.Class = Static(class) }
}

// ClassBind binds the class attribute to s.
func ClassBind(s store.Readable[string]) Attr {
	return func(a *Attributes) { a.Class = Bound(s) }
}

// Style attributes

// Style sets one CSS property.
func Style(prop, value string) Attr {
	return func(a *Attributes) { setStyle(a, prop, Static(value)) }
}

// StyleBind binds one CSS property to s.
func StyleBind(prop string, s store.Readable[string]) Attr {
	return func(a *Attributes) { setStyle(a, prop, Bound(s)) }
}

// Styles sets several CSS properties at once.
func Styles(props map[string]string) Attr {
	return func(a *Attributes) {
		for prop, value := range props {
			setStyle(a, prop, Static(value))
		}
	}
}

func setStyle(a *Attributes, prop string, v Value[string]) {
	if a.Style == nil {
		a.Style = make(map[string]Value[string])
	}
	a.Style[prop] = v
}

// Boolean attributes

// Bool sets a boolean attribute such as hidden or disabled.
func Bool(name string, value bool) Attr {
	return func(a *Attributes) { setBool(a, name, Static(value)) }
}

// BoolBind binds a boolean attribute to s.
func BoolBind(name string, s store.Readable[bool]) Attr {
	return func(a *Attributes) { setBool(a, name, Bound(s)) }
}

// Hidden sets the hidden attribute.
func Hidden(hidden bool) Attr { return Bool("hidden", hidden) }

// Disabled sets the disabled attribute.
func Disabled(disabled bool) Attr { return Bool("disabled", disabled) }

func setBool(a *Attributes, name string, v Value[bool]) {
	if a.Bools == nil {
		a.Bools = make(map[string]Value[bool])
	}
	a.Bools[name] = v
}
