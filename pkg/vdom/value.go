package vdom

import "github.com/vango-dev/dotrender/pkg/store"

type valueMode uint8

const (
	valueUnset valueMode = iota
	valueStatic
	valueBound
)

// Value is an attribute value that is either unset, static, or bound to a
// store. The zero Value is unset.
type Value[T any] struct {
	mode   valueMode
	static T
	bound  store.Readable[T]
}

// Static returns a Value fixed to v.
func Static[T any](v T) Value[T] {
	return Value[T]{mode: valueStatic, static: v}
}

// Bound returns a Value that follows s.
func Bound[T any](s store.Readable[T]) Value[T] {
	return Value[T]{mode: valueBound, bound: s}
}

// IsSet reports whether the value was provided.
func (v Value[T]) IsSet() bool {
	return v.mode != valueUnset
}

// IsBound reports whether the value follows a store.
func (v Value[T]) IsBound() bool {
	return v.mode == valueBound
}

// Store returns the bound store, or nil for static values.
func (v Value[T]) Store() store.Readable[T] {
	return v.bound
}

// Get returns the current value: the store's value when bound, the static
// value otherwise.
func (v Value[T]) Get() T {
	if v.bound != nil {
		return v.bound.Get()
	}
	return v.static
}

// valid reports whether a bound value has a store.
func (v Value[T]) valid() bool {
	return v.mode != valueBound || !store.IsNil(v.bound)
}
