package vdom

import "github.com/vango-dev/dotrender/pkg/store"

// When returns a dynamic child that renders then while cond is true and
// otherwise when it is false. Pass Absent() as otherwise to render nothing.
func When(cond store.Readable[bool], then, otherwise Child) Child {
	if store.IsNil(cond) {
		return Dynamic(nil)
	}
	return Dynamic(store.Project(cond, func(b bool) Child {
		if b {
			return then
		}
		return otherwise
	}))
}

// Switch returns a dynamic child chosen by the current value of s. Keys
// without a case render fallback.
func Switch[K comparable](s store.Readable[K], cases map[K]Child, fallback Child) Child {
	if store.IsNil(s) {
		return Dynamic(nil)
	}
	return Dynamic(store.Project(s, func(k K) Child {
		if c, ok := cases[k]; ok {
			return c
		}
		return fallback
	}))
}
