package store

// Map returns a store whose value is f applied to src's value. The derived
// store subscribes to src immediately and recomputes on every emission of
// src, then notifies its own subscribers. Its subscriber count is tracked
// separately from src's. Call Close on the result to release the source
// subscription.
func Map[T, U any](src Readable[T], f func(T) U) *Store[U] {
	derived := New(f(src.Get()))
	h := src.Subscribe(func(v T) {
		derived.Set(f(v))
	})
	derived.detach = h.Unsubscribe
	return derived
}

// view is a stateless projection of another Readable.
type view[T, U any] struct {
	src Readable[T]
	f   func(T) U
}

// Project returns a Readable that applies f to src on every read and every
// delivery. It keeps no value and no subscribers of its own: subscribing to
// the view subscribes to src, and the view's subscriber count is src's.
func Project[T, U any](src Readable[T], f func(T) U) Readable[U] {
	return view[T, U]{src: src, f: f}
}

func (v view[T, U]) Get() U {
	return v.f(v.src.Get())
}

func (v view[T, U]) Subscribe(fn func(U)) Handle {
	f := v.f
	return v.src.Subscribe(func(t T) {
		fn(f(t))
	})
}

func (v view[T, U]) Unsubscribe(h Handle) {
	v.src.Unsubscribe(h)
}

func (v view[T, U]) SubscriberCount() int {
	return v.src.SubscriberCount()
}

func (v view[T, U]) isNil() bool {
	return IsNil(v.src)
}
