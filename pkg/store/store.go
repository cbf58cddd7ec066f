package store

import "sync"

// Readable is the read and subscribe surface of a reactive value.
// *Store[T] implements it, and so do the views returned by Project.
type Readable[T any] interface {
	// Get returns the current value.
	Get() T

	// Subscribe registers fn for later emissions. It does not call fn with
	// the current value; callers that need an initial render read Get first.
	Subscribe(fn func(T)) Handle

	// Unsubscribe removes a subscription. Unknown or already removed handles
	// are ignored.
	Unsubscribe(h Handle)

	// SubscriberCount returns the exact number of live subscriptions.
	SubscriberCount() int
}

// subscriber is one registered callback.
type subscriber[T any] struct {
	id      uint64
	fn      func(T)
	removed bool
}

// Store is a reactive single-value container.
type Store[T any] struct {
	// mu protects value, subs, nextID and gen. It is never held while
	// subscribers run.
	mu sync.Mutex

	value  T
	subs   []*subscriber[T]
	nextID uint64

	// gen counts calls to Set. A delivery pass stops once a nested Set has
	// started a newer one, so no subscriber sees a value older than Get.
	gen uint64

	// detach releases the source subscription of a derived store.
	detach func()
}

// New creates a store holding initial.
func New[T any](initial T) *Store[T] {
	return &Store[T]{value: initial}
}

// Get returns the current value.
func (s *Store[T]) Get() T {
	if s == nil {
		var zero T
		return zero
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set replaces the value and notifies every subscriber before returning.
// Subscribers are notified even when v equals the previous value.
//
// A subscriber may call Set on the same store. The nested call delivers
// its value to every subscriber, and the outer pass then stops, so later
// subscribers only see the newest value.
func (s *Store[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	s.gen++
	gen := s.gen
	subs := make([]*subscriber[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		s.mu.Lock()
		removed, stale := sub.removed, s.gen != gen
		s.mu.Unlock()
		if stale {
			return
		}
		if removed {
			continue
		}
		sub.fn(v)
	}
}

// Update sets the value to fn applied to the current value.
func (s *Store[T]) Update(fn func(T) T) {
	s.Set(fn(s.Get()))
}

// Subscribe registers fn and returns its handle. Subscribing to a nil
// store returns the zero Handle.
func (s *Store[T]) Subscribe(fn func(T)) Handle {
	if s == nil {
		return Handle{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.subs = append(s.subs, &subscriber[T]{id: s.nextID, fn: fn})
	return Handle{id: s.nextID, src: s}
}

// Unsubscribe removes the subscription identified by h. It is a no-op when
// h belongs to another store or was already removed.
func (s *Store[T]) Unsubscribe(h Handle) {
	if s == nil || h.src != canceler(s) {
		return
	}
	s.cancel(h.id)
}

// SubscriberCount returns the number of live subscriptions.
func (s *Store[T]) SubscriberCount() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Close detaches a derived store from its source. The store keeps its last
// value and its own subscribers. Close on a store created by New does
// nothing.
func (s *Store[T]) Close() {
	s.mu.Lock()
	detach := s.detach
	s.detach = nil
	s.mu.Unlock()

	if detach != nil {
		detach()
	}
}

// cancel implements canceler. Order of the remaining subscribers is kept.
func (s *Store[T]) cancel(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subs {
		if sub.id == id {
			sub.removed = true
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store[T]) isNil() bool {
	return s == nil
}

// nilable is implemented by readables that can wrap a nil store.
type nilable interface {
	isNil() bool
}

// IsNil reports whether r is nil, a nil *Store, or a projection of one.
// A nil *Store stored in a Readable is not == nil, so binding code checks
// with IsNil before subscribing.
func IsNil[T any](r Readable[T]) bool {
	if r == nil {
		return true
	}
	if n, ok := r.(nilable); ok {
		return n.isNil()
	}
	return false
}
