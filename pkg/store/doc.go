// Package store provides the reactive cell that dotrender binds to.
//
// A Store holds a single value and an ordered list of subscribers. Set
// replaces the value and calls every subscriber synchronously, in
// registration order, before it returns. There is no equality check: setting
// the same value again notifies every subscriber again.
//
//	count := store.New(0)
//	h := count.Subscribe(func(n int) { fmt.Println("count is", n) })
//	count.Set(1) // prints "count is 1"
//	h.Unsubscribe()
//
// # Derivation
//
// Map builds an eager derived store: it subscribes to its source when it is
// created and recomputes on every source emission. Project builds a
// stateless view whose subscriptions are forwarded to the source, so a view
// never holds a subscription of its own.
//
// # Re-entrancy
//
// Subscribers may call Set, Subscribe or Unsubscribe on any store, including
// the one notifying them. The subscriber list is snapshotted before each
// notification pass. A subscriber removed during a pass is not called for the
// rest of that pass; a subscriber added during a pass is first called on the
// next Set.
package store
