package store

// canceler is implemented by every store that hands out handles.
type canceler interface {
	cancel(id uint64) bool
}

// Handle identifies one subscription. Handles are comparable and can be
// used as map keys. The zero Handle is valid and unsubscribing it does
// nothing.
type Handle struct {
	id  uint64
	src canceler
}

// ID returns the subscription id, unique within the issuing store.
func (h Handle) ID() uint64 {
	return h.id
}

// IsZero reports whether h was never issued by a store.
func (h Handle) IsZero() bool {
	return h.src == nil
}

// Unsubscribe removes the subscription. It is idempotent.
func (h Handle) Unsubscribe() {
	if h.src != nil {
		h.src.cancel(h.id)
	}
}
