package table

import "sync/atomic"

// Holder publishes the live Registry to concurrent readers. Registries are
// replaced wholesale, never mutated.
type Holder struct {
	current atomic.Pointer[Registry]
}

// NewHolder returns a Holder serving r.
func NewHolder(r Registry) *Holder {
	h := &Holder{}
	h.Store(r)
	return h
}

// Load returns the current registry, never nil.
func (h *Holder) Load() Registry {
	if r := h.current.Load(); r != nil {
		return *r
	}
	return Registry{}
}

// Store replaces the current registry.
func (h *Holder) Store(r Registry) {
	h.current.Store(&r)
}

// Upsert publishes a copy of the current registry with t added or replaced.
func (h *Holder) Upsert(t *Table) {
	for {
		old := h.current.Load()
		next := Registry{}
		if old != nil {
			for k, v := range *old {
				next[k] = v
			}
		}
		next[t.ID] = t
		if h.current.CompareAndSwap(old, &next) {
			return
		}
	}
}
