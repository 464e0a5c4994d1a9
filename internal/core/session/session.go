// Package session tracks the single currently-acting principal for the
// process. Token validation is an external concern; the holder only records
// an already-verified identity.
package session

import "sync"

// Holder is a single-slot current-actor holder. The zero value is an empty
// (anonymous) session.
type Holder struct {
	mu sync.RWMutex
	id string
}

// Current returns the acting user id, with ok=false when no one is signed in.
func (h *Holder) Current() (id string, ok bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.id, h.id != ""
}

// SetCurrent records id as the acting principal, replacing any previous one.
func (h *Holder) SetCurrent(id string) {
	h.mu.Lock()
	h.id = id
	h.mu.Unlock()
}

// Clear empties the slot, returning the process to an anonymous caller.
func (h *Holder) Clear() {
	h.mu.Lock()
	h.id = ""
	h.mu.Unlock()
}
