// Package notify is the ephemeral notification center. Entries are
// non-authoritative UI hints that expire on their own timers; expiry only
// ever touches the center's own lock, so it can never block or race a store
// operation.
package notify

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkpress/publishing-core/internal/api/metrics"
)

// DefaultTTL is how long a notice stays visible.
const DefaultTTL = 3 * time.Second

// Entry is one live notification.
type Entry struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Kind    string    `json:"kind"`
	Posted  time.Time `json:"posted"`
}

// Center holds live notifications and expires them after a fixed TTL.
type Center struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]Entry
	timers  map[string]*time.Timer
	closed  bool
}

// NewCenter returns a center expiring entries after ttl (DefaultTTL when
// ttl <= 0).
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{
		ttl:     ttl,
		entries: make(map[string]Entry),
		timers:  make(map[string]*time.Timer),
	}
}

// Post adds a notification and schedules its expiry. Never blocks.
func (c *Center) Post(title, message, kind string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	id := uuid.NewString()
	c.entries[id] = Entry{
		ID:      id,
		Title:   title,
		Message: message,
		Kind:    kind,
		Posted:  time.Now().UTC(),
	}
	c.timers[id] = time.AfterFunc(c.ttl, func() { c.expire(id) })
	metrics.NotificationsActive.Set(float64(len(c.entries)))
}

// Active returns the live notifications, oldest first.
func (c *Center) Active() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Posted.Equal(out[j].Posted) {
			return out[i].ID < out[j].ID
		}
		return out[i].Posted.Before(out[j].Posted)
	})
	return out
}

// Close stops all pending expiry timers and drops every entry.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.entries = make(map[string]Entry)
	metrics.NotificationsActive.Set(0)
}

func (c *Center) expire(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, id)
	delete(c.timers, id)
	metrics.NotificationsActive.Set(float64(len(c.entries)))
}
