// Package realtime is a lightweight in-process publish/subscribe hub used to
// fan out live search-activity events to multiple listeners (e.g. WebSocket
// sessions).
//
// Fan-out is best effort: a listener whose buffer is full drops events, so a
// slow consumer can never backpressure the search path. There is no
// persistence or replay; the stream is ephemeral.
package realtime

import (
	"sync"
	"time"

	"github.com/rubiojr/scour/pkg/core"
)

// SearchEvent describes one completed search operation.
type SearchEvent struct {
	Query       string      `json:"query"`
	Intent      core.Intent `json:"intent"`
	SourceCount int         `json:"source_count"`
	ResultCount int         `json:"result_count"`
	Blocked     bool        `json:"blocked,omitempty"`
	Cached      bool        `json:"cached,omitempty"`
	DurationMS  int64       `json:"duration_ms"`
	Timestamp   time.Time   `json:"timestamp"`
}

// Event is the hub envelope. Additional kinds (heartbeat, info) can be
// introduced without changing channel element types; for now only
// Type == "search" is produced.
type Event struct {
	Type   string      `json:"type"`
	Search SearchEvent `json:"search"`
}

// Hub is a concurrency-safe in-memory fan-out dispatcher. Each listener
// receives events on its own buffered channel.
type Hub struct {
	mu        sync.RWMutex
	listeners map[uint64]chan Event
	nextID    uint64
	bufSize   int
}

// NewHub constructs a hub with the given per-listener buffer size.
// Non-positive sizes fall back to 32.
func NewHub(bufSize int) *Hub {
	if bufSize <= 0 {
		bufSize = 32
	}
	return &Hub{
		listeners: make(map[uint64]chan Event),
		bufSize:   bufSize,
	}
}

// Register adds a listener and returns its id and receive channel. Callers
// must Unregister the id to release resources.
func (h *Hub) Register() (uint64, <-chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	ch := make(chan Event, h.bufSize)
	h.listeners[id] = ch
	return id, ch
}

// Unregister removes a listener and closes its channel. Unknown ids are
// ignored, so calling it twice is safe.
func (h *Hub) Unregister(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.listeners[id]; ok {
		delete(h.listeners, id)
		close(ch)
	}
}

// Publish delivers a search event to every listener, dropping it for any
// listener whose buffer is full.
func (h *Hub) Publish(ev SearchEvent) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	wrapped := Event{Type: "search", Search: ev}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.listeners {
		select {
		case ch <- wrapped:
		default:
		}
	}
}

// Size returns the current number of listeners.
func (h *Hub) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}
