// Package live pushes full content snapshots to subscribers whenever the
// store changes.
package live

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/models"
)

type snapshotSource interface {
	Snapshot(ctx context.Context) ([]models.Content, error)
}

// Hub fans snapshots out to subscribers. Each subscriber holds at most one
// pending snapshot: a newer one replaces an unread older one.
type Hub struct {
	source  snapshotSource
	trigger chan struct{}

	mu     sync.Mutex
	subs   map[uint64]chan []models.Content
	nextID uint64
	closed bool
}

func NewHub(source snapshotSource) *Hub {
	return &Hub{
		source:  source,
		trigger: make(chan struct{}, 1),
		subs:    make(map[uint64]chan []models.Content),
	}
}

// Changed signals that the store was written. Signals arriving while a
// reload is pending collapse into one.
func (h *Hub) Changed() {
	select {
	case h.trigger <- struct{}{}:
	default:
	}
}

// Run reloads and broadcasts the snapshot after every change signal until
// ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-h.trigger:
			h.refresh(ctx)
		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

// Subscribe registers a subscriber and queues the current snapshot for it.
// The returned func unsubscribes and closes the channel. After Run has
// returned the channel comes back already closed.
func (h *Hub) Subscribe(ctx context.Context) (<-chan []models.Content, func()) {
	ch := make(chan []models.Content, 1)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.mu.Unlock()

	if snap, err := h.source.Snapshot(ctx); err != nil {
		slog.Error("initial snapshot failed", "error", err)
	} else {
		h.mu.Lock()
		if _, ok := h.subs[id]; ok {
			offer(ch, snap)
		}
		h.mu.Unlock()
	}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if c, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(c)
			}
		})
	}
}

// Subscribers reports how many subscribers are registered.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) refresh(ctx context.Context) {
	snap, err := h.source.Snapshot(ctx)
	if err != nil {
		slog.Error("snapshot reload failed", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		offer(ch, snap)
	}
	slog.Debug("snapshot broadcast", "items", len(snap), "subscribers", len(h.subs))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}

// offer replaces any unread snapshot in ch with snap. Callers hold h.mu.
func offer(ch chan []models.Content, snap []models.Content) {
	select {
	case ch <- snap:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}
