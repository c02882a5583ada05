package feed

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry caches one engine per viewer so tab switches and like toggles
// reuse the loaded union instead of refetching it. Entries expire after
// ttl; a stale or missing entry means the next request loads fresh.
type Registry struct {
	source Source
	ttl    time.Duration

	mu      sync.Mutex
	entries map[uuid.UUID]*entry
}

type entry struct {
	engine   *Engine
	loadedAt time.Time
}

func NewRegistry(source Source, ttl time.Duration) *Registry {
	return &Registry{
		source:  source,
		ttl:     ttl,
		entries: make(map[uuid.UUID]*entry),
	}
}

// Get returns the viewer's cached engine and whether it is still fresh.
// A false second return means the caller should Load before projecting.
func (r *Registry) Get(viewerID uuid.UUID) (*Engine, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ent, ok := r.entries[viewerID]; ok {
		if time.Since(ent.loadedAt) < r.ttl && ent.engine.Loaded() {
			return ent.engine, true
		}
	}

	engine := NewEngine(r.source, viewerID)
	r.entries[viewerID] = &entry{engine: engine, loadedAt: time.Now()}
	return engine, false
}

// Invalidate drops the viewer's cached union, forcing the next request to
// reload. Called after the viewer creates, edits or deletes an item.
func (r *Registry) Invalidate(viewerID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, viewerID)
}
