package resolve

import (
	"iter"
	"sync"

	"github.com/cmmoran/elementgen/internal/model"
)

// Registry accumulates every analyzed item of a run in discovery order.
// Duplicate (name, path) entries are allowed; lookups are first-match.
type Registry struct {
	mu    sync.RWMutex
	items []*model.Item
}

func NewRegistry() *Registry {
	return &Registry{items: make([]*model.Item, 0)}
}

// Add appends items, keeping their relative order.
func (r *Registry) Add(items ...*model.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range items {
		if it == nil {
			continue
		}
		r.items = append(r.items, it)
	}
}

// All yields the items added so far. Each call starts a fresh pass over a
// snapshot taken when iteration begins.
func (r *Registry) All() iter.Seq[*model.Item] {
	return func(yield func(*model.Item) bool) {
		r.mu.RLock()
		snapshot := r.items[:len(r.items):len(r.items)]
		r.mu.RUnlock()
		for _, it := range snapshot {
			if !yield(it) {
				return
			}
		}
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Behavior returns the first behavior registered under name.
func (r *Registry) Behavior(name string) (*model.Item, bool) {
	for it := range r.All() {
		if it.Kind == model.KindBehavior && it.Name == name {
			return it, true
		}
	}
	return nil, false
}
