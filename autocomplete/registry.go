package autocomplete

import "sync"

// Registry tracks every live controller of one page so a single outside-click
// handler can close them all. Controllers are added and removed with their rows.
type Registry struct {
	mu          sync.RWMutex
	controllers map[string]*Controller
	order       []string
}

func NewRegistry() *Registry {
	return &Registry{controllers: make(map[string]*Controller)}
}

func (r *Registry) Register(c *Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.controllers[c.ID()]; !exists {
		r.order = append(r.order, c.ID())
	}
	r.controllers[c.ID()] = c
}

func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.controllers[id]; !exists {
		return
	}
	delete(r.controllers, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *Registry) Get(id string) (*Controller, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.controllers[id]
	return c, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.controllers)
}

// DismissOutside hides every open dropdown except the one inside wrapperID
// (empty when the click hit no wrapper at all). It returns the IDs that
// were actually closed.
func (r *Registry) DismissOutside(wrapperID string) []string {
	r.mu.RLock()
	targets := make([]*Controller, 0, len(r.order))
	for _, id := range r.order {
		if id != wrapperID {
			targets = append(targets, r.controllers[id])
		}
	}
	r.mu.RUnlock()

	var closed []string
	for _, c := range targets {
		if c.Hide() {
			closed = append(closed, c.ID())
		}
	}
	return closed
}
