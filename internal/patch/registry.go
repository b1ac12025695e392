package patch

import (
	"sync"

	"github.com/editfix/editfix/internal/host"
)

// Registry holds the per-target patch singletons. Exactly one Patch
// exists per target identity for the life of the Registry, so every
// caller observes the same applied/unapplied state. The Registry is
// injected rather than held in package globals; process-wide behavior
// comes from the orchestrator owning one Registry for its lifetime.
type Registry struct {
	mu      sync.RWMutex
	patches map[host.Point]Patch
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{patches: make(map[host.Point]Patch)}
}

// Get returns the patch for target, constructing it with build on first
// request. Concurrent first-time callers are serialized with a
// double-checked lock so exactly one instance is ever built.
func (r *Registry) Get(target host.Point, build func() Patch) Patch {
	r.mu.RLock()
	p, ok := r.patches[target]
	r.mu.RUnlock()
	if ok {
		return p
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.patches[target]; ok {
		return p
	}
	p = build()
	r.patches[target] = p
	return p
}

// Lookup returns the patch for target if one has been constructed.
func (r *Registry) Lookup(target host.Point) (Patch, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.patches[target]
	return p, ok
}
