package core

import (
	"sync"
)

// Registry is a process-wide mapping from specification name to Spec.
//
// A Spec is created on its first Define, merged into on every later
// Define of the same name, and never deleted.
//
// The Registry guards its own map, but it does not serialize Builder
// mutation against live Fire calls on bound Instances.  Define specs
// at process setup, before instances start transitioning, or
// synchronize externally.
type Registry struct {
	mu    sync.RWMutex
	specs map[string]*Spec
	order []string
}

// NewRegistry makes an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		specs: make(map[string]*Spec),
	}
}

// DefaultRegistry backs the package-level Define and Lookup.
var DefaultRegistry = NewRegistry()

// Define creates or re-opens the named Spec and runs the body against
// a Builder for it.  Declarations merge additively: states and events
// new to the Spec are appended in declaration order, and the initial
// state stays whatever was declared first ever.  A nil body just
// ensures the Spec exists.
func (r *Registry) Define(name string, body func(*Builder)) *Spec {
	r.mu.Lock()
	spec, have := r.specs[name]
	if !have {
		spec = &Spec{Name: name}
		r.specs[name] = spec
		r.order = append(r.order, name)
	}
	r.mu.Unlock()

	if body != nil {
		body(&Builder{spec: spec})
	}
	return spec
}

// Register puts an already-built Spec (typically parsed from a YAML
// document) into the registry under its own Name.  A first Register
// creates; a later Register of the same name merges per Spec.Merge.
// The registered Spec is returned, which is the existing one when
// merging.
func (r *Registry) Register(spec *Spec) *Spec {
	r.mu.Lock()
	existing, have := r.specs[spec.Name]
	if !have {
		r.specs[spec.Name] = spec
		r.order = append(r.order, spec.Name)
		r.mu.Unlock()
		return spec
	}
	r.mu.Unlock()
	existing.Merge(spec)
	return existing
}

// Lookup finds a registered Spec by name.
func (r *Registry) Lookup(name string) (*Spec, bool) {
	r.mu.RLock()
	spec, have := r.specs[name]
	r.mu.RUnlock()
	return spec, have
}

// Names returns the registered names in first-definition order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	acc := make([]string, len(r.order))
	copy(acc, r.order)
	r.mu.RUnlock()
	return acc
}

// Define defines or re-opens a Spec in the DefaultRegistry.
func Define(name string, body func(*Builder)) *Spec {
	return DefaultRegistry.Define(name, body)
}

// Lookup finds a Spec in the DefaultRegistry.
func Lookup(name string) (*Spec, bool) {
	return DefaultRegistry.Lookup(name)
}
