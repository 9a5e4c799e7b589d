// FILE: lixenwraith/treeconfig/registry.go
package treeconfig

import (
	"sync"
)

// Registry maps configuration names to root nodes. The first request for a
// name creates an empty root; later requests return the same node.
//
// Registry methods are safe for concurrent use. The nodes they return are not.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*Node
}

// NewRegistry creates an empty registry, independent of the default one.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Node)}
}

// Named returns the root registered under name, creating it on first use.
// Each populate function is applied to the root on every call, extending it.
func (r *Registry) Named(name string, populate ...func(*Node)) *Node {
	r.mu.Lock()
	root, exists := r.entries[name]
	if !exists {
		root = New()
		r.entries[name] = root
	}
	r.mu.Unlock()

	for _, fn := range populate {
		root.Configure(fn)
	}
	return root
}

// Lookup returns the root registered under name without creating it.
func (r *Registry) Lookup(name string) (*Node, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	root, exists := r.entries[name]
	return root, exists
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return sortedKeys(r.entries)
}

// Remove drops name from the registry. The next Named call creates a fresh root.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.entries[name]
	delete(r.entries, name)
	return exists
}

// defaultRegistry is created on first use and lives for the process lifetime.
var defaultRegistry = sync.OnceValue(NewRegistry)

// Default returns the process-wide registry used by For.
func Default() *Registry {
	return defaultRegistry()
}

// For returns the root named name from the default registry, applying populate.
func For(name string, populate ...func(*Node)) *Node {
	return Default().Named(name, populate...)
}
