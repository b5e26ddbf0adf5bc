package provider

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry maps backend names to factories for one capability.
type Registry[T Provider] struct {
	mu        sync.RWMutex
	factories map[string]Factory[T]
}

// NewRegistry creates a new empty Registry.
func NewRegistry[T Provider]() *Registry[T] {
	return &Registry[T]{factories: make(map[string]Factory[T])}
}

// Register adds the factory for backend name, replacing any earlier one.
func (r *Registry[T]) Register(name string, factory Factory[T]) {
	r.mu.Lock()
	r.factories[name] = factory
	r.mu.Unlock()
}

// Create builds backend name. An unknown name yields an error listing the
// registered backends, since it usually comes from a config typo.
func (r *Registry[T]) Create(name string) (T, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		var zero T
		return zero, fmt.Errorf("unknown backend %q (known: %s)", name, strings.Join(r.Names(), ", "))
	}
	return factory()
}

// Names returns the registered backend names, sorted.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
