package provider

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/kbukum/babelink/logger"
)

// Manager holds the initialized backends of one capability and picks one per
// call with its Selector.
type Manager[T Provider] struct {
	mu        sync.RWMutex
	registry  *Registry[T]
	selector  Selector[T]
	providers map[string]T
	log       *logger.Logger
}

// NewManager creates a Manager backed by registry and selector.
func NewManager[T Provider](registry *Registry[T], selector Selector[T]) *Manager[T] {
	return &Manager[T]{
		registry:  registry,
		selector:  selector,
		providers: make(map[string]T),
		log:       logger.Get("provider"),
	}
}

// Register adds a factory to the underlying registry.
func (m *Manager[T]) Register(name string, factory Factory[T]) {
	m.registry.Register(name, factory)
}

// Initialize builds backend name and runs its Init hook when it has one. A
// backend whose hook fails is not kept.
func (m *Manager[T]) Initialize(ctx context.Context, name string) error {
	instance, err := m.registry.Create(name)
	if err != nil {
		return fmt.Errorf("initialize %q: %w", name, err)
	}
	if init, ok := any(instance).(Initializable); ok {
		if err := init.Init(ctx); err != nil {
			return fmt.Errorf("initialize %q: %w", name, err)
		}
	}
	m.mu.Lock()
	m.providers[name] = instance
	m.mu.Unlock()
	m.log.Debug("backend initialized", logger.Fields(logger.FieldProvider, name))
	return nil
}

// Get returns the backend chosen by the selector.
func (m *Manager[T]) Get(ctx context.Context) (T, error) {
	m.mu.RLock()
	providers := maps.Clone(m.providers)
	m.mu.RUnlock()
	return m.selector.Select(ctx, providers)
}

// GetByName returns an initialized backend by name.
func (m *Manager[T]) GetByName(name string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.providers[name]; ok {
		return p, nil
	}
	var zero T
	return zero, fmt.Errorf("backend %q not initialized", name)
}

// Available returns the sorted names of the initialized backends.
func (m *Manager[T]) Available() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.providers))
}
