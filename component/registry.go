package component

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kbukum/babelink/logger"
)

// stopTimeout bounds each component's Stop within the caller's deadline.
const stopTimeout = 10 * time.Second

// Registry starts components in registration order and stops them in
// reverse. Only components that started successfully are stopped.
type Registry struct {
	mu         sync.RWMutex
	components []Component
	names      map[string]struct{}
	running    int // components[:running] have started
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// Register appends c. Register dependencies first.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.names[c.Name()]; dup {
		return fmt.Errorf("component %s already registered", c.Name())
	}
	r.names[c.Name()] = struct{}{}
	r.components = append(r.components, c)
	return nil
}

// StartAll starts every component not yet running. When one fails, the
// components this call started are stopped again before returning.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	log := logger.WithComponent("lifecycle")
	first := r.running
	for _, c := range r.components[first:] {
		if err := c.Start(ctx); err != nil {
			log.Error("component start failed", logger.MergeWithError(logger.Fields("name", c.Name()), err))
			if rbErr := r.stopDown(ctx, first); rbErr != nil {
				err = errors.Join(err, rbErr)
			}
			return fmt.Errorf("start %s: %w", c.Name(), err)
		}
		r.running++
		log.Debug("component started", logger.Fields("name", c.Name()))
	}
	return nil
}

// StopAll stops running components in reverse registration order and
// joins their errors.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopDown(ctx, 0)
}

// stopDown stops running components until only components[:floor] remain.
func (r *Registry) stopDown(ctx context.Context, floor int) error {
	log := logger.WithComponent("lifecycle")
	var errs []error
	for ; r.running > floor; r.running-- {
		c := r.components[r.running-1]
		stopCtx, cancel := context.WithTimeout(ctx, stopTimeout)
		err := c.Stop(stopCtx)
		cancel()
		if err != nil {
			log.Error("component stop failed", logger.MergeWithError(logger.Fields("name", c.Name()), err))
			errs = append(errs, fmt.Errorf("stop %s: %w", c.Name(), err))
			continue
		}
		log.Debug("component stopped", logger.Fields("name", c.Name()))
	}
	return errors.Join(errs...)
}

// HealthAll reports every component's health in registration order. The
// checks run concurrently, since tool lookups can touch the filesystem.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Health, len(r.components))
	var g errgroup.Group
	for i, c := range r.components {
		g.Go(func() error {
			out[i] = c.Health(ctx)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Descriptions returns the Description of every Describable component,
// named after the component when Name is left empty.
func (r *Registry) Descriptions() []Description {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Description
	for _, c := range r.components {
		if d, ok := c.(Describable); ok {
			desc := d.Describe()
			if desc.Name == "" {
				desc.Name = c.Name()
			}
			out = append(out, desc)
		}
	}
	return out
}

// Routes collects the routes of every RouteProvider component.
func (r *Registry) Routes() []Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Route
	for _, c := range r.components {
		if rp, ok := c.(RouteProvider); ok {
			out = append(out, rp.Routes()...)
		}
	}
	return out
}
