package command

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/kbukum/babelink/component"
	"github.com/kbukum/babelink/logger"
	"github.com/kbukum/babelink/provider"
)

const componentName = "commands"

var (
	_ component.Component   = (*ToolsComponent)(nil)
	_ component.Describable = (*ToolsComponent)(nil)
)

// ToolsComponent reports whether the external tools behind each command are
// installed. A missing tool degrades health without stopping the backend.
type ToolsComponent struct {
	svc *Service
	log *logger.Logger
}

// NewToolsComponent creates the "commands" component for svc.
func NewToolsComponent(svc *Service) *ToolsComponent {
	return &ToolsComponent{svc: svc, log: logger.WithComponent(componentName)}
}

// Name returns the component name.
func (t *ToolsComponent) Name() string { return componentName }

// Start logs the availability of each backend.
func (t *ToolsComponent) Start(ctx context.Context) error {
	for _, b := range t.svc.Backends(ctx) {
		fields := logger.Fields(logger.FieldCommand, b.Command, logger.FieldTool, b.Provider.Name())
		if b.Provider.IsAvailable(ctx) {
			t.log.Debug("backend available", fields)
		} else {
			t.log.Warn("backend unavailable, command will fail until it is installed", fields)
		}
	}
	for name, err := range t.svc.deps.SetupErrors {
		t.log.Warn("command disabled", logger.MergeWithError(logger.Fields(logger.FieldCommand, name), err))
	}
	return nil
}

// Stop closes the backends that hold resources.
func (t *ToolsComponent) Stop(ctx context.Context) error {
	var errs []error
	for _, b := range t.svc.Backends(ctx) {
		if c, ok := b.Provider.(provider.Closeable); ok {
			if err := c.Close(ctx); err != nil {
				errs = append(errs, fmt.Errorf("close %s: %w", b.Provider.Name(), err))
			}
		}
	}
	return stderrors.Join(errs...)
}

// Health is degraded while any backend is unavailable or failed to set up.
func (t *ToolsComponent) Health(ctx context.Context) component.Health {
	var missing []string
	for _, b := range t.svc.Backends(ctx) {
		if !b.Provider.IsAvailable(ctx) {
			missing = append(missing, fmt.Sprintf("%s (%s)", b.Provider.Name(), b.Command))
		}
	}
	for _, name := range Names {
		if t.svc.deps.SetupErrors[name] != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return component.Health{
			Name:    componentName,
			Status:  component.StatusDegraded,
			Message: "unavailable: " + strings.Join(missing, ", "),
		}
	}
	return component.Health{Name: componentName, Status: component.StatusHealthy}
}

// Describe returns summary info for the startup display.
func (t *ToolsComponent) Describe() component.Description {
	var parts []string
	for _, b := range t.svc.Backends(context.Background()) {
		parts = append(parts, b.Command+"="+b.Provider.Name())
	}
	return component.Description{
		Name:    "Commands",
		Type:    "tools",
		Details: strings.Join(parts, " "),
	}
}
