package observability

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/babelink/component"
)

const componentName = "telemetry"

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component installs the OTLP providers on Start and flushes them on Stop.
type Component struct {
	cfg            Config
	serviceName    string
	serviceVersion string

	mu       sync.Mutex
	shutdown ShutdownFunc
}

// NewComponent creates the telemetry component.
func NewComponent(cfg Config, serviceName, serviceVersion string) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, serviceName: serviceName, serviceVersion: serviceVersion}
}

// Name returns the component name.
func (c *Component) Name() string { return componentName }

// Start calls Setup.
func (c *Component) Start(ctx context.Context) error {
	shutdown, err := Setup(ctx, c.cfg, c.serviceName, c.serviceVersion)
	if err != nil {
		return fmt.Errorf("telemetry setup: %w", err)
	}
	c.mu.Lock()
	c.shutdown = shutdown
	c.mu.Unlock()
	return nil
}

// Stop flushes pending spans and metrics.
func (c *Component) Stop(ctx context.Context) error {
	c.mu.Lock()
	shutdown := c.shutdown
	c.shutdown = nil
	c.mu.Unlock()
	if shutdown == nil {
		return nil
	}
	return shutdown(ctx)
}

// Health is always healthy; export failures are retried by the SDK.
func (c *Component) Health(context.Context) component.Health {
	return component.Health{Name: componentName, Status: component.StatusHealthy}
}

// Describe returns summary info for the startup display.
func (c *Component) Describe() component.Description {
	details := "disabled"
	if c.cfg.Enabled {
		details = fmt.Sprintf("otlp/http %s sample=%.2f", c.cfg.Endpoint, c.cfg.SampleRate)
	}
	return component.Description{Name: "Telemetry", Type: "telemetry", Details: details}
}
