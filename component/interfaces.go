package component

import "context"

// HealthStatus is a component's health state.
type HealthStatus string

const (
	StatusHealthy HealthStatus = "healthy"
	// StatusDegraded means the component runs with reduced capability,
	// e.g. a command whose external tool is missing.
	StatusDegraded  HealthStatus = "degraded"
	StatusUnhealthy HealthStatus = "unhealthy"
)

// Health is the health report of one component, as served on /health.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Healthy reports whether the status is StatusHealthy.
func (h Health) Healthy() bool { return h.Status == StatusHealthy }

// Component is a long-lived part of the backend: the HTTP server, the
// telemetry exporters, the external tool set.
type Component interface {
	// Name must be unique within a Registry.
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Health(ctx context.Context) Health
}

// Description is a component's line in the startup summary.
type Description struct {
	// Name defaults to the component's Name().
	Name string
	// Type is "server", "tools" or "telemetry".
	Type    string
	Details string
	// Port is 0 for components that do not listen.
	Port int
}

// Describable components appear in the startup summary.
type Describable interface {
	Describe() Description
}

// Route is an HTTP route listed in the startup summary.
type Route struct {
	Method  string
	Path    string
	Handler string
}

// RouteProvider is implemented by components that serve HTTP routes.
type RouteProvider interface {
	Routes() []Route
}
