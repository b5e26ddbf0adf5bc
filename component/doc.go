// Package component defines the lifecycle contract shared by the backend's
// long-lived parts.
//
// Components are registered with a Registry, started in registration order
// and stopped in reverse. Their Health feeds the /health endpoint; the
// optional Describable and RouteProvider interfaces feed the startup
// summary printed by bootstrap.
package component
