// Package command is the surface the desktop front-end talks to.
//
// Service exposes the six commands as typed methods. Dispatcher maps a
// command name and its raw JSON arguments onto those methods, wrapping each
// one in the provider middleware chain (logging, metrics, tracing and an
// optional resilience policy). RegisterRoutes publishes the dispatcher on
// the command server under POST /invoke/:command.
package command
