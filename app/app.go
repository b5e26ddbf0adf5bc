package app

import (
	"context"
	"runtime"

	"github.com/kbukum/babelink/bootstrap"
	"github.com/kbukum/babelink/command"
	"github.com/kbukum/babelink/logger"
	"github.com/kbukum/babelink/observability"
	"github.com/kbukum/babelink/server"
)

// Backend is the assembled backend.
type Backend struct {
	*bootstrap.App[*Config]
	Service    *command.Service
	Dispatcher *command.Dispatcher
	Server     *server.Server
}

// New assembles the backend for the running platform: telemetry, the
// command tools and the HTTP server, registered in that start order.
func New(ctx context.Context, cfg *Config, opts ...bootstrap.Option) (*Backend, error) {
	return NewFor(ctx, runtime.GOOS, runtime.GOARCH, cfg, opts...)
}

// NewFor is New for an explicit platform.
func NewFor(ctx context.Context, goos, goarch string, cfg *Config, opts ...bootstrap.Option) (*Backend, error) {
	a, err := bootstrap.NewApp(cfg, opts...)
	if err != nil {
		return nil, err
	}

	if err := a.RegisterComponent(observability.NewComponent(cfg.Observability, cfg.Name, cfg.Version)); err != nil {
		return nil, err
	}

	metrics, err := observability.NewDefaultMetrics(cfg.Name)
	if err != nil {
		return nil, err
	}

	svc := BuildService(ctx, goos, goarch, NewExecutor(cfg, metrics), cfg)
	dispatcher := command.NewDispatcher(svc, command.Options{
		ServiceName: cfg.Name,
		Logger:      logger.WithComponent("command"),
		Metrics:     metrics,
		Policies:    cfg.Commands,
	})
	if err := a.RegisterComponent(command.NewToolsComponent(svc)); err != nil {
		return nil, err
	}
	for _, b := range svc.Backends(ctx) {
		a.Summary.TrackCommand(b.Command, b.Provider.Name())
	}

	srv, err := server.New(cfg.Server, a.Logger)
	if err != nil {
		return nil, err
	}
	srv.RegisterDefaultEndpoints(cfg.Name, a.Components.HealthAll)
	dispatcher.RegisterRoutes(srv)
	if err := a.RegisterComponent(server.NewComponent(srv)); err != nil {
		return nil, err
	}

	return &Backend{App: a, Service: svc, Dispatcher: dispatcher, Server: srv}, nil
}
