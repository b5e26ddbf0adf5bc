package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kbukum/babelink/component"
	"github.com/kbukum/babelink/logger"
)

// App runs a set of components under one lifecycle. C is the binary's
// config type.
//
//	a, err := bootstrap.NewApp(cfg)
//	a.RegisterComponent(server.NewComponent(srv))
//	return a.Run(ctx)
type App[C Config] struct {
	Name       string
	Version    string
	Cfg        C
	Components *component.Registry
	Logger     *logger.Logger
	Summary    *Summary

	shutdownTimeout time.Duration
	summaryOut      io.Writer
}

// NewApp applies defaults to cfg, validates it and initializes the global
// logger from its Logging section unless WithLogger is given.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	base := cfg.GetServiceConfig()
	o := resolveOptions(opts)

	a := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		Components:      component.NewRegistry(),
		Summary:         NewSummary(base.Name, base.Version),
		shutdownTimeout: base.ShutdownTimeout,
		summaryOut:      os.Stderr,
		Logger:          o.logger,
	}
	if o.shutdownTimeout > 0 {
		a.shutdownTimeout = o.shutdownTimeout
	}
	if o.summaryOut != nil {
		a.summaryOut = o.summaryOut
	}
	if a.Logger == nil {
		logger.Init(base.Logging, base.Name)
		a.Logger = logger.GetGlobalLogger()
	}
	return a, nil
}

// RegisterComponent adds c to the start order.
func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// ReadyCheck lists every component that is not healthy.
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	var bad []string
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Healthy() {
			continue
		}
		entry := h.Name + "=" + string(h.Status)
		if h.Message != "" {
			entry += " (" + h.Message + ")"
		}
		bad = append(bad, entry)
	}
	if len(bad) > 0 {
		return fmt.Errorf("components not healthy: %s", strings.Join(bad, ", "))
	}
	return nil
}

// Run starts every component and blocks until SIGINT, SIGTERM or ctx ends,
// then stops them in reverse order.
func (a *App[C]) Run(ctx context.Context) error {
	return a.RunTask(ctx, func(ctx context.Context) error {
		a.Logger.Info("babelink ready")
		<-ctx.Done()
		return nil
	})
}

// RunTask starts every component, runs task and stops the components once
// task returns. task's context ends on SIGINT or SIGTERM. The task error
// wins over a shutdown error.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.start(ctx); err != nil {
		return err
	}
	taskErr := task(ctx)
	shutdownErr := a.shutdown()
	if taskErr != nil {
		return taskErr
	}
	return shutdownErr
}

func (a *App[C]) start(ctx context.Context) error {
	began := time.Now()
	a.Logger.Info("starting", logger.Fields("name", a.Name, "version", a.Version))

	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("startup: %w", err)
	}
	// A missing optional tool degrades a command; it does not abort startup.
	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("starting degraded", logger.MergeWithError(nil, err))
	}

	a.Summary.SetStartupDuration(time.Since(began))
	if err := a.Summary.Render(ctx, a.summaryOut, a.Components); err != nil {
		a.Logger.Warn("startup summary failed", logger.ErrorFields("summary", err))
	}
	return nil
}

// shutdown runs on a fresh context: the run context is usually already
// cancelled by the signal that triggered it.
func (a *App[C]) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	a.Logger.Info("shutting down", logger.Fields("timeout", a.shutdownTimeout.String()))
	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("shutdown finished with errors", logger.MergeWithError(nil, err))
		return err
	}
	a.Logger.Info("shutdown complete")
	return nil
}
