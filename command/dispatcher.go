package command

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kbukum/babelink/errors"
	"github.com/kbukum/babelink/logger"
	"github.com/kbukum/babelink/observability"
	"github.com/kbukum/babelink/provider"
	"github.com/kbukum/babelink/resilience"
)

// Handler runs one command from its raw JSON arguments.
type Handler = provider.RequestResponse[json.RawMessage, any]

// Policy is the optional resilience applied to one command.
type Policy struct {
	// Timeout bounds the whole command. Zero leaves only the tool timeouts.
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	resilience.Policy `yaml:",inline" mapstructure:",squash"`
}

// Options configures the Dispatcher middleware.
type Options struct {
	// ServiceName labels spans and metrics. Defaults to "babelink".
	ServiceName string
	// Logger receives per-command logs. Defaults to the "command" component logger.
	Logger *logger.Logger
	// Metrics records command counts and durations. Nil disables metrics.
	Metrics *observability.Metrics
	// Policies holds per-command resilience keyed by command name.
	Policies map[string]Policy
}

// Dispatcher routes command invocations by name.
type Dispatcher struct {
	handlers map[string]Handler
	service  string
	metrics  *observability.Metrics
}

// NewDispatcher builds a handler per command on top of svc.
func NewDispatcher(svc *Service, opts Options) *Dispatcher {
	if opts.ServiceName == "" {
		opts.ServiceName = "babelink"
	}
	if opts.Logger == nil {
		opts.Logger = logger.WithComponent("command")
	}

	mws := []provider.Middleware[json.RawMessage, any]{provider.WithTracing[json.RawMessage, any](opts.ServiceName)}
	if opts.Metrics != nil {
		mws = append(mws, provider.WithMetrics[json.RawMessage, any](opts.Metrics, opts.ServiceName))
	}
	mws = append(mws, provider.WithLogging[json.RawMessage, any](opts.Logger))
	chain := provider.Chain(mws...)

	d := &Dispatcher{
		handlers: make(map[string]Handler, len(Names)),
		service:  opts.ServiceName,
		metrics:  opts.Metrics,
	}
	for name, h := range handlers(svc) {
		if p, ok := opts.Policies[name]; ok {
			h = provider.WithResilience(h, provider.FromPolicy(name, p.Policy, p.Timeout))
		}
		d.handlers[name] = chain(h)
	}
	return d
}

// typed exposes run, which takes decoded arguments, as a raw JSON Handler.
func typed[A, R any](name string, parse func(json.RawMessage) (A, error), run func(context.Context, A) (R, error)) Handler {
	return provider.Adapt[json.RawMessage, any, A, R](
		provider.NewFunc(name, run),
		name,
		func(_ context.Context, raw json.RawMessage) (A, error) { return parse(raw) },
		func(out R) (any, error) { return out, nil },
	)
}

func handlers(svc *Service) map[string]Handler {
	return map[string]Handler{
		CaptureScreen: typed(CaptureScreen, captureArgs, svc.CaptureScreen),
		ExtractText:   typed(ExtractText, extractTextArgs, svc.ExtractText),
		TranslateText: typed(TranslateText, translateArgs, svc.TranslateText),
		SpeakText: typed(SpeakText, speakTextArgs, func(ctx context.Context, r speakRequest) (any, error) {
			return nil, svc.SpeakText(ctx, r.Text, r.Voice)
		}),
		CheckPermissions: typed(CheckPermissions, noArgs, func(ctx context.Context, _ struct{}) (map[string]bool, error) {
			return svc.CheckPermissions(ctx)
		}),
		GetSystemInfo: typed(GetSystemInfo, noArgs, func(ctx context.Context, _ struct{}) (map[string]string, error) {
			return svc.GetSystemInfo(ctx)
		}),
	}
}

// Invoke runs the command called name with raw JSON arguments.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args json.RawMessage) (any, error) {
	h, ok := d.handlers[name]
	if !ok {
		return nil, errors.NotFound("command", name)
	}
	return h.Execute(ctx, args)
}

// Commands returns the registered command names in stable order.
func (d *Dispatcher) Commands() []string {
	out := make([]string, 0, len(d.handlers))
	for _, name := range Names {
		if _, ok := d.handlers[name]; ok {
			out = append(out, name)
		}
	}
	return out
}
