package process

import (
	"context"
	"time"

	"github.com/kbukum/babelink/provider"
)

var (
	_ provider.RequestResponse[Command, *Result] = (*Adapter)(nil)
	_ Executor                                   = (*Adapter)(nil)
)

// Config holds the defaults applied to every command an Adapter runs.
type Config struct {
	// Name is reported as the provider name in logs, spans and metrics.
	Name string `yaml:"name,omitempty" mapstructure:"name"`
	// GracePeriod replaces a zero Command.GracePeriod.
	GracePeriod time.Duration `yaml:"grace_period,omitempty" mapstructure:"grace_period"`
	// Timeout replaces a zero Command.Timeout. Zero leaves commands unbounded.
	Timeout time.Duration `yaml:"timeout,omitempty" mapstructure:"timeout"`
}

// fill copies the defaults into the unset fields of cmd.
func (c Config) fill(cmd Command) Command {
	if cmd.GracePeriod == 0 {
		cmd.GracePeriod = c.GracePeriod
	}
	if cmd.Timeout == 0 {
		cmd.Timeout = c.Timeout
	}
	return cmd
}

// Adapter is the bare executor: Run with the configured defaults. Runner
// layers middleware and resilience on top of it.
type Adapter struct {
	config Config
}

// NewAdapter returns an Adapter applying cfg.
func NewAdapter(cfg Config) *Adapter {
	return &Adapter{config: cfg}
}

// Run implements Executor.
func (a *Adapter) Run(ctx context.Context, cmd Command) (*Result, error) {
	return Run(ctx, a.config.fill(cmd))
}

// Name implements provider.Provider.
func (a *Adapter) Name() string { return a.config.Name }

// IsAvailable is always true; whether a given tool exists is a per-command
// question answered by LookPath.
func (a *Adapter) IsAvailable(context.Context) bool { return true }

// Execute implements provider.RequestResponse.
func (a *Adapter) Execute(ctx context.Context, cmd Command) (*Result, error) {
	return a.Run(ctx, cmd)
}
