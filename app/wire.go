package app

import (
	"context"

	"github.com/kbukum/babelink/capture"
	"github.com/kbukum/babelink/command"
	"github.com/kbukum/babelink/logger"
	"github.com/kbukum/babelink/observability"
	"github.com/kbukum/babelink/ocr"
	"github.com/kbukum/babelink/permission"
	"github.com/kbukum/babelink/process"
	"github.com/kbukum/babelink/provider"
	"github.com/kbukum/babelink/scratch"
	"github.com/kbukum/babelink/speech"
	"github.com/kbukum/babelink/sysinfo"
	"github.com/kbukum/babelink/translation"
)

// NewExecutor returns the process runner every tool runs through, traced,
// measured and logged like the commands themselves.
func NewExecutor(cfg *Config, metrics *observability.Metrics) process.Executor {
	pc := cfg.Process
	if pc.Name == "" {
		pc.Name = "tool"
	}
	mws := []provider.Middleware[process.Command, *process.Result]{
		provider.WithTracing[process.Command, *process.Result](cfg.Name),
	}
	if metrics != nil {
		mws = append(mws, provider.WithMetrics[process.Command, *process.Result](metrics, cfg.Name))
	}
	mws = append(mws, provider.WithLogging[process.Command, *process.Result](logger.WithComponent("process")))
	return process.NewRunner(pc, provider.ResilienceConfig{}, mws...)
}

// BuildService creates the capability services for goos and goarch. A
// capability that cannot be built, typically on an unsupported platform, is
// recorded as a setup error so only its command fails.
func BuildService(ctx context.Context, goos, goarch string, exec process.Executor, cfg *Config) *command.Service {
	log := logger.WithComponent("app")
	setupErrs := make(map[string]error)
	fail := func(name string, err error) {
		setupErrs[name] = err
		log.Warn("command unavailable", logger.MergeWithError(logger.Fields(logger.FieldCommand, name, logger.FieldPlatform, goos), err))
	}

	arena := scratch.New(cfg.Scratch)
	deps := command.Deps{
		Permission:  permission.NewChecker(goos, exec, cfg.Permission),
		SysInfo:     sysinfo.NewFor(goos, goarch, exec, cfg.SysInfo),
		SetupErrors: setupErrs,
	}

	if c, err := capture.New(goos, exec, cfg.Capture); err != nil {
		fail(command.CaptureScreen, err)
	} else {
		deps.Capture = capture.NewService(c, arena)
	}

	if engines, err := ocr.NewEngines(ctx, exec, cfg.OCR); err != nil {
		fail(command.ExtractText, err)
	} else {
		deps.OCR = ocr.NewService(engines, arena, cfg.OCR)
	}

	if w, err := translation.NewWatson(cfg.Translation); err != nil {
		fail(command.TranslateText, err)
	} else {
		deps.Translation = translation.NewService(w)
	}

	if s, err := speech.New(goos, exec, cfg.Speech); err != nil {
		fail(command.SpeakText, err)
	} else {
		deps.Speech = speech.NewService(s, cfg.Speech)
	}

	return command.NewService(deps)
}
