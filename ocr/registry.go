package ocr

import (
	"context"

	"github.com/kbukum/babelink/errors"
	"github.com/kbukum/babelink/logger"
	"github.com/kbukum/babelink/process"
	"github.com/kbukum/babelink/provider"
)

// EngineFactory builds an engine from the OCR config.
type EngineFactory func(cfg Config, exec process.Executor) Engine

var engineFactories = map[string]EngineFactory{
	EngineTesseract: func(cfg Config, exec process.Executor) Engine { return NewTesseract(exec, cfg) },
}

// registerEngine makes an optional engine selectable. Called from init in
// build-tagged files.
func registerEngine(name string, f EngineFactory) {
	engineFactories[name] = f
}

// Engines picks the OCR engine per call: the configured engine when it is
// available, tesseract otherwise.
type Engines struct {
	*provider.Manager[Engine]
	fallback string
}

// NewEngines initializes the configured engine and the tesseract fallback.
// An engine that was not compiled in, or whose Init fails, is skipped with a
// warning.
func NewEngines(ctx context.Context, exec process.Executor, cfg Config) (*Engines, error) {
	cfg.ApplyDefaults()

	priority := []string{cfg.Engine}
	if cfg.Engine != EngineTesseract {
		priority = append(priority, EngineTesseract)
	}

	m := provider.NewManager(provider.NewRegistry[Engine](), &provider.PrioritySelector[Engine]{Priority: priority})
	for name, f := range engineFactories {
		m.Register(name, func() (Engine, error) { return f(cfg, exec), nil })
	}

	log := logger.WithComponent("ocr")
	for _, name := range priority {
		if err := m.Initialize(ctx, name); err != nil {
			if name == EngineTesseract {
				return nil, err
			}
			log.Warn("OCR engine unavailable, using tesseract", logger.MergeWithError(logger.Fields(logger.FieldEngine, name), err))
		}
	}
	log.Debug("OCR engines ready", logger.Fields("engines", m.Available()))
	return &Engines{Manager: m, fallback: EngineTesseract}, nil
}

// Pick returns the first available engine in priority order. When none
// reports available it returns the fallback, so the caller gets the real
// spawn error instead of a selection error.
func (e *Engines) Pick(ctx context.Context) (Engine, error) {
	if eng, err := e.Get(ctx); err == nil {
		return eng, nil
	}
	eng, err := e.GetByName(e.fallback)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return eng, nil
}
