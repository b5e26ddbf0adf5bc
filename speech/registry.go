package speech

import (
	"github.com/kbukum/babelink/errors"
	"github.com/kbukum/babelink/process"
	"github.com/kbukum/babelink/provider"
)

// DefaultBackend returns the synthesizer used on goos, or "" when the
// platform has none.
func DefaultBackend(goos string) string {
	switch goos {
	case "darwin":
		return BackendSay
	case "linux":
		return BackendESpeak
	case "windows":
		return BackendSAPI
	default:
		return ""
	}
}

// NewRegistry returns a registry with every speech backend registered.
func NewRegistry(exec process.Executor, cfg Config) *provider.Registry[Synthesizer] {
	r := provider.NewRegistry[Synthesizer]()
	r.Register(BackendSay, func() (Synthesizer, error) { return NewSay(exec, cfg), nil })
	r.Register(BackendESpeak, func() (Synthesizer, error) { return NewESpeak(exec, cfg), nil })
	r.Register(BackendSAPI, func() (Synthesizer, error) { return NewSAPI(exec, cfg), nil })
	return r
}

// New builds the synthesizer named by cfg.Backend, or the default for goos.
func New(goos string, exec process.Executor, cfg Config) (Synthesizer, error) {
	name := cfg.Backend
	if name == "" {
		name = DefaultBackend(goos)
	}
	if name == "" {
		return nil, errors.UnsupportedPlatform("speech synthesis", goos)
	}
	s, err := NewRegistry(exec, cfg).Create(name)
	if err != nil {
		return nil, errors.InvalidInput("speech.backend", err.Error())
	}
	return s, nil
}
