package capture

import (
	"github.com/kbukum/babelink/errors"
	"github.com/kbukum/babelink/process"
	"github.com/kbukum/babelink/provider"
)

// DefaultBackend returns the capture backend used on goos, or "" when the
// platform has none.
func DefaultBackend(goos string) string {
	switch goos {
	case "darwin":
		return BackendScreencapture
	case "linux":
		return BackendGnome
	case "windows":
		return BackendPowerShell
	default:
		return ""
	}
}

// NewRegistry returns a registry with every capture backend registered.
func NewRegistry(exec process.Executor, cfg Config) *provider.Registry[Capturer] {
	r := provider.NewRegistry[Capturer]()
	r.Register(BackendScreencapture, func() (Capturer, error) {
		return NewScreencapture(exec, cfg), nil
	})
	r.Register(BackendGnome, func() (Capturer, error) {
		return NewGnomeScreenshot(exec, cfg), nil
	})
	r.Register(BackendPowerShell, func() (Capturer, error) {
		return NewPowerShell(exec, cfg), nil
	})
	return r
}

// New builds the capturer named by cfg.Backend, or the default for goos.
func New(goos string, exec process.Executor, cfg Config) (Capturer, error) {
	name := cfg.Backend
	if name == "" {
		name = DefaultBackend(goos)
	}
	if name == "" {
		return nil, errors.UnsupportedPlatform("screen capture", goos)
	}
	c, err := NewRegistry(exec, cfg).Create(name)
	if err != nil {
		return nil, errors.InvalidInput("capture.backend", err.Error())
	}
	return c, nil
}
