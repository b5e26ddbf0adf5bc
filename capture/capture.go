package capture

import (
	"context"
	"strconv"
	"time"

	"github.com/kbukum/babelink/provider"
)

// DefaultTimeout bounds a single capture tool run.
const DefaultTimeout = 30 * time.Second

// Region is the screen rectangle to capture, in screen pixels. Coordinates
// may be negative on multi-monitor layouts.
type Region struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
}

// Capturer writes a PNG of region to path.
type Capturer interface {
	provider.Provider
	CaptureTo(ctx context.Context, region Region, path string) error
}

// Config selects and tunes the capture backend.
type Config struct {
	// Backend overrides the platform default (screencapture,
	// gnome-screenshot, powershell).
	Backend string `yaml:"backend" mapstructure:"backend"`
	// Binary overrides the path of the backend's tool.
	Binary string `yaml:"binary" mapstructure:"binary"`
	// FallbackBinary overrides the path of scrot on Linux.
	FallbackBinary string `yaml:"fallback_binary" mapstructure:"fallback_binary"`
	// Timeout bounds each tool run. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults fills in zero values.
func (c *Config) ApplyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
}

// formatNum renders v in its shortest form: 10, 10.5, -3.25.
func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
