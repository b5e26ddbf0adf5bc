package translation

import (
	"context"
	"time"

	"github.com/kbukum/babelink/provider"
	"github.com/kbukum/babelink/resilience"
)

// Request is one translation.
type Request struct {
	Text string `json:"text" validate:"required"`
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
}

// Translator translates text between two languages.
type Translator interface {
	provider.Provider
	Translate(ctx context.Context, req Request) (string, error)
}

// Environment fallbacks and API constants.
const (
	EnvAPIKey  = "IBM_WATSON_API_KEY"
	EnvURL     = "IBM_WATSON_URL"
	DefaultURL = "https://api.us-south.language-translator.watson.cloud.ibm.com"
	APIVersion = "2018-05-01"

	// DefaultTimeout bounds a translation request.
	DefaultTimeout = 30 * time.Second
)

// Config configures the Watson translator.
type Config struct {
	// APIKey overrides IBM_WATSON_API_KEY.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	// URL overrides IBM_WATSON_URL.
	URL string `yaml:"url" mapstructure:"url"`
	// Timeout bounds each request. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// Resilience adds retry, circuit breaking or rate limiting. All off by default.
	Resilience resilience.Policy `yaml:"resilience" mapstructure:"resilience"`
}

// ApplyDefaults fills in zero values.
func (c *Config) ApplyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
}
