package app

import (
	"fmt"
	"slices"

	"github.com/kbukum/babelink/capture"
	"github.com/kbukum/babelink/command"
	"github.com/kbukum/babelink/config"
	"github.com/kbukum/babelink/observability"
	"github.com/kbukum/babelink/ocr"
	"github.com/kbukum/babelink/permission"
	"github.com/kbukum/babelink/process"
	"github.com/kbukum/babelink/scratch"
	"github.com/kbukum/babelink/server"
	"github.com/kbukum/babelink/speech"
	"github.com/kbukum/babelink/sysinfo"
	"github.com/kbukum/babelink/translation"
)

// ServiceName is the default service name, config directory and env prefix.
const ServiceName = "babelink"

// EnvPrefix prefixes every environment override, e.g. BABELINK_SERVER_PORT.
const EnvPrefix = "BABELINK"

// Config is the backend configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config             `yaml:"server" mapstructure:"server"`
	Scratch       scratch.Config            `yaml:"scratch" mapstructure:"scratch"`
	Process       process.Config            `yaml:"process" mapstructure:"process"`
	Capture       capture.Config            `yaml:"capture" mapstructure:"capture"`
	OCR           ocr.Config                `yaml:"ocr" mapstructure:"ocr"`
	Translation   translation.Config        `yaml:"translation" mapstructure:"translation"`
	Speech        speech.Config             `yaml:"speech" mapstructure:"speech"`
	Permission    permission.Config         `yaml:"permission" mapstructure:"permission"`
	SysInfo       sysinfo.Config            `yaml:"sysinfo" mapstructure:"sysinfo"`
	Commands      map[string]command.Policy `yaml:"commands" mapstructure:"commands"`
	Observability observability.Config      `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills in zero values across every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Scratch.ApplyDefaults()
	c.Capture.ApplyDefaults()
	c.OCR.ApplyDefaults()
	c.Translation.ApplyDefaults()
	c.Speech.ApplyDefaults()
	c.Permission.ApplyDefaults()
	c.SysInfo.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks the configuration after defaults are applied.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Scratch.Validate(); err != nil {
		return fmt.Errorf("scratch: %w", err)
	}
	if c.Speech.MaxConcurrent < 0 {
		return fmt.Errorf("speech.max_concurrent must be non-negative (got: %d)", c.Speech.MaxConcurrent)
	}
	for name, p := range c.Commands {
		if !slices.Contains(command.Names, name) {
			return fmt.Errorf("commands.%s: unknown command", name)
		}
		if p.Timeout < 0 {
			return fmt.Errorf("commands.%s.timeout must be non-negative", name)
		}
	}
	return c.Observability.Validate()
}

// Load reads config.yml, .env files and BABELINK_* variables into a Config.
func Load(opts ...config.LoaderOption) (*Config, error) {
	cfg := &Config{}
	opts = append([]config.LoaderOption{config.WithEnvPrefix(EnvPrefix)}, opts...)
	if err := config.LoadConfig(ServiceName, cfg, opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}
