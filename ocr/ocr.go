package ocr

import (
	"context"
	"time"

	"github.com/kbukum/babelink/provider"
)

// DefaultLanguages is the tesseract language set passed with -l.
const DefaultLanguages = "eng+por+spa+fra+deu+ita+rus+jpn+kor+chi_sim+chi_tra+ara"

// DefaultTimeout bounds a single recognition.
const DefaultTimeout = 60 * time.Second

// Engine names.
const (
	EngineTesseract = "tesseract"
	EngineGosseract = "gosseract"
)

// Engine recognizes the text in the image stored at imagePath.
type Engine interface {
	provider.Provider
	// Recognize returns the recognized text, trimmed. languages is a
	// '+'-separated list of tesseract language codes.
	Recognize(ctx context.Context, imagePath, languages string) (string, error)
}

// Config configures text extraction.
type Config struct {
	// Engine is the preferred engine: tesseract (default) or gosseract.
	Engine string `yaml:"engine" mapstructure:"engine"`
	// Binary overrides the path of the tesseract CLI.
	Binary string `yaml:"binary" mapstructure:"binary"`
	// Languages overrides DefaultLanguages.
	Languages string `yaml:"languages" mapstructure:"languages"`
	// Timeout bounds each recognition. Defaults to 60s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// SkipFormatCheck turns off format sniffing. Sniffing only logs; bytes
	// of an unknown format still reach the engine.
	SkipFormatCheck bool `yaml:"skip_format_check" mapstructure:"skip_format_check"`
}

// ApplyDefaults fills in zero values.
func (c *Config) ApplyDefaults() {
	if c.Engine == "" {
		c.Engine = EngineTesseract
	}
	if c.Binary == "" {
		c.Binary = EngineTesseract
	}
	if c.Languages == "" {
		c.Languages = DefaultLanguages
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
}
