// Package scratch hands out the temporary files used to exchange images with
// external tools.
//
// By default every call gets its own path, so concurrent captures and OCR
// runs never share a file. Shared mode reuses one fixed path per kind, which
// is how the desktop backend originally behaved.
package scratch

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/kbukum/babelink/errors"
	"github.com/kbukum/babelink/logger"
)

// Scratch file kinds.
const (
	KindCapture = "capture"
	KindOCR     = "ocr"
)

const filePrefix = "babelink_"

// Config configures the scratch arena.
type Config struct {
	// Dir holds the scratch files. Defaults to os.TempDir().
	Dir string `yaml:"dir" mapstructure:"dir"`
	// Shared reuses a fixed path per kind instead of a unique path per call.
	Shared bool `yaml:"shared" mapstructure:"shared"`
}

// ApplyDefaults fills in zero values.
func (c *Config) ApplyDefaults() {
	if c.Dir == "" {
		c.Dir = os.TempDir()
	}
}

// Validate checks that Dir exists and is a directory.
func (c *Config) Validate() error {
	info, err := os.Stat(c.Dir)
	if err != nil {
		return errors.IOFailure("access scratch dir "+c.Dir, err)
	}
	if !info.IsDir() {
		return errors.InvalidInput("scratch.dir", c.Dir+" is not a directory")
	}
	return nil
}

// Arena allocates and releases scratch paths.
type Arena struct {
	dir    string
	shared bool
	log    *logger.Logger
}

// New creates an Arena from cfg.
func New(cfg Config) *Arena {
	cfg.ApplyDefaults()
	return &Arena{dir: cfg.Dir, shared: cfg.Shared, log: logger.WithComponent("scratch")}
}

// Dir returns the directory scratch files are created in.
func (a *Arena) Dir() string { return a.dir }

// Shared reports whether the arena hands out fixed paths.
func (a *Arena) Shared() bool { return a.shared }

// Path returns a scratch path for kind. Nothing is created on disk.
func (a *Arena) Path(kind string) string {
	if a.shared {
		return filepath.Join(a.dir, filePrefix+kind+".png")
	}
	return filepath.Join(a.dir, filePrefix+kind+"_"+uuid.NewString()+".png")
}

// Write stores data at a fresh path for kind and returns the path.
func (a *Arena) Write(kind string, data []byte) (string, error) {
	path := a.Path(kind)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", errors.IOFailure("write temp image", err).WithDetail("path", path)
	}
	return path, nil
}

// Read returns the contents of a scratch file.
func (a *Arena) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IOFailure("read captured image", err).WithDetail("path", path)
	}
	return data, nil
}

// Release removes a scratch file. Failures are logged and otherwise ignored.
func (a *Arena) Release(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		a.log.Debug("scratch file not removed", logger.Fields(logger.FieldPath, path, logger.FieldError, err.Error()))
	}
}
