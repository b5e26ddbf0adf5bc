package process

import (
	"io"
	"time"
)

// DefaultGracePeriod is how long a cancelled process group has between
// SIGTERM and SIGKILL.
const DefaultGracePeriod = 2 * time.Second

// Command configures a subprocess to execute.
type Command struct {
	// Tool names the program in errors and logs (e.g. "tesseract").
	// Defaults to Binary.
	Tool string
	// Binary is the executable path or name (resolved via PATH).
	Binary string
	// Args are the command-line arguments, passed without a shell.
	Args []string
	// Dir is the working directory. If empty, uses the current directory.
	Dir string
	// Env is additional environment variables (key=value). Merged with os.Environ.
	Env []string
	// Stdin provides input to the process. May be nil.
	Stdin io.Reader
	// Timeout bounds the run. Zero means only the caller's context applies.
	Timeout time.Duration
	// GracePeriod is how long to wait after SIGTERM before SIGKILL.
	// Defaults to DefaultGracePeriod if zero.
	GracePeriod time.Duration
}

// ToolName returns Tool, falling back to Binary.
func (c Command) ToolName() string {
	if c.Tool != "" {
		return c.Tool
	}
	return c.Binary
}
