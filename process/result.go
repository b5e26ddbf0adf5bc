package process

import (
	"strings"
	"time"
)

// Result holds the output and status of a completed subprocess.
type Result struct {
	// Stdout is the captured standard output.
	Stdout []byte
	// Stderr is the captured standard error.
	Stderr []byte
	// ExitCode is the process exit code. -1 if the process was killed or never started.
	ExitCode int
	// Duration is how long the process ran.
	Duration time.Duration
}

// Output returns stdout with surrounding whitespace removed.
func (r *Result) Output() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(string(r.Stdout))
}
