package provider

import "context"

// Provider is a named backend for one capability.
type Provider interface {
	// Name returns the backend name, e.g. "tesseract" or "espeak".
	Name() string
	// IsAvailable reports whether the backend can serve calls right now. For
	// tool-backed providers this means the binary can be found.
	IsAvailable(ctx context.Context) bool
}

// Factory builds a backend. Backends take their typed config from the
// closure, so a factory has no arguments.
type Factory[T Provider] func() (T, error)
