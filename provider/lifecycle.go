package provider

import "context"

// Initializable is implemented by backends that must check their runtime
// before serving, such as the in-process OCR engine loading libtesseract.
// Manager.Initialize calls Init.
type Initializable interface {
	Init(ctx context.Context) error
}

// Closeable is implemented by backends that hold resources, such as pooled
// HTTP connections. The commands component closes them on shutdown.
type Closeable interface {
	Close(ctx context.Context) error
}
