// Package provider implements a generic provider framework for swappable
// backends chosen at runtime.
//
// Every babelink capability (screen capture, OCR engine, translator, speech
// synthesizer) has one implementation per platform or backend. A Registry
// holds their factories, and a Manager initializes them and picks one with a
// Selector.
//
// The single interaction pattern is RequestResponse[I, O]: one input, one
// output. Func adapts a plain function and Adapt converts input and output
// types around an existing provider.
//
// Opt-in lifecycle:
//   - Initializable: backends that check their runtime before serving
//   - Closeable: backends that hold resources until shutdown
//
// # Middleware
//
// Middleware[I, O] wraps a RequestResponse provider. Use Chain to compose:
//
//	wrapped := provider.Chain(
//	    provider.WithLogging[In, Out](log),
//	    provider.WithMetrics[In, Out](metrics, "babelink"),
//	    provider.WithTracing[In, Out]("babelink"),
//	    provider.ResilienceMiddleware[In, Out](cfg),
//	)(raw)
//
// # Usage
//
//	mgr := provider.NewManager(provider.NewRegistry[ocr.Engine](), &provider.PrioritySelector[ocr.Engine]{Priority: []string{"tesseract"}})
//	mgr.Register("tesseract", func() (ocr.Engine, error) { return ocr.NewTesseract(exec, cfg), nil })
//	_ = mgr.Initialize(ctx, "tesseract")
//	engine, _ := mgr.Get(ctx)
package provider
