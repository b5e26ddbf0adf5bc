// Package observability wires OpenTelemetry tracing and metrics into babelink.
//
// Export is opt-in. Setup installs OTLP/HTTP providers only when
// Config.Enabled is set; otherwise spans and instruments go to the global
// no-op providers.
//
//	shutdown, err := observability.Setup(ctx, cfg.Observability, "babelink", version.Version)
//	defer shutdown(ctx)
//
//	metrics, _ := observability.NewDefaultMetrics("babelink")
//	ctx, inv := observability.StartInvocation(ctx, "babelink", "extract_text", requestID, metrics)
//	defer func() { inv.End(ctx, err) }()
package observability
