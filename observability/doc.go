// Package observability exposes tracing helpers over the global
// OpenTelemetry provider. ssot never installs an exporter itself: a host
// application that configures an SDK tracer provider sees the spans emitted
// while configuration sources are loaded and merged; otherwise every call is
// a no-op.
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanConfigLoad)
//	defer span.End()
package observability
