// Package trace records what a lowering run is doing.
//
// Events come in four scopes. A command span wraps one CLI invocation, a
// stage span wraps decode, lower or write, a file span wraps one input and a
// decl span wraps one top-level declaration. Point events at decl scope carry
// a debug dump of every fragment the lowering engine could not translate.
//
//	cxxpy lower --trace=- --trace-level=debug tree.json
//
// Tracers:
//
//   - Nop drops everything and costs nothing
//   - StreamTracer writes each event as it happens
//   - RingTracer keeps the most recent events for a crash dump
//   - MultiTracer fans out to several tracers
//
// The tracer travels in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "file", trace.CurrentSpan(ctx).SpanID)
//	defer span.End("")
package trace
