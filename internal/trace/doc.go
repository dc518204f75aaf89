// Package trace records what the pipeline is doing, for diagnosing slow or
// stuck runs.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	tongue parse --trace=- --trace-level=detail main.lc
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Reserved, nothing is emitted
//   - LevelPhase: Driver and pass boundaries
//   - LevelDetail: Per-source events
//   - LevelDebug: Everything including every generated token
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", trace.CurrentSpan(ctx))
//	defer span.End("")
package trace
