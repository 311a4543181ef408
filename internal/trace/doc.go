// Package trace records what the stylename driver is doing.
//
// Tracing is enabled from the command line:
//
//	stylename transform --trace=- --trace-level=detail src/
//
// Tracers:
//
//   - Nop: disabled tracing
//   - StreamTracer: writes each event as it happens
//   - RingTracer: keeps the last N events for a dump after a failure
//   - MultiTracer: fans out to several tracers
//
// Levels select scopes. LevelPhase shows the driver and the pipeline stages
// (load, parse, transform, emit), LevelDetail adds one span per file and
// LevelDebug also shows per-node events such as every rewritten attribute
// group.
//
// Tracers travel in context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, "parse", parentID)
//	defer span.End("")
package trace
