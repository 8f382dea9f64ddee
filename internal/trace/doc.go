// Package trace is the levelled event log of typo3update.
//
// Commands, per-file processing, sniff runs and fix application open spans;
// point events carry one-off log lines. Events go to a stream (stderr or a
// file, text or NDJSON), to an in-memory ring kept for crash dumps, or both.
//
// # Usage
//
//	typo3update check --trace=- --trace-level=detail ./dumps
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: only crash dumps from the ring
//   - LevelPhase: commands and files
//   - LevelDetail: plus sniffs and fixes
//   - LevelDebug: everything, including single tokens
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.StartSpan(ctx, trace.ScopeFile, "file:Foo.tokens.json")
//	defer span.End("")
//
// Spans opened from ctx become children of the active one.
package trace
