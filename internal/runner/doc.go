// Package runner drives registered sniffs over token files: one pass per file,
// every token dispatched to the sniffs registered for its kind, diagnostics
// collected into a bounded bag. Directories are processed in parallel with a
// fresh set of sniff instances per file.
package runner
