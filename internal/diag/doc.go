// Package diag defines the diagnostic model shared by sniffs, the runner, the
// fix engine and the report formatters.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – the sniff-local machine code ("legacyClassname"); Qualified joins
//     it with the sniff name the way PHP_CodeSniffer reports it.
//   - Message – human oriented text with its %s parameters already applied.
//   - Data – the raw parameters, kept for machine consumers.
//   - Primary – the source.Pos (file + token index) the finding points at.
//   - Notes – optional secondary positions.
//   - Fixes – optional Fix records; a diagnostic is fixable iff it has one.
//
// # Fix suggestions
//
// A Fix is a list of TokenEdit values: replace the content of one token with
// NewText, optionally guarded by OldText. Producers that would otherwise need
// to remember state between detection and fixing attach a FixThunk instead:
// the thunk captures the values it needs, so several pending fixes from the
// same sniff never share mutable state. MaterializeFixes expands thunks
// deterministically.
//
// # Emitting diagnostics
//
// Producers talk to a Reporter. BagReporter collects into a Bag (bounded,
// sortable, deduplicable); DedupReporter filters repeated findings before
// forwarding. ReportBuilder offers the chained form
// ReportWarning(...).WithData(...).Emit().
//
// Package diag does no formatting and no IO. Rendering lives in
// internal/diagfmt, application of fixes in internal/fix.
package diag
