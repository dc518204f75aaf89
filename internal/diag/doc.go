// Package diag defines the diagnostic model shared by lexers, parsers and
// the driver.
//
// # Data model
//
// Diagnostic is an interface: each producer declares its own record type
// (a mismatched token, an unmatched parenthesis, a file that failed to load)
// and exposes only what every consumer needs:
//
//   - Level – tri-level enum (Note, Warning, Error), totally ordered.
//   - PrimarySpan – the source.Span the finding points at, if any.
//   - String – the human-readable message; keep it short and actionable.
//
// Extra capabilities are optional interfaces: WithSecondary adds related
// spans, Coded adds a stable Code (LEX1001, SYN2001, ...). Consumers that
// know a concrete type recover it with As / Find.
//
// Generic is a ready-made record for producers that do not need a type of
// their own.
//
// # Collecting
//
// Bag accumulates diagnostics in insertion order and tracks the highest
// level seen so far, so IsOK / IsErr are O(1). Once a Bag holds an error it
// never reports IsOK again. A Bag is single-owner: concurrent producers use
// one Bag each and Merge them afterwards.
//
// # Scope
//
// Package diag does not render anything besides the one-line form used by
// golden tests and `--format short`; pretty and JSON output live in
// internal/diagfmt.
package diag
