// Package diag defines the diagnostic model shared by every check phase.
//
// Diagnostic is the central record: a Severity, a stable numeric Code, a
// human-oriented Message, the primary source.Span the finding points at, and
// optional Notes adding secondary context. Checks emit through the Reporter
// interface to stay decoupled from storage and rendering; BagReporter
// aggregates into a Bag (sortable, capacity-limited), DedupReporter filters
// repeated findings, NopReporter backs the silent probe mode.
//
// The package performs no formatting or IO. Rendering lives in
// internal/diagfmt; orchestration and bag collection live in internal/driver.
// Keep the data model deterministic so results can be serialised for the
// driver's result cache and for tests.
package diag
