// Package diag defines the diagnostic model shared by the parser, the
// styleName rewriter and the driver.
//
// Producers never print. They emit through a Reporter (usually a BagReporter
// per file, optionally wrapped in a DedupReporter) and the CLI renders the
// collected Bag with internal/diagfmt.
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error.
//   - Code – numeric identifier with stable ID() such as STY4001.
//   - Message – short human text.
//   - Primary – the source.Span the finding points at.
//   - Notes and Fixes – optional extra context and data-only suggestions.
//
// Warnings are advisory. Whether they fail a run is decided by the caller
// (Bag.PromoteWarnings / Bag.DropWarnings), never by the producer.
package diag
