// Package tasks implements the search and detail workflows shared by the CLI, TUI and HTTP server.
//
// # Core Operations
//
//  1. [Session.Run] : one user-initiated search
//     - Validates the query; an empty query never reaches the network
//     - Disables input controls, searches once, re-enables controls on every exit path
//     - Maps the outcome to a single active [Status] and hands results to the [Renderer]
//     - Drops completions of superseded runs using a monotonic sequence number
//
//  2. [DetailToggle] : per-card expand/collapse state machine
//     - Fetches details on the first expand only; successes are cached, failures are not
//
//  3. [BulkAdd] : look up many movies by id and add them to the watchlist
//     - Lookups run on a bounded worker pool, additions happen in input order
//
//  4. [ExportWatchlist] : write the watchlist as CSV, Markdown, text or JSON
//
// # Progress Reporting
//
// Long-running operations send [ProgressUpdate] values on an optional channel.
// Sends never block; updates are dropped when the receiver is not ready.
//
// # Preferences
//
// [LoadTheme] and [SaveTheme] persist the light/dark preference through [models.Storage].
package tasks
