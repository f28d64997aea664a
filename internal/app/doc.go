// Package app is the composition root for the Rezdesk application.
//
// Run wires together configuration, logging, the backend client, the fetch
// and poll machinery, the edit buffer, and the UI, then blocks until the
// user quits or the context is cancelled.
//
// # Startup sequence
//
//  1. Load configuration (TOML file plus environment overrides)
//  2. Open the JSON log file; the TUI owns the terminal, so nothing is
//     written to stdout or stderr while it runs
//  3. If credentials are missing, start the UI in a degraded mode that
//     explains how to configure the backend
//  4. Otherwise build the backend client, run one synchronous fetch to
//     populate the store, start the poll scheduler, and hand over to the UI
//
// # Data flow
//
//	poll.Scheduler ──> fetch.Fetcher ──> state.Store ──> ui snapshots
//	ui edits ──> editbuf.Buffer ──> backend.Service (batch save)
//
// The scheduler and the UI never share mutable state directly; everything
// crosses through the store's atomic snapshots or the edit buffer.
//
// # Error handling
//
// Fatal errors (returned from Run): unreadable config file, malformed
// backend URL, a scheduler double start. Recoverable errors (logged, shown
// in the UI as a degraded connection): every fetch or save failure after
// startup.
package app
