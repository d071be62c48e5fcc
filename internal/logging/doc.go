// Package logging assembles the structured slog loggers used across snapsort.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so pipeline code can automatically tag
// log lines with run session IDs and phase names. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
package logging
