// Package logging assembles the structured slog loggers used across the
// daemon.
//
// It owns the console and JSON handlers, centralizes level plumbing, and
// exposes attribute helpers so components emit log lines with the same shape.
// The package also provides a no-op logger for tests and wiring code that
// cannot fail.
package logging
