// Package logging builds the slog loggers used across scribe.
//
// The console handler favours a compact human-readable line per event;
// the json handler emits standard slog JSON for machine consumption.
// Loggers write to stderr so transcript output on stdout stays clean.
package logging
