// Package config loads, normalizes, and validates scribe configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// ASSEMBLYAI_API_KEY. The Config type centralizes every knob the CLI needs,
// allowing transcription defaults and service credentials to be discovered
// in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized values, canonical option strings, and clear validation errors.
package config
