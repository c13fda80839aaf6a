// Package config loads, normalizes, and validates imagepuller configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MS_AUTH_TOKEN. The Config type centralizes the Graph connection settings,
// the export defaults merged under command-line overrides, and the logging
// knobs, so the CLI resolves everything in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
