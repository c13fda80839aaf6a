// Package services defines shared utilities consumed by the export pipeline
// and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp person identifiers, pipeline steps, and
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper that let callers decide
//     whether a failure means "skip this person" or "something broke".
//
// Use these helpers when wiring new lookup or write steps so operational
// behaviour stays uniform across every identifier in a batch.
package services
