// Package logging assembles the structured slog loggers shared by the CLI and
// the refresh pipeline.
//
// It owns the console and JSON handlers, centralizes level and output plumbing,
// and defines the standardized field keys (component, batch_id, source,
// list_url) so every part of the system tags log lines the same way. A no-op
// logger is provided for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// records with the same shape and routing as the rest of the system.
package logging
