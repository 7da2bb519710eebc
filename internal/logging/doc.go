// Package logging provides structured logging utilities for transcriptsync.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package.
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "fireflies.fetch")
//	logger.Info("fetched page", logging.Status(logging.StatusSuccess))
//
// Attribute constructors keep key names consistent across packages:
//
//	logger.Warn("skipping transcript",
//	    logging.TranscriptID(id),
//	    logging.Err(err))
package logging
