// Package cmd implements the command-line interface for transcriptsync.
//
// This package provides the following commands:
//   - sync: Run one reconciliation pass (Fireflies -> Google Docs -> sheets -> Gemini)
//   - auth: Authorize access to the Google account used for Docs and Sheets
//   - version: Display version information
//
// The sync command is the default command when no subcommand is specified.
package cmd
