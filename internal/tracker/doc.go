// Package tracker models the transcript tracking table.
//
// The table is the system of record for which transcripts have been seen and
// which document each one maps to. It lives in a spreadsheet; this package
// holds the pure bookkeeping: cell parsing and serialization, the
// duration-based meeting-status heuristic, and the upsert set computed during
// a run (appended rows vs targeted row updates).
package tracker
