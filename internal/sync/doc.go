// Package sync implements the reconciliation pipeline: one sequential pass
// that fetches recent Fireflies transcripts, materializes a Google Doc per
// transcript (deduplicated by the transcript id tag), upserts the tracking
// spreadsheet, runs Gemini analysis over unanalyzed documents, and batch
// writes the extracted metrics into the master spreadsheet.
//
// The pipeline consumes the service adapters through narrow interfaces
// declared in this package, so the whole run is testable over in-memory
// fakes. Execution is single-threaded; a killed run leaves the tracking
// sheet consistent but partial, and the next run resumes because candidate
// selection is idempotent over the analysis markers.
package sync
