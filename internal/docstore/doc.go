// Package docstore stores meeting transcripts as Google Docs in one fixed
// Drive folder.
//
// Every transcript document carries the owning transcript id as a Drive
// appProperties tag; the tag is the sole deduplication key. Instead of issuing
// one property-filter query per transcript, the client lists the folder once
// per run and keeps an in-memory index keyed by transcript id.
//
// A second appProperties tag ("analyzed") marks documents whose Gemini
// analysis has been written out, so reruns never reprocess them.
package docstore
