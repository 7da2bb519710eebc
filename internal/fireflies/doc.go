// Package fireflies provides a client for the Fireflies transcription API.
//
// Fireflies exposes a GraphQL endpoint; the client pages through the
// transcripts query with limit/skip variables, authenticated by a bearer API
// key. Transcripts are returned most recent first.
//
// The client also owns the canonical rendering of a transcript into document
// text (FormattedText) and the duration heuristic used for meeting status
// (DurationSeconds): both derive from the utterance timestamps, not from any
// service-reported field.
package fireflies
