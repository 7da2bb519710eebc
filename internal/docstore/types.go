package docstore

// DocumentRef identifies a transcript document stored in Drive.
type DocumentRef struct {
	// ID is the Drive file id of the Google Doc
	ID string

	// Name is the document title
	Name string

	// URL is the docs.google.com link recorded in the tracking sheet
	URL string

	// Analyzed reports whether the analysis marker has been set on the
	// document. The marker survives across runs so analyzed transcripts are
	// never reprocessed.
	Analyzed bool
}
