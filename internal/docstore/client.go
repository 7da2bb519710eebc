package docstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	docs "google.golang.org/api/docs/v1"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// ErrUnavailable indicates a transport or auth failure talking to Drive or
// Docs. The run should abort rather than retry.
var ErrUnavailable = errors.New("document store unavailable")

// ErrRateLimited indicates the API returned HTTP 429.
var ErrRateLimited = errors.New("document store rate limited")

const (
	docMimeType = "application/vnd.google-apps.document"

	// transcriptIDProperty is the appProperties key carrying the owning
	// transcript id. It is the sole deduplication key: at most one document
	// in the folder carries a given transcript id.
	transcriptIDProperty = "transcript_id"

	// analyzedProperty marks a document whose analysis results have been
	// staged for the master sheet.
	analyzedProperty = "analyzed"

	// calendarIDProperty tags pre-meeting brief documents with the calendar
	// event they belong to.
	calendarIDProperty = "calendar_id"
)

// Config holds the Drive folder ids the client operates on.
type Config struct {
	// TranscriptFolderID is the fixed parent folder for transcript documents.
	TranscriptFolderID string

	// BriefFolderID is the folder holding pre-meeting briefs; empty disables
	// brief lookup.
	BriefFolderID string
}

// Client wraps the Google Drive and Docs API services for transcript
// document management. It maintains an in-memory index of transcript id to
// document, built from one paged listing of the transcript folder, so
// deduplication lookups do not issue one Drive query per transcript.
type Client struct {
	driveService *drive.Service
	docsService  *docs.Service
	cfg          Config
	index        map[string]*DocumentRef
}

// NewClient creates a document store client over an authenticated HTTP client.
func NewClient(ctx context.Context, httpClient *http.Client, cfg Config) (*Client, error) {
	if cfg.TranscriptFolderID == "" {
		return nil, fmt.Errorf("transcript folder id is required")
	}

	driveService, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	docsService, err := docs.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Docs service: %w", err)
	}

	return &Client{
		driveService: driveService,
		docsService:  docsService,
		cfg:          cfg,
		index:        make(map[string]*DocumentRef),
	}, nil
}

// RefreshIndex rebuilds the transcript id index from the folder contents.
// Must be called once per run before FindByTranscriptID.
func (c *Client) RefreshIndex(ctx context.Context) error {
	index := make(map[string]*DocumentRef)

	pageToken := ""
	for {
		call := c.driveService.Files.List().
			Context(ctx).
			Q(folderQuery(c.cfg.TranscriptFolderID)).
			PageSize(1000).
			Fields("nextPageToken, files(id, name, webViewLink, appProperties)")
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		fileList, err := call.Do()
		if err != nil {
			return wrapErr("list transcript folder", err)
		}

		for _, f := range fileList.Files {
			transcriptID := f.AppProperties[transcriptIDProperty]
			if transcriptID == "" {
				continue
			}
			index[transcriptID] = convertRef(f)
		}

		pageToken = fileList.NextPageToken
		if pageToken == "" {
			break
		}
	}

	c.index = index
	return nil
}

// FindByTranscriptID looks up the document tagged with the given transcript id.
func (c *Client) FindByTranscriptID(transcriptID string) (*DocumentRef, bool) {
	ref, ok := c.index[transcriptID]
	return ref, ok
}

// CreateTranscriptDoc creates a Google Doc in the transcript folder, writes
// the body text, and tags it with the transcript id. The caller is expected
// to have checked FindByTranscriptID first; the adapter does not guard
// against duplicate creation itself.
func (c *Client) CreateTranscriptDoc(ctx context.Context, name, body, transcriptID string) (*DocumentRef, error) {
	if transcriptID == "" {
		return nil, fmt.Errorf("transcriptID is required")
	}

	file := &drive.File{
		Name:     name,
		MimeType: docMimeType,
		Parents:  []string{c.cfg.TranscriptFolderID},
		AppProperties: map[string]string{
			transcriptIDProperty: transcriptID,
		},
	}

	created, err := c.driveService.Files.Create(file).
		Context(ctx).
		Fields("id, name, webViewLink, appProperties").
		Do()
	if err != nil {
		return nil, wrapErr("create document", err)
	}

	_, err = c.docsService.Documents.BatchUpdate(created.Id, &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{
			{
				InsertText: &docs.InsertTextRequest{
					Location: &docs.Location{Index: 1},
					Text:     body,
				},
			},
		},
	}).Context(ctx).Do()
	if err != nil {
		return nil, wrapErr(fmt.Sprintf("write document %s", created.Id), err)
	}

	ref := convertRef(created)
	c.index[transcriptID] = ref
	return ref, nil
}

// PlainText returns the full text content of a document.
func (c *Client) PlainText(ctx context.Context, documentID string) (string, error) {
	if documentID == "" {
		return "", fmt.Errorf("documentID is required")
	}

	doc, err := c.docsService.Documents.Get(documentID).Context(ctx).Do()
	if err != nil {
		return "", wrapErr(fmt.Sprintf("get document %s", documentID), err)
	}

	return documentToPlainText(doc), nil
}

// MarkAnalyzed sets the analysis marker on a document so later runs skip it.
func (c *Client) MarkAnalyzed(ctx context.Context, documentID string) error {
	if documentID == "" {
		return fmt.Errorf("documentID is required")
	}

	_, err := c.driveService.Files.Update(documentID, &drive.File{
		AppProperties: map[string]string{
			analyzedProperty: "true",
		},
	}).Context(ctx).Do()
	if err != nil {
		return wrapErr(fmt.Sprintf("mark document %s analyzed", documentID), err)
	}

	for _, ref := range c.index {
		if ref.ID == documentID {
			ref.Analyzed = true
		}
	}
	return nil
}

// FindBrief returns the text of the pre-meeting brief for a calendar event,
// or an empty string when no brief folder is configured or no brief exists.
func (c *Client) FindBrief(ctx context.Context, calendarID string) (string, error) {
	if c.cfg.BriefFolderID == "" || calendarID == "" {
		return "", nil
	}

	fileList, err := c.driveService.Files.List().
		Context(ctx).
		Q(briefQuery(c.cfg.BriefFolderID, calendarID)).
		PageSize(1).
		Fields("files(id, name)").
		Do()
	if err != nil {
		return "", wrapErr("list briefs", err)
	}
	if len(fileList.Files) == 0 {
		return "", nil
	}

	return c.PlainText(ctx, fileList.Files[0].Id)
}

// folderQuery selects the transcript documents in the parent folder.
func folderQuery(folderID string) string {
	return fmt.Sprintf("'%s' in parents and mimeType='%s' and trashed=false", folderID, docMimeType)
}

// briefQuery selects the brief document tagged with a calendar event id.
func briefQuery(folderID, calendarID string) string {
	return fmt.Sprintf(
		"'%s' in parents and appProperties has { key='%s' and value='%s' } and mimeType='%s' and trashed=false",
		folderID, calendarIDProperty, calendarID, docMimeType)
}

// convertRef converts a Drive API File to a DocumentRef
func convertRef(f *drive.File) *DocumentRef {
	url := f.WebViewLink
	if url == "" {
		url = "https://docs.google.com/document/d/" + f.Id
	}
	return &DocumentRef{
		ID:       f.Id,
		Name:     f.Name,
		URL:      url,
		Analyzed: f.AppProperties[analyzedProperty] == "true",
	}
}

func wrapErr(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %s", ErrRateLimited, op)
	}
	return fmt.Errorf("%w: failed to %s: %v", ErrUnavailable, op, err)
}
