package docstore

import (
	"errors"
	"net/http"
	"testing"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

func TestFolderQuery(t *testing.T) {
	q := folderQuery("folder-1")
	want := "'folder-1' in parents and mimeType='application/vnd.google-apps.document' and trashed=false"
	if q != want {
		t.Errorf("folderQuery = %q, want %q", q, want)
	}
}

func TestBriefQuery(t *testing.T) {
	q := briefQuery("folder-2", "cal-9")
	want := "'folder-2' in parents and appProperties has { key='calendar_id' and value='cal-9' } and mimeType='application/vnd.google-apps.document' and trashed=false"
	if q != want {
		t.Errorf("briefQuery = %q, want %q", q, want)
	}
}

func TestConvertRef(t *testing.T) {
	f := &drive.File{
		Id:          "doc-1",
		Name:        "Weekly Sync",
		WebViewLink: "https://docs.google.com/document/d/doc-1/edit",
		AppProperties: map[string]string{
			"transcript_id": "tr-1",
			"analyzed":      "true",
		},
	}

	ref := convertRef(f)
	if ref.ID != "doc-1" {
		t.Errorf("ID = %q, want doc-1", ref.ID)
	}
	if ref.URL != "https://docs.google.com/document/d/doc-1/edit" {
		t.Errorf("URL = %q", ref.URL)
	}
	if !ref.Analyzed {
		t.Error("Analyzed = false, want true")
	}
}

func TestConvertRefDefaultURL(t *testing.T) {
	ref := convertRef(&drive.File{Id: "doc-2", Name: "No Link"})
	if ref.URL != "https://docs.google.com/document/d/doc-2" {
		t.Errorf("URL = %q", ref.URL)
	}
	if ref.Analyzed {
		t.Error("Analyzed = true, want false")
	}
}

func TestFindByTranscriptID(t *testing.T) {
	c := &Client{index: map[string]*DocumentRef{
		"tr-1": {ID: "doc-1"},
	}}

	if ref, ok := c.FindByTranscriptID("tr-1"); !ok || ref.ID != "doc-1" {
		t.Errorf("FindByTranscriptID(tr-1) = %v, %v", ref, ok)
	}
	if _, ok := c.FindByTranscriptID("tr-missing"); ok {
		t.Error("FindByTranscriptID(tr-missing) = true, want false")
	}
}

func TestWrapErrRateLimited(t *testing.T) {
	err := wrapErr("list transcript folder", &googleapi.Error{Code: http.StatusTooManyRequests})
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("wrapErr(429) = %v, want ErrRateLimited", err)
	}
}

func TestWrapErrUnavailable(t *testing.T) {
	err := wrapErr("create document", &googleapi.Error{Code: http.StatusForbidden})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("wrapErr(403) = %v, want ErrUnavailable", err)
	}
}
