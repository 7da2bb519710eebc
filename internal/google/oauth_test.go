package google

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetAuthURL(t *testing.T) {
	url := GetAuthURL(Config{ClientID: "id", ClientSecret: "secret"})
	if !strings.Contains(url, "client_id=id") {
		t.Errorf("auth URL missing client id: %s", url)
	}
	for _, scope := range []string{"drive", "documents", "spreadsheets"} {
		if !strings.Contains(url, scope) {
			t.Errorf("auth URL missing %s scope: %s", scope, url)
		}
	}
}

func TestHasTokenMissing(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	if HasToken() {
		t.Error("HasToken() = true with empty cache dir")
	}
}

func TestGetTokenSourceInvalidFormat(t *testing.T) {
	cache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cache)

	dir := filepath.Join(cache, "transcriptsync")
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "google.token"), []byte("only-one-field"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := GetTokenSource(context.Background(), Config{ClientID: "id", ClientSecret: "secret"})
	if err == nil {
		t.Error("expected error for malformed token file")
	}
}
