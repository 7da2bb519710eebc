package fireflies

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandvmeet/transcriptsync/internal/config"
)

func testClient(endpoint string) *Client {
	c := NewClient(config.FirefliesConfig{
		APIKey:       "test-key",
		Endpoint:     endpoint,
		PageSize:     2,
		FetchCap:     10,
		SleepEvery:   4,
		SleepSeconds: 1,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.sleep = func(time.Duration) {}
	return c
}

func transcriptPage(ids ...string) map[string]any {
	ts := make([]map[string]any, len(ids))
	for i, id := range ids {
		ts[i] = map[string]any{
			"id":          id,
			"title":       "Meeting " + id,
			"calendar_id": "cal-" + id,
			"sentences": []map[string]any{
				{"index": 0, "speaker_name": "Alice", "text": "hello", "start_time": 0.0, "end_time": 5.0},
			},
		}
	}
	return map[string]any{"data": map[string]any{"transcripts": ts}}
}

func TestFetchBatchSendsAuthAndVariables(t *testing.T) {
	var gotAuth string
	var gotVars map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var req struct {
			Variables map[string]any `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotVars = req.Variables
		require.NoError(t, json.NewEncoder(w).Encode(transcriptPage("t1")))
	}))
	defer server.Close()

	batch, err := testClient(server.URL).FetchBatch(context.Background(), 25, 50)
	require.NoError(t, err)

	assert.Len(t, batch, 1)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, float64(25), gotVars["limit"])
	assert.Equal(t, float64(50), gotVars["skip"])
}

func TestFetchAllStopsOnShortPage(t *testing.T) {
	pages := [][]string{{"t1", "t2"}, {"t3"}}
	call := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Less(t, call, len(pages))
		require.NoError(t, json.NewEncoder(w).Encode(transcriptPage(pages[call]...)))
		call++
	}))
	defer server.Close()

	all, err := testClient(server.URL).FetchAll(context.Background())
	require.NoError(t, err)

	assert.Len(t, all, 3)
	assert.Equal(t, 2, call)
}

func TestFetchAllStopsOnEmptyPage(t *testing.T) {
	pages := [][]string{{"t1", "t2"}, {}}
	call := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(transcriptPage(pages[call]...)))
		call++
	}))
	defer server.Close()

	all, err := testClient(server.URL).FetchAll(context.Background())
	require.NoError(t, err)

	assert.Len(t, all, 2)
}

func TestFetchAllHonorsCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(transcriptPage("a", "b")))
	}))
	defer server.Close()

	c := testClient(server.URL)
	c.fetchCap = 5

	all, err := c.FetchAll(context.Background())
	require.NoError(t, err)

	// Pages of 2; the loop stops once the total exceeds the cap.
	assert.Equal(t, 6, len(all))
}

func TestFetchAllSleepsBetweenPages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(transcriptPage("a", "b")))
	}))
	defer server.Close()

	c := testClient(server.URL)
	c.fetchCap = 7

	slept := 0
	c.sleep = func(time.Duration) { slept++ }

	_, err := c.FetchAll(context.Background())
	require.NoError(t, err)

	// 8 records fetched with sleepEvery=4: one sleep after the 4th record.
	assert.GreaterOrEqual(t, slept, 1)
}

func TestFetchAllLogsThroughInjectedLogger(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(transcriptPage("t1")))
	}))
	defer server.Close()

	var buf bytes.Buffer
	c := NewClient(config.FirefliesConfig{
		APIKey:   "test-key",
		Endpoint: server.URL,
		PageSize: 2,
		FetchCap: 10,
	}, slog.New(slog.NewTextHandler(&buf, nil)))
	c.sleep = func(time.Duration) {}

	_, err := c.FetchAll(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "fetch complete")
	assert.Contains(t, buf.String(), "service=fireflies")
}

func TestFetchBatchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchBatch(context.Background(), 50, 0)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchBatchRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchBatch(context.Background(), 50, 0)
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestFetchBatchGraphQLError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"invalid api key"}]}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchBatch(context.Background(), 50, 0)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorContains(t, err, "invalid api key")
}

func TestFormattedText(t *testing.T) {
	tr := Transcript{
		ID: "t1",
		Sentences: []Sentence{
			{SpeakerName: "Alice", Text: "hello", StartTime: 0, EndTime: 4.5},
			{SpeakerName: "Bob", Text: "hi", StartTime: 4.5, EndTime: 6},
		},
	}

	text := tr.FormattedText()
	assert.Contains(t, text, "Time (in seconds): 0 to 4.5")
	assert.Contains(t, text, "Alice: hello")
	assert.Contains(t, text, "Bob: hi")
}

func TestFormattedTextEmpty(t *testing.T) {
	assert.Equal(t, " ", Transcript{ID: "t1"}.FormattedText())
}

func TestDurationSeconds(t *testing.T) {
	tr := Transcript{
		Sentences: []Sentence{
			{StartTime: 10, EndTime: 20},
			{StartTime: 20, EndTime: 710},
		},
	}
	assert.InDelta(t, 700, tr.DurationSeconds(), 0.001)
	assert.Zero(t, Transcript{}.DurationSeconds())
}

func TestDashboardURL(t *testing.T) {
	assert.Equal(t, "https://app.fireflies.ai/view/t1", Transcript{ID: "t1"}.DashboardURL())
}
