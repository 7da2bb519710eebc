package fireflies

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/brandvmeet/transcriptsync/internal/config"
	"github.com/brandvmeet/transcriptsync/internal/logging"
)

// ErrUnavailable indicates a transport or auth failure talking to Fireflies.
// The run should abort rather than retry.
var ErrUnavailable = errors.New("fireflies unavailable")

// ErrRateLimited indicates the API returned HTTP 429.
var ErrRateLimited = errors.New("fireflies rate limited")

// transcriptsQuery pages through transcripts ordered by recency descending.
const transcriptsQuery = `query Transcripts($limit: Int, $skip: Int) {
  transcripts(limit: $limit, skip: $skip) {
    id
    calendar_id
    transcript_url
    title
    sentences {
      index
      speaker_name
      speaker_id
      text
      raw_text
      start_time
      end_time
    }
  }
}`

// Client talks to the Fireflies GraphQL API.
type Client struct {
	endpoint   string
	apiKey     string
	pageSize   int
	fetchCap   int
	sleepEvery int
	sleepFor   time.Duration
	httpClient *http.Client
	logger     *slog.Logger

	// sleep is swapped out in tests
	sleep func(time.Duration)
}

// NewClient builds a client from configuration. A nil logger falls back to
// the process default.
func NewClient(cfg config.FirefliesConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		pageSize:   cfg.PageSize,
		fetchCap:   cfg.FetchCap,
		sleepEvery: cfg.SleepEvery,
		sleepFor:   cfg.SleepInterval(),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logging.WithService(logger, "fireflies"),
		sleep:      time.Sleep,
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlResponse struct {
	Data struct {
		Transcripts []Transcript `json:"transcripts"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// FetchBatch returns up to limit transcripts starting at the given offset,
// ordered by recency descending.
func (c *Client) FetchBatch(ctx context.Context, limit, skip int) ([]Transcript, error) {
	body, err := json.Marshal(graphqlRequest{
		Query:     transcriptsQuery,
		Variables: map[string]any{"limit": limit, "skip": skip},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal transcripts query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: skip=%d", ErrRateLimited, skip)
	case resp.StatusCode >= http.StatusBadRequest:
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: %s: %s", ErrUnavailable, resp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode transcripts response: %w", err)
	}
	if len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("%w: graphql error: %s", ErrUnavailable, parsed.Errors[0].Message)
	}

	return parsed.Data.Transcripts, nil
}

// FetchAll pages through transcripts until an empty or short page is returned
// or the configured cap is exceeded. A courtesy sleep is taken after every
// sleepEvery fetched records to respect the API's rate limits; this is the
// only pause in the run, there is no reactive backoff.
func (c *Client) FetchAll(ctx context.Context) ([]Transcript, error) {
	var all []Transcript
	skip := 0
	sinceSleep := 0

	for {
		batch, err := c.FetchBatch(ctx, c.pageSize, skip)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}

		all = append(all, batch...)
		sinceSleep += len(batch)
		c.logger.Debug("fetched page", slog.Int("skip", skip), slog.Int("total", len(all)))

		if len(batch) < c.pageSize {
			break
		}
		if len(all) > c.fetchCap {
			break
		}

		skip += c.pageSize

		if c.sleepEvery > 0 && sinceSleep >= c.sleepEvery {
			c.logger.Debug("courtesy sleep", slog.Duration("for", c.sleepFor))
			c.sleep(c.sleepFor)
			sinceSleep = 0
		}
	}

	c.logger.Info("fetch complete", slog.Int("transcripts", len(all)))
	return all, nil
}
