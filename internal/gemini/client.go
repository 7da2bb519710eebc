package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"text/template"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/brandvmeet/transcriptsync/internal/config"
)

// ErrUnavailable indicates a transport or auth failure talking to the Gemini
// API. The caller aborts remaining analysis for the run.
var ErrUnavailable = errors.New("gemini unavailable")

// ErrRateLimited indicates the API returned HTTP 429.
var ErrRateLimited = errors.New("gemini rate limited")

// SchemaError reports a model response that could not be parsed into the
// AnalysisResult schema. The caller logs and skips the transcript; the
// document stays unmarked so a future run with a corrected template retries.
type SchemaError struct {
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("analysis response rejected: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("analysis response rejected: %s", e.Reason)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// Client calls the Gemini generateContent API and parses the response into a
// validated AnalysisResult.
type Client struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
	validate   *validator.Validate
}

// NewClient builds a client from configuration.
func NewClient(cfg config.GeminiConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		validate:   validator.New(),
	}
}

// Request/response bodies, minimal fields only.
type gmPart struct {
	Text string `json:"text"`
}

type gmContent struct {
	Role  string   `json:"role,omitempty"`
	Parts []gmPart `json:"parts"`
}

type gmGenerationConfig struct {
	ResponseMIMEType string `json:"response_mime_type,omitempty"`
}

type gmRequest struct {
	Contents         []gmContent         `json:"contents"`
	GenerationConfig *gmGenerationConfig `json:"generationConfig,omitempty"`
}

type gmResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Analyze renders the prompt template with the transcript and brief text,
// calls the model, and parses the JSON response against the AnalysisResult
// schema.
func (c *Client) Analyze(ctx context.Context, promptTemplate, transcriptText, briefText string) (*AnalysisResult, error) {
	prompt, err := renderPrompt(promptTemplate, transcriptText, briefText)
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	body, err := json.Marshal(gmRequest{
		Contents: []gmContent{
			{Role: "user", Parts: []gmPart{{Text: prompt}}},
		},
		GenerationConfig: &gmGenerationConfig{
			ResponseMIMEType: "application/json",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.endpoint, url.PathEscape(c.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode >= http.StatusBadRequest:
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: %s: %s", ErrUnavailable, resp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed gmResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response envelope: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, &SchemaError{Reason: "response contains no candidates"}
	}

	var text strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}

	return c.parseResult(text.String())
}

// parseResult decodes the model's JSON output into a validated AnalysisResult.
func (c *Client) parseResult(raw string) (*AnalysisResult, error) {
	raw = extractJSON(raw)

	var result AnalysisResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, &SchemaError{Reason: "invalid JSON", Err: err}
	}

	if err := c.validate.Struct(&result); err != nil {
		return nil, &SchemaError{Reason: "missing or invalid fields", Err: err}
	}

	return &result, nil
}

// renderPrompt executes the sheet-supplied template with the two text inputs.
func renderPrompt(promptTemplate, transcriptText, briefText string) (string, error) {
	tmpl, err := template.New("prompt").Parse(promptTemplate)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var out bytes.Buffer
	err = tmpl.Execute(&out, struct {
		Transcript string
		Brief      string
	}{
		Transcript: transcriptText,
		Brief:      briefText,
	})
	if err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return out.String(), nil
}

// extractJSON unwraps markdown code fences the model sometimes emits around
// its JSON output and trims to the outermost object.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
