package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/brandvmeet/transcriptsync/internal/google"
)

// Config holds every setting the application needs. It is constructed once at
// process start and passed to the adapters; nothing reads the environment
// after Load returns.
type Config struct {
	Fireflies FirefliesConfig
	Google    GoogleConfig
	Gemini    GeminiConfig
	Run       RunConfig
	Log       LogConfig
	Metrics   MetricsConfig
}

// FirefliesConfig describes how to reach the Fireflies GraphQL API and how
// aggressively to page through it.
type FirefliesConfig struct {
	APIKey       string `envconfig:"FIREFLIES_API_KEY" required:"true"`
	Endpoint     string `envconfig:"FIREFLIES_ENDPOINT" default:"https://api.fireflies.ai/graphql"`
	PageSize     int    `envconfig:"FIREFLIES_PAGE_SIZE" default:"50"`
	FetchCap     int    `envconfig:"FIREFLIES_FETCH_CAP" default:"200"`
	SleepEvery   int    `envconfig:"FIREFLIES_SLEEP_EVERY" default:"50"`
	SleepSeconds int    `envconfig:"FIREFLIES_SLEEP_SECONDS" default:"50"`
}

// SleepInterval returns the courtesy pause applied after every SleepEvery
// fetched records.
func (c FirefliesConfig) SleepInterval() time.Duration {
	return time.Duration(c.SleepSeconds) * time.Second
}

// GoogleConfig holds the OAuth client credentials and the Drive folder ids
// the document store operates on.
type GoogleConfig struct {
	ClientID           string `envconfig:"GOOGLE_CLIENT_ID" required:"true"`
	ClientSecret       string `envconfig:"GOOGLE_CLIENT_SECRET" required:"true"`
	TranscriptFolderID string `envconfig:"TRANSCRIPT_FOLDER_ID" required:"true"`
	BriefFolderID      string `envconfig:"BRIEF_FOLDER_ID"`
}

// OAuth returns the OAuth client configuration for the google package.
func (c GoogleConfig) OAuth() google.Config {
	return google.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
	}
}

// GeminiConfig describes how to reach the Gemini generateContent API.
type GeminiConfig struct {
	APIKey         string `envconfig:"GEMINI_API_KEY" required:"true"`
	Model          string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	Endpoint       string `envconfig:"GEMINI_ENDPOINT" default:"https://generativelanguage.googleapis.com"`
	TimeoutSeconds int    `envconfig:"GEMINI_TIMEOUT_SECONDS" default:"120"`
}

// RunConfig identifies the spreadsheet destinations and the per-run limits of
// the reconciliation pipeline.
type RunConfig struct {
	TrackingSheetID string `envconfig:"TRACKING_SHEET_ID" required:"true"`
	TrackingTab     string `envconfig:"TRACKING_TAB" default:"Sheet1"`
	MasterSheetID   string `envconfig:"MASTER_SHEET_ID" required:"true"`
	MeetingDataTab  string `envconfig:"MEETING_DATA_TAB" default:"Meeting_data"`
	AuditTab        string `envconfig:"AUDIT_TAB" default:"Audit_and_Training"`
	PromptSheetID   string `envconfig:"PROMPT_SHEET_ID" required:"true"`
	PromptRange     string `envconfig:"PROMPT_RANGE" default:"Prompts!A2:B"`
	PromptName      string `envconfig:"PROMPT_NAME" default:"meeting_analysis"`
	AnalysisLimit   int    `envconfig:"ANALYSIS_LIMIT" default:"300"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// MetricsConfig controls the OpenTelemetry run counters.
type MetricsConfig struct {
	Enabled bool `envconfig:"METRICS_ENABLED" default:"true"`
}

// Load reads an optional env file, then builds the configuration from the
// environment. A missing ./.env is not an error; a missing explicit envFile is.
func Load(envFile string) (Config, error) {
	var cfg Config

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return cfg, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return cfg, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.Fireflies.PageSize <= 0 {
		return fmt.Errorf("FIREFLIES_PAGE_SIZE must be positive, got %d", c.Fireflies.PageSize)
	}
	if c.Fireflies.FetchCap <= 0 {
		return fmt.Errorf("FIREFLIES_FETCH_CAP must be positive, got %d", c.Fireflies.FetchCap)
	}
	if c.Run.AnalysisLimit <= 0 {
		return fmt.Errorf("ANALYSIS_LIMIT must be positive, got %d", c.Run.AnalysisLimit)
	}
	return nil
}
