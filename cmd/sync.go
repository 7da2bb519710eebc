package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/brandvmeet/transcriptsync/internal/config"
	"github.com/brandvmeet/transcriptsync/internal/docstore"
	"github.com/brandvmeet/transcriptsync/internal/fireflies"
	"github.com/brandvmeet/transcriptsync/internal/gemini"
	"github.com/brandvmeet/transcriptsync/internal/google"
	"github.com/brandvmeet/transcriptsync/internal/instrumentation"
	"github.com/brandvmeet/transcriptsync/internal/logging"
	"github.com/brandvmeet/transcriptsync/internal/sheets"
	syncpipe "github.com/brandvmeet/transcriptsync/internal/sync"
)

func newSyncCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one reconciliation pass over Fireflies transcripts",
		Long: `Fetch recent transcripts from Fireflies, create a Google Doc for each
transcript that does not have one yet, update the tracking spreadsheet, run
Gemini analysis over unanalyzed transcripts, and write the extracted metrics
into the master spreadsheet.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			logger := logging.NewLogger(cfg.Log.Level)
			slog.SetDefault(logger)

			ctx := context.Background()

			provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
				Enabled:        cfg.Metrics.Enabled,
				ServiceName:    "transcriptsync",
				ServiceVersion: version,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize instrumentation: %w", err)
			}
			defer func() {
				if err := provider.Shutdown(ctx); err != nil {
					logger.Warn("failed to flush metrics", logging.Err(err))
				}
			}()

			httpClient, err := google.GetHTTPClient(ctx, cfg.Google.OAuth())
			if err != nil {
				fmt.Fprintln(os.Stderr, "No valid Google OAuth token found. Run 'transcriptsync auth' first.")
				return err
			}

			store, err := docstore.NewClient(ctx, httpClient, docstore.Config{
				TranscriptFolderID: cfg.Google.TranscriptFolderID,
				BriefFolderID:      cfg.Google.BriefFolderID,
			})
			if err != nil {
				return fmt.Errorf("failed to create document store client: %w", err)
			}

			sheetsClient, err := sheets.NewClient(ctx, httpClient)
			if err != nil {
				return fmt.Errorf("failed to create sheets client: %w", err)
			}

			pipeline := syncpipe.NewPipeline(syncpipe.Deps{
				Source:    fireflies.NewClient(cfg.Fireflies, logger),
				Store:     store,
				Sheets:    sheetsClient,
				Inference: gemini.NewClient(cfg.Gemini),
				Logger:    logger,
				Metrics:   provider.Metrics(),
			}, cfg.Run)

			report, err := pipeline.Run(ctx)
			if err != nil {
				return fmt.Errorf("reconciliation run failed: %w", err)
			}

			logger.Info("run complete",
				slog.Int("transcripts_fetched", report.TranscriptsFetched),
				slog.Int("documents_created", report.DocumentsCreated),
				slog.Int("rows_appended", report.RowsAppended),
				slog.Int("rows_updated", report.RowsUpdated),
				slog.Int("analyses_completed", report.AnalysesCompleted),
				slog.Int("analyses_skipped", report.AnalysesSkipped))
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to an env file to load before reading the environment (default: ./.env if present)")
	return cmd
}
