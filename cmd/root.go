package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the transcriptsync application
var rootCmd = &cobra.Command{
	Use:   "transcriptsync",
	Short: "Reconciles Fireflies meeting transcripts into Google Docs and Sheets",
	Long: `transcriptsync pulls meeting transcripts from the Fireflies API, stores each
one as a Google Doc in a fixed Drive folder, records the transcript-to-document
mapping in a tracking spreadsheet, and runs Gemini analysis over transcripts
that have not been analyzed yet, writing the extracted metrics into the master
spreadsheet.

One invocation performs one full reconciliation pass. The run is idempotent:
documents are deduplicated by a transcript-id tag and analyzed documents are
marked so later runs skip them.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "transcriptsync version %s\n" .Version}}`)

	// If no subcommand is provided, run the sync command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "sync")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
