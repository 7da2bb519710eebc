package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brandvmeet/transcriptsync/internal/config"
	"github.com/brandvmeet/transcriptsync/internal/google"
)

func newAuthCmd() *cobra.Command {
	var authCode string
	var envFile string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to the Google account used for Docs and Sheets",
		Long: `Print the Google OAuth authorization URL, or exchange an authorization
code for tokens and cache them for later runs.

Run without flags to get the authorization URL. Open it in a browser, grant
access, then run again with --code to save the resulting token.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			oauthCfg := cfg.Google.OAuth()

			if authCode == "" {
				if google.HasToken() {
					fmt.Println("A cached Google OAuth token already exists; it will be refreshed automatically.")
					return nil
				}
				fmt.Println("Open the following URL in a browser and authorize access:")
				fmt.Println(google.GetAuthURL(oauthCfg))
				fmt.Println("Then run: transcriptsync auth --code <authorization-code>")
				return nil
			}

			if err := google.SaveToken(context.Background(), oauthCfg, authCode); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}
			fmt.Println("Token saved.")
			return nil
		},
	}

	cmd.Flags().StringVar(&authCode, "code", "", "Authorization code obtained from the OAuth consent flow")
	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to an env file to load before reading the environment")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("transcriptsync version %s\n", version)
		},
	}
}
