package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sublab/subtitle-api/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "subtitle-api",
	Short: "Video subtitle generation API server",
	Long: `Subtitle API - an async video-to-subtitle generation service

The server accepts video uploads or YouTube URLs, extracts the audio
track, runs speech recognition, and produces downloadable SRT subtitle
documents. Clients poll job progress while processing runs in the
background.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd returns the root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

// loadConfig initializes configuration for commands that need it.
func loadConfig() error {
	if err := config.Init(); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
