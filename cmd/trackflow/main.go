// Package main provides the entry point for the trackflow CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "trackflow",
	Short: "Job-pipeline state tracker",
	Long:  "Trackflow keeps a user's job pipeline (tracked jobs, tailored resumes, contacts, outreach drafts) consistent across a local cache and a remote store, and scores job batches against a skill profile.",
}

var (
	flagConfigPath  string
	flagUserID      string
	flagDatabaseURL string
	flagCachePath   string
	flagSettleMS    int
	flagVerbose     bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	rootCmd.PersistentFlags().StringVarP(&flagUserID, "user", "u", "", "User UUID owning the track-flow namespace (or TRACKFLOW_USER_ID env var)")
	rootCmd.PersistentFlags().StringVar(&flagDatabaseURL, "database-url", "", "PostgreSQL URL for the remote tier (or DATABASE_URL env var)")
	rootCmd.PersistentFlags().StringVar(&flagCachePath, "cache", "", "SQLite file for the local cache (empty selects in-memory)")
	rootCmd.PersistentFlags().IntVar(&flagSettleMS, "settle-ms", 0, "Debounce settle window in milliseconds (default 600)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
