package main

import (
	"context"
	"os"

	"github.com/jonathan/trackflow/internal/observability"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the user's current track-flow state",
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	sess, teardown, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer teardown()

	observability.NewPrinter(os.Stdout).PrintState(sess.Flow().State())
	return nil
}
