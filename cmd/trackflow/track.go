package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/trackflow/internal/session"
	"github.com/jonathan/trackflow/internal/types"
	"github.com/spf13/cobra"
)

var trackCmd = &cobra.Command{
	Use:   "track <jobID>",
	Short: "Pull a job into the pipeline at the Customize stage",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrack,
}

var untrackCmd = &cobra.Command{
	Use:   "untrack <jobID>",
	Short: "Remove a job from the pipeline, keeping its resume, contacts, and drafts",
	Args:  cobra.ExactArgs(1),
	RunE:  runUntrack,
}

var stageCmd = &cobra.Command{
	Use:   "stage <jobID> <customize|connect|apply|done>",
	Short: "Move a tracked job to a stage",
	Args:  cobra.ExactArgs(2),
	RunE:  runStage,
}

var resumeCmd = &cobra.Command{
	Use:   "resume <jobID> <file>",
	Short: "Store the tailored resume text for a job",
	Args:  cobra.ExactArgs(2),
	RunE:  runResume,
}

func init() {
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(untrackCmd)
	rootCmd.AddCommand(stageCmd)
	rootCmd.AddCommand(resumeCmd)
}

// withSession resolves the config, opens a session, runs fn, and tears the
// session down (flushing the pending remote write first).
func withSession(fn func(ctx context.Context, sess *session.Session) error) error {
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
	return fn(ctx, sess)
}

func runTrack(_ *cobra.Command, args []string) error {
	return withSession(func(ctx context.Context, sess *session.Session) error {
		sess.Flow().Track(ctx, args[0])
		fmt.Printf("tracking %s\n", args[0])
		return nil
	})
}

func runUntrack(_ *cobra.Command, args []string) error {
	return withSession(func(ctx context.Context, sess *session.Session) error {
		sess.Flow().Untrack(ctx, args[0])
		fmt.Printf("untracked %s (history preserved)\n", args[0])
		return nil
	})
}

func runStage(_ *cobra.Command, args []string) error {
	stage := types.Stage(args[1])
	if !stage.Valid() {
		return fmt.Errorf("unknown stage %q (expected customize, connect, apply, or done)", args[1])
	}
	return withSession(func(ctx context.Context, sess *session.Session) error {
		sess.Flow().MoveStage(ctx, args[0], stage)
		fmt.Printf("%s -> %s\n", args[0], stage)
		return nil
	})
}

func runResume(_ *cobra.Command, args []string) error {
	text, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}
	return withSession(func(ctx context.Context, sess *session.Session) error {
		sess.Flow().SetResume(ctx, args[0], string(text))
		fmt.Printf("resume stored for %s\n", args[0])
		return nil
	})
}
