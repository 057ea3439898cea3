package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/trackflow/internal/llm"
	"github.com/jonathan/trackflow/internal/observability"
	"github.com/jonathan/trackflow/internal/scoring"
	"github.com/jonathan/trackflow/internal/types"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a batch of jobs against a skill profile",
	Long: `Reads a JSON file containing a batch of job postings, asks the reasoning
oracle for keywords and fit commentary in two batched calls, and prints one
analysis per job. The run is all-or-nothing: an oracle failure aborts the
whole batch.`,
	RunE: runScore,
}

var (
	scoreJobsPath string
	scoreSkills   string
	scoreOutPath  string
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreJobsPath, "jobs", "j", "", "Path to JSON file with the job batch (required)")
	scoreCmd.Flags().StringVarP(&scoreSkills, "skills", "s", "", "Comma-separated skill profile (required)")
	scoreCmd.Flags().StringVarP(&scoreOutPath, "out", "o", "", "Write results JSON to this file instead of stdout")
	_ = scoreCmd.MarkFlagRequired("jobs")
	_ = scoreCmd.MarkFlagRequired("skills")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("a Gemini API key is required (config file or GEMINI_API_KEY)")
	}

	data, err := os.ReadFile(scoreJobsPath)
	if err != nil {
		return fmt.Errorf("failed to read jobs file: %w", err)
	}
	var jobs []types.JobPosting
	if err := json.Unmarshal(data, &jobs); err != nil {
		return fmt.Errorf("failed to parse jobs file: %w", err)
	}

	skills := splitSkills(scoreSkills)
	if len(skills) == 0 {
		return fmt.Errorf("skill profile is empty")
	}

	llmCfg := llm.DefaultConfig()
	if cfg.ExtractModel != "" {
		llmCfg = llmCfg.WithModel(llm.TierLite, cfg.ExtractModel)
	}
	if cfg.FitModel != "" {
		llmCfg = llmCfg.WithModel(llm.TierStandard, cfg.FitModel)
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	pipeline := scoring.NewPipeline(llm.NewOracle(client))
	results, err := pipeline.Score(ctx, jobs, skills)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintAnalyses(results)
	}

	payload, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if scoreOutPath != "" {
		if err := os.WriteFile(scoreOutPath, payload, 0o644); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
		fmt.Printf("wrote %d analyses to %s\n", len(results), scoreOutPath)
		return nil
	}
	fmt.Println(string(payload))
	return nil
}

func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}
