// Package scoring computes keyword-match scores and qualitative fit
// commentary for batches of jobs against a user's skill profile. The
// numeric score is deterministic local aggregation; keyword extraction and
// commentary come from the reasoning oracle.
package scoring

import (
	"context"
	"fmt"

	"github.com/jonathan/trackflow/internal/types"
)

// ExtractItem is one job in a keyword-extraction batch.
type ExtractItem struct {
	JobID       string `json:"jobId"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

// FitItem is one job in a fit-commentary batch. It carries the extraction
// results forward, which is why the two oracle calls are strictly
// sequential rather than concurrent.
type FitItem struct {
	JobID           string   `json:"jobId"`
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Keywords        []string `json:"keywords"`
	Skills          []string `json:"skills"`
	MatchedKeywords []string `json:"matchedKeywords"`
}

// Oracle is the reasoning capability behind the pipeline. Both calls are
// batched to bound request volume; either may fail as a unit.
type Oracle interface {
	ExtractKeywords(ctx context.Context, batch []ExtractItem) (map[string][]string, error)
	AnalyzeFit(ctx context.Context, batch []FitItem) (map[string]types.FitCommentary, error)
}

// Pipeline orchestrates one scoring run.
type Pipeline struct {
	oracle Oracle
}

// NewPipeline creates a scoring pipeline backed by the given oracle.
func NewPipeline(oracle Oracle) *Pipeline {
	return &Pipeline{oracle: oracle}
}

// Score analyzes a batch of jobs against the skill profile and returns one
// JobAnalysis per job, keyed by job id. The run is all-or-nothing: a
// failure of either oracle call aborts the whole batch with a single error
// and no partial results, so callers can leave previous analyses untouched.
func (p *Pipeline) Score(ctx context.Context, jobs []types.JobPosting, skillProfile []string) (map[string]types.JobAnalysis, error) {
	if len(jobs) == 0 {
		return map[string]types.JobAnalysis{}, nil
	}

	skillSet := normalizeSet(skillProfile)

	extractBatch := make([]ExtractItem, len(jobs))
	for i, job := range jobs {
		extractBatch[i] = ExtractItem{
			JobID:       job.ID,
			Title:       job.Title,
			Company:     job.Company,
			Description: job.Description,
		}
	}
	keywordsByJob, err := p.oracle.ExtractKeywords(ctx, extractBatch)
	if err != nil {
		return nil, fmt.Errorf("keyword extraction failed for batch of %d jobs: %w", len(jobs), err)
	}

	matchedByJob := make(map[string][]string, len(jobs))
	fitBatch := make([]FitItem, len(jobs))
	for i, job := range jobs {
		// A job the oracle skipped scores against an empty keyword list.
		keywords := keywordsByJob[job.ID]
		matched := matchKeywords(keywords, skillSet)
		matchedByJob[job.ID] = matched
		fitBatch[i] = FitItem{
			JobID:           job.ID,
			Title:           job.Title,
			Company:         job.Company,
			Keywords:        keywords,
			Skills:          skillProfile,
			MatchedKeywords: matched,
		}
	}

	commentaryByJob, err := p.oracle.AnalyzeFit(ctx, fitBatch)
	if err != nil {
		return nil, fmt.Errorf("fit analysis failed for batch of %d jobs: %w", len(jobs), err)
	}

	results := make(map[string]types.JobAnalysis, len(jobs))
	for _, job := range jobs {
		keywords := keywordsByJob[job.ID]
		commentary := commentaryByJob[job.ID] // zero value when missing
		results[job.ID] = types.JobAnalysis{
			Keywords:          keywords,
			KeywordMatchScore: MatchScore(len(keywords), len(matchedByJob[job.ID])),
			WhatLooksGood:     commentary.WhatLooksGood,
			WhatIsMissing:     commentary.WhatIsMissing,
		}
	}
	return results, nil
}
