package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/trackflow/internal/scoring"
	"github.com/jonathan/trackflow/internal/types"
)

// Oracle implements scoring.Oracle on top of a Client. Extraction runs on
// the lite tier, fit commentary on the standard tier. Each call sends the
// whole batch in one prompt and decodes a job-id-keyed map; missing or
// unknown ids are left for the pipeline to default.
type Oracle struct {
	client Client
}

// NewOracle creates an oracle backed by the given client.
func NewOracle(client Client) *Oracle {
	return &Oracle{client: client}
}

// ExtractKeywords asks for the skill keywords of every job in the batch in
// a single call.
func (o *Oracle) ExtractKeywords(ctx context.Context, batch []scoring.ExtractItem) (map[string][]string, error) {
	prompt, err := buildExtractPrompt(batch)
	if err != nil {
		return nil, err
	}

	raw, err := o.client.GenerateJSON(ctx, prompt, TierLite)
	if err != nil {
		return nil, fmt.Errorf("keyword extraction call failed: %w", err)
	}

	var out map[string][]string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("keyword extraction returned malformed JSON: %w", err)
	}
	return out, nil
}

// AnalyzeFit asks for qualitative fit commentary for every job in the batch
// in a single call.
func (o *Oracle) AnalyzeFit(ctx context.Context, batch []scoring.FitItem) (map[string]types.FitCommentary, error) {
	prompt, err := buildFitPrompt(batch)
	if err != nil {
		return nil, err
	}

	raw, err := o.client.GenerateJSON(ctx, prompt, TierStandard)
	if err != nil {
		return nil, fmt.Errorf("fit analysis call failed: %w", err)
	}

	var out map[string]types.FitCommentary
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("fit analysis returned malformed JSON: %w", err)
	}
	return out, nil
}

func buildExtractPrompt(batch []scoring.ExtractItem) (string, error) {
	payload, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal extraction batch: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(`You are an expert job posting analyst. For each job in the batch below, extract the concrete skill keywords a candidate would be screened against (languages, frameworks, tools, methodologies). COPY TERMS VERBATIM from the posting - do not paraphrase or invent.

Return ONLY valid JSON: an object mapping each jobId to an array of keyword strings, for example:
{"<jobId>": ["keyword", "keyword"]}

IMPORTANT:
- Include an entry for every jobId in the batch.
- Return ONLY the JSON object, no markdown, no explanation, no code blocks.

Job batch:
"""
`)
	sb.Write(payload)
	sb.WriteString("\n\"\"\"\n")
	return sb.String(), nil
}

func buildFitPrompt(batch []scoring.FitItem) (string, error) {
	payload, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal fit batch: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(`You are a career advisor. For each job in the batch below you are given the job's keywords, the candidate's skills, and the keywords that matched. Write two short assessments per job: what looks good about the candidate's fit, and what is missing.

Return ONLY valid JSON: an object mapping each jobId to an object with this exact structure:
{"<jobId>": {"whatLooksGood": "...", "whatIsMissing": "..."}}

IMPORTANT:
- Base the assessment only on the provided keywords and skills, do not invent experience.
- Keep each field to two or three sentences.
- Return ONLY the JSON object, no markdown, no explanation, no code blocks.

Job batch:
"""
`)
	sb.Write(payload)
	sb.WriteString("\n\"\"\"\n")
	return sb.String(), nil
}
