// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/trackflow/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintState outputs a human-readable summary of a user's track-flow state.
func (p *Printer) PrintState(st *types.State) {
	if st == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Tracked jobs: %d\n", len(st.TrackedJobs)))

	jobIDs := make([]string, 0, len(st.TrackedJobs))
	for jobID := range st.TrackedJobs {
		jobIDs = append(jobIDs, jobID)
	}
	sort.Strings(jobIDs)

	count := min(len(jobIDs), maxItemsToShow)
	for i := 0; i < count; i++ {
		jobID := jobIDs[i]
		sb.WriteString(fmt.Sprintf("  • %s  [%s]", jobID, st.TrackedJobs[jobID]))
		if _, ok := st.CustomizedResumes[jobID]; ok {
			sb.WriteString(" resume✓")
		}
		if n := len(st.JobContacts[jobID]); n > 0 {
			sb.WriteString(fmt.Sprintf(" contacts:%d", n))
		}
		sb.WriteString("\n")
	}
	if len(jobIDs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(jobIDs)-maxItemsToShow))
	}

	sb.WriteString(fmt.Sprintf("\nContacts: %d across %d jobs\n", countContacts(st), len(st.JobContacts)))
	sb.WriteString(fmt.Sprintf("Drafts:   %d", len(st.ContactDrafts)))

	p.printBox("TRACK-FLOW STATE", sb.String())
}

// PrintAnalyses outputs scoring results sorted by descending match score.
func (p *Printer) PrintAnalyses(analyses map[string]types.JobAnalysis) {
	if len(analyses) == 0 {
		return
	}

	type scored struct {
		jobID    string
		analysis types.JobAnalysis
	}
	ranked := make([]scored, 0, len(analyses))
	for jobID, analysis := range analyses {
		ranked = append(ranked, scored{jobID, analysis})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].analysis.KeywordMatchScore != ranked[j].analysis.KeywordMatchScore {
			return ranked[i].analysis.KeywordMatchScore > ranked[j].analysis.KeywordMatchScore
		}
		return ranked[i].jobID < ranked[j].jobID
	})

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Jobs scored: %d\n\n", len(ranked)))

	count := min(len(ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := ranked[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, r.jobID))
		sb.WriteString(fmt.Sprintf("    Match: %d%%", r.analysis.KeywordMatchScore))
		if len(r.analysis.Keywords) > 0 {
			keywords := strings.Join(r.analysis.Keywords, ", ")
			if len(keywords) > 35 {
				keywords = keywords[:32] + "..."
			}
			sb.WriteString(fmt.Sprintf(" (%s)", keywords))
		}
		sb.WriteString("\n")
		if r.analysis.WhatLooksGood != "" {
			good := r.analysis.WhatLooksGood
			if len(good) > 45 {
				good = good[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("    + %s\n", good))
		}
		if r.analysis.WhatIsMissing != "" {
			missing := r.analysis.WhatIsMissing
			if len(missing) > 45 {
				missing = missing[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("    - %s\n", missing))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(ranked) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more jobs", len(ranked)-maxItemsToShow))
	}

	p.printBox("JOB FIT SCORES", sb.String())
}

func countContacts(st *types.State) int {
	total := 0
	for _, contacts := range st.JobContacts {
		total += len(contacts)
	}
	return total
}
