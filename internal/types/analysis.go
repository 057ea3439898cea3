package types

// JobPosting represents one job in a scoring batch. The description is the
// raw posting text; the scoring pipeline never parses it locally and hands
// it to the reasoning oracle as-is.
type JobPosting struct {
	ID          string `json:"jobId"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

// JobAnalysis represents the scoring result for a single job. It is
// recomputed wholesale on every scoring run, never merged field-by-field.
type JobAnalysis struct {
	Keywords          []string `json:"keywords"`
	KeywordMatchScore int      `json:"keywordMatchScore"`
	WhatLooksGood     string   `json:"whatLooksGood"`
	WhatIsMissing     string   `json:"whatIsMissing"`
}

// FitCommentary is the qualitative half of a job analysis, as returned by
// the reasoning oracle's fit call.
type FitCommentary struct {
	WhatLooksGood string `json:"whatLooksGood"`
	WhatIsMissing string `json:"whatIsMissing"`
}
