package models

// NewsRank is the tagged result of parsing the ranking provider's response.
// Parsed is false when the response could not be interpreted even after
// repair; callers must treat that as score 0, not as an error.
type NewsRank struct {
	Parsed bool   `json:"parsed"`
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// Unranked is the zero-value rank recorded when parsing fails outright.
func Unranked() NewsRank {
	return NewsRank{}
}

// NoExtractableText is stored as the summary for documents whose source
// text is too short or garbled to summarize.
const NoExtractableText = "[No extractable text]"

// ReportPerson is one public figure extracted from document summaries by
// the report generator.
type ReportPerson struct {
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Severity    string   `json:"severity"`
	Allegations []string `json:"allegations"`
	Sources     []string `json:"sources"`
}

// EnrichmentStats summarizes one enrichment batch run.
type EnrichmentStats struct {
	RunID      string `json:"run_id"`
	Summarized int    `json:"summarized"`
	Ranked     int    `json:"ranked"`
	Skipped    int    `json:"skipped"`
	Failed     int    `json:"failed"`
}
