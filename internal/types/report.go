package types

// MaxKeyInsights caps the deduplicated insight list in a report.
const MaxKeyInsights = 5

// ResearchReport is the final output of a research run.
// It is constructed once at the end of a run and immutable afterwards.
type ResearchReport struct {
	Topic       string    `json:"topic"`
	Summary     string    `json:"summary"`
	Findings    []Finding `json:"findings,omitempty"`
	Sources     []Source  `json:"sources,omitempty"`
	KeyInsights []string  `json:"key_insights,omitempty"`
	CreatedAt   string    `json:"created_at"` // RFC3339 format
}
