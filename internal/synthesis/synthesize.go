package synthesis

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jonathan/agentic-researcher/internal/types"
)

// topFindingsForSummary is how many findings (by confidence order) feed the
// model-backed summary prompt.
const topFindingsForSummary = 5

// Summarizer is the capability slot for model-backed summaries.
// A nil Summarizer, or one that fails, falls back to the deterministic template.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// Options configures report synthesis.
type Options struct {
	Summarizer Summarizer
	Verbose    bool
}

// Synthesize builds the final report from confidence-sorted findings.
// The findings slice is expected in its post-analysis order; insights follow
// that order.
func Synthesize(ctx context.Context, topic string, findings []types.Finding, sources []types.Source, opts Options) types.ResearchReport {
	return types.ResearchReport{
		Topic:       topic,
		Summary:     summarize(ctx, topic, findings, len(sources), opts),
		Findings:    findings,
		Sources:     sources,
		KeyInsights: KeyInsights(findings),
		CreatedAt:   time.Now().Format(time.RFC3339),
	}
}

// summarize resolves the report summary, via the collaborator when configured
// and falling back to the template on any failure.
func summarize(ctx context.Context, topic string, findings []types.Finding, numSources int, opts Options) string {
	if opts.Summarizer != nil {
		summary, err := opts.Summarizer.Summarize(ctx, buildSummaryPrompt(topic, findings))
		if err == nil && strings.TrimSpace(summary) != "" {
			return summary
		}
		if opts.Verbose {
			log.Printf("[SYNTHESIS] Summarizer failed, using template: %v", err)
		}
	}
	return templateSummary(topic, len(findings), numSources)
}

// buildSummaryPrompt concatenates the top findings' content under the topic.
func buildSummaryPrompt(topic string, findings []types.Finding) string {
	top := findings
	if len(top) > topFindingsForSummary {
		top = top[:topFindingsForSummary]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Summarize research on %s based on these findings:\n", topic)
	for _, f := range top {
		sb.WriteString(f.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

// templateSummary is the deterministic fallback summary.
func templateSummary(topic string, numFindings, numSources int) string {
	return fmt.Sprintf(`Research on '%[1]s' completed successfully.

This report contains %[2]d key findings from %[3]d sources.
The research covers various aspects of %[1]s including main concepts,
important considerations, and practical applications.

See key insights below for the most important takeaways.`, topic, numFindings, numSources)
}

// KeyInsights flattens finding key points in order, deduplicating by exact
// string match and stopping once MaxKeyInsights are collected.
func KeyInsights(findings []types.Finding) []string {
	var insights []string
	seen := make(map[string]bool)

	for _, f := range findings {
		for _, point := range f.KeyPoints {
			if seen[point] {
				continue
			}
			insights = append(insights, point)
			seen[point] = true
			if len(insights) == types.MaxKeyInsights {
				return insights
			}
		}
	}
	return insights
}
