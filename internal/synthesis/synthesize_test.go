package synthesis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/agentic-researcher/internal/types"
)

// stubSummarizer returns a fixed summary or error and records its prompt.
type stubSummarizer struct {
	summary string
	err     error
	prompt  string
}

func (s *stubSummarizer) Summarize(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.summary, s.err
}

func TestSynthesize_TemplateSummaryWithoutCollaborator(t *testing.T) {
	findings := []types.Finding{
		{Content: "a", KeyPoints: []string{"Overview"}},
		{Content: "b", KeyPoints: []string{"Detail"}},
	}
	sources := []types.Source{{URL: "u1"}, {URL: "u2"}, {URL: "u3"}}

	report := Synthesize(context.Background(), "rust async", findings, sources, Options{})

	assert.Contains(t, report.Summary, "Research on 'rust async' completed successfully.")
	assert.Contains(t, report.Summary, "2 key findings from 3 sources")
	assert.Equal(t, "rust async", report.Topic)
	assert.NotEmpty(t, report.CreatedAt)
	assert.Equal(t, []string{"Overview", "Detail"}, report.KeyInsights)
}

func TestSynthesize_CollaboratorSummaryUsed(t *testing.T) {
	summarizer := &stubSummarizer{summary: "Model-written synthesis."}
	findings := []types.Finding{{Content: "finding content"}}

	report := Synthesize(context.Background(), "go generics", findings, nil, Options{Summarizer: summarizer})

	assert.Equal(t, "Model-written synthesis.", report.Summary)
	assert.Contains(t, summarizer.prompt, "Summarize research on go generics")
	assert.Contains(t, summarizer.prompt, "finding content")
}

func TestSynthesize_CollaboratorFailureFallsBack(t *testing.T) {
	summarizer := &stubSummarizer{err: &ModelError{Message: "quota exhausted"}}

	report := Synthesize(context.Background(), "topic", nil, nil, Options{Summarizer: summarizer})

	assert.Contains(t, report.Summary, "Research on 'topic' completed successfully.")
}

func TestSynthesize_PromptUsesTopFiveFindings(t *testing.T) {
	summarizer := &stubSummarizer{summary: "ok"}
	findings := make([]types.Finding, 7)
	for i := range findings {
		findings[i] = types.Finding{Content: "content-" + string(rune('a'+i))}
	}

	Synthesize(context.Background(), "t", findings, nil, Options{Summarizer: summarizer})

	assert.Contains(t, summarizer.prompt, "content-e")
	assert.NotContains(t, summarizer.prompt, "content-f")
	assert.NotContains(t, summarizer.prompt, "content-g")
}

func TestKeyInsights_DeduplicatesPreservingOrder(t *testing.T) {
	findings := []types.Finding{
		{KeyPoints: []string{"Overview", "First"}},
		{KeyPoints: []string{"Overview", "Second"}},
	}

	insights := KeyInsights(findings)
	assert.Equal(t, []string{"Overview", "First", "Second"}, insights)
}

func TestKeyInsights_StopsAtFive(t *testing.T) {
	findings := []types.Finding{
		{KeyPoints: []string{"1", "2", "3"}},
		{KeyPoints: []string{"4", "5", "6", "7"}},
	}

	insights := KeyInsights(findings)
	require.Len(t, insights, 5)
	assert.Equal(t, "5", insights[4])
}

func TestModelError_Unwrap(t *testing.T) {
	cause := errors.New("network down")
	err := &ModelError{Message: "failed to generate summary", Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.True(t, strings.HasPrefix(err.Error(), "model error:"))
}
