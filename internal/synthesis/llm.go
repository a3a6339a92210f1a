package synthesis

import (
	"context"

	"github.com/jonathan/agentic-researcher/internal/llm"
)

// LLMSummarizer adapts an llm.Client to the Summarizer slot.
type LLMSummarizer struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewLLMSummarizer wraps a client; a zero tier uses the standard tier.
func NewLLMSummarizer(client llm.Client, tier llm.ModelTier) *LLMSummarizer {
	if tier == "" {
		tier = llm.TierStandard
	}
	return &LLMSummarizer{client: client, tier: tier}
}

// Summarize generates a summary for the prompt.
func (s *LLMSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	text, err := s.client.GenerateContent(ctx, prompt, s.tier)
	if err != nil {
		return "", &ModelError{Message: "failed to generate summary", Cause: err}
	}
	return text, nil
}
