package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/agentic-researcher/internal/types"
)

func TestScoreFindings_FullAndZeroOverlap(t *testing.T) {
	findings := []types.Finding{
		{SourceURL: "none", Content: "completely unrelated text"},
		{SourceURL: "both", Content: "machine intelligence and learning systems"},
	}

	err := ScoreFindings("machine learning", findings)
	require.NoError(t, err)

	// Sorted descending: the full match first.
	assert.Equal(t, "both", findings[0].SourceURL)
	assert.InDelta(t, 1.0, findings[0].Confidence, 1e-9)
	assert.Equal(t, "none", findings[1].SourceURL)
	assert.InDelta(t, 0.0, findings[1].Confidence, 1e-9)
}

func TestScoreFindings_PartialOverlap(t *testing.T) {
	findings := []types.Finding{
		{Content: "all about machine tooling"},
	}

	err := ScoreFindings("machine learning", findings)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, findings[0].Confidence, 1e-9)
}

func TestScoreFindings_DuplicateTopicWordsCountedPerOccurrence(t *testing.T) {
	// "ai" appears twice in the topic, so it is checked twice: 2/3 matches.
	findings := []types.Finding{{Content: "ai systems everywhere"}}

	err := ScoreFindings("ai ai robotics", findings)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, findings[0].Confidence, 1e-9)
}

func TestScoreFindings_StableSortPreservesTies(t *testing.T) {
	findings := []types.Finding{
		{SourceURL: "first", Content: "golang tips"},
		{SourceURL: "second", Content: "golang tricks"},
		{SourceURL: "third", Content: "nothing relevant"},
	}

	err := ScoreFindings("golang", findings)
	require.NoError(t, err)

	// Equal confidence keeps original relative order.
	assert.Equal(t, "first", findings[0].SourceURL)
	assert.Equal(t, "second", findings[1].SourceURL)
	assert.Equal(t, "third", findings[2].SourceURL)
}

func TestScoreFindings_EmptyTopicRejected(t *testing.T) {
	var invalidErr *InvalidTopicError

	err := ScoreFindings("", nil)
	require.ErrorAs(t, err, &invalidErr)

	err = ScoreFindings("   ", []types.Finding{{Content: "x"}})
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, "   ", invalidErr.Topic)
}

func TestScoreFindings_CaseInsensitive(t *testing.T) {
	findings := []types.Finding{{Content: "Kubernetes Operators in Production"}}

	err := ScoreFindings("KUBERNETES operators", findings)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, findings[0].Confidence, 1e-9)
}
