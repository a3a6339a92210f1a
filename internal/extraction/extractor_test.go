package extraction

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/agentic-researcher/internal/fetch"
	"github.com/jonathan/agentic-researcher/internal/types"
)

// stubFetcher serves canned content per URL and fails for URLs in failures.
type stubFetcher struct {
	content  map[string]string
	failures map[string]bool
}

func (s *stubFetcher) FetchContent(_ context.Context, url string) (string, error) {
	if s.failures[url] {
		return "", &fetch.Error{URL: url, Message: "HTTP status 500"}
	}
	return s.content[url], nil
}

func makeSources(n int) []types.Source {
	sources := make([]types.Source, n)
	for i := range sources {
		sources[i] = types.Source{URL: fmt.Sprintf("https://example.com/s/%d", i)}
	}
	return sources
}

func TestExtractAll_MockOneFindingPerSource(t *testing.T) {
	sources := makeSources(3)

	findings, err := ExtractAll(context.Background(), "quantum computing", sources, Options{})
	require.NoError(t, err)
	require.Len(t, findings, len(sources))

	for i, f := range findings {
		assert.Equal(t, "quantum computing", f.Topic)
		assert.Equal(t, sources[i].URL, f.SourceURL)
		assert.NotEmpty(t, f.KeyPoints)
		assert.LessOrEqual(t, len(f.Content), FindingContentLimit)
	}
	// Source content was filled in place.
	assert.Contains(t, sources[0].Content, "quantum computing")
	assert.NotEmpty(t, sources[0].ExtractedAt)
}

func TestExtractAll_ContentTruncatedRaw(t *testing.T) {
	long := strings.Repeat("x", 2*FindingContentLimit)
	fetcher := &stubFetcher{content: map[string]string{"https://example.com/s/0": long}}
	sources := makeSources(1)

	findings, err := ExtractAll(context.Background(), "topic", sources, Options{Fetcher: fetcher})
	require.NoError(t, err)
	require.Len(t, findings, 1)

	assert.Len(t, findings[0].Content, FindingContentLimit)
	// The full text still lives on the source.
	assert.Len(t, sources[0].Content, 2*FindingContentLimit)
}

func TestExtractAll_FailedFetchYieldsNoFinding(t *testing.T) {
	sources := makeSources(3)
	fetcher := &stubFetcher{
		content: map[string]string{
			sources[0].URL: "- point zero",
			sources[2].URL: "- point two",
		},
		failures: map[string]bool{sources[1].URL: true},
	}

	findings, err := ExtractAll(context.Background(), "topic", sources, Options{Fetcher: fetcher})
	require.NoError(t, err)

	// One finding per successful source, order preserved, failure skipped.
	require.Len(t, findings, 2)
	assert.Equal(t, sources[0].URL, findings[0].SourceURL)
	assert.Equal(t, sources[2].URL, findings[1].SourceURL)
	assert.Empty(t, sources[1].Content)
}

func TestExtractAll_ConcurrentPreservesOrder(t *testing.T) {
	sources := makeSources(8)
	content := make(map[string]string, len(sources))
	for i, s := range sources {
		content[s.URL] = fmt.Sprintf("- point %d", i)
	}
	fetcher := &stubFetcher{content: content}

	findings, err := ExtractAll(context.Background(), "topic", sources, Options{
		Fetcher:     fetcher,
		Concurrency: 4,
	})
	require.NoError(t, err)
	require.Len(t, findings, len(sources))

	for i, f := range findings {
		assert.Equal(t, sources[i].URL, f.SourceURL)
		assert.Equal(t, fmt.Sprintf("point %d", i), f.KeyPoints[0])
	}
}

func TestExtractAll_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExtractAll(ctx, "topic", makeSources(2), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractAll_ActionCallbackPerSource(t *testing.T) {
	sources := makeSources(4)
	var urls []string
	opts := Options{OnAction: func(action string, params map[string]any) {
		assert.Equal(t, "extracting", action)
		urls = append(urls, params["url"].(string))
	}}

	_, err := ExtractAll(context.Background(), "topic", sources, opts)
	require.NoError(t, err)
	require.Len(t, urls, 4)
	assert.Equal(t, sources[0].URL, urls[0])
}
