package discovery

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jonathan/agentic-researcher/internal/query"
	"github.com/jonathan/agentic-researcher/internal/types"
)

// mockSourcesPerQuery is how many synthesized sources each query contributes
// when no search provider is configured.
const mockSourcesPerQuery = 2

// SearchResult is a single result returned by a search provider.
type SearchResult struct {
	URL       string
	Title     string
	Relevance float64
}

// Provider is the capability slot for real source search.
// A nil Provider triggers deterministic mock-source generation.
type Provider interface {
	Search(ctx context.Context, q string, maxResults int) ([]SearchResult, error)
}

// ActionFunc is called for each discovery action, for action logging.
type ActionFunc func(action string, params map[string]any)

// Options configures source discovery.
type Options struct {
	Provider Provider
	OnAction ActionFunc
	Verbose  bool
}

// FindSources walks the query variants for topic in order, accumulating
// candidate sources until numSources are collected. A failed query contributes
// zero sources and the walk continues; the result is truncated to numSources
// and never padded. Context cancellation aborts the walk.
func FindSources(ctx context.Context, topic string, numSources int, opts Options) ([]types.Source, error) {
	queries := query.Variants(topic)

	sources := make([]types.Source, 0, numSources)
	for _, q := range queries {
		if len(sources) >= numSources {
			break
		}
		if err := ctx.Err(); err != nil {
			return sources, err
		}

		if opts.OnAction != nil {
			opts.OnAction("searching", map[string]any{"query": q})
		}

		found, err := searchQuery(ctx, q, numSources-len(sources), opts)
		if err != nil {
			// A failing query is not fatal; it just contributes nothing.
			if opts.Verbose {
				log.Printf("[DISCOVERY] Query %q failed: %v", q, err)
			}
			continue
		}

		sources = append(sources, found...)
	}

	if len(sources) > numSources {
		sources = sources[:numSources]
	}
	return sources, nil
}

// searchQuery resolves a single query, via the provider when configured or the
// mock generator otherwise.
func searchQuery(ctx context.Context, q string, remaining int, opts Options) ([]types.Source, error) {
	if opts.Provider == nil {
		return mockSources(q), nil
	}

	results, err := opts.Provider.Search(ctx, q, remaining)
	if err != nil {
		return nil, &Error{Query: q, Message: "provider search failed", Cause: err}
	}

	sources := make([]types.Source, 0, len(results))
	for _, r := range results {
		sources = append(sources, types.Source{
			URL:         r.URL,
			Title:       r.Title,
			Relevance:   r.Relevance,
			ExtractedAt: time.Now().Format(time.RFC3339),
		})
	}
	return sources, nil
}

// mockSources synthesizes two deterministic sources for a query.
func mockSources(q string) []types.Source {
	slug := strings.ReplaceAll(q, " ", "-")
	now := time.Now().Format(time.RFC3339)

	return []types.Source{
		{
			URL:         fmt.Sprintf("https://example.com/%s/1", slug),
			Title:       fmt.Sprintf("Article about %s - Source 1", q),
			Relevance:   0.9,
			ExtractedAt: now,
		},
		{
			URL:         fmt.Sprintf("https://example.com/%s/2", slug),
			Title:       fmt.Sprintf("Guide to %s", q),
			Relevance:   0.8,
			ExtractedAt: now,
		},
	}
}
