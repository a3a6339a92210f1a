// Package extraction turns discovered sources into findings.
package extraction

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/agentic-researcher/internal/types"
)

// FindingContentLimit is the raw byte cap on a finding's content excerpt.
// Truncation is deliberately not word-boundary aware.
const FindingContentLimit = 500

// Fetcher is the capability slot for real content retrieval.
// A nil Fetcher triggers deterministic mock-content generation.
type Fetcher interface {
	FetchContent(ctx context.Context, url string) (string, error)
}

// ActionFunc is called for each extraction action, for action logging.
type ActionFunc func(action string, params map[string]any)

// Options configures the extraction stage.
type Options struct {
	Fetcher     Fetcher
	Concurrency int // max parallel fetches; values < 1 mean sequential
	OnAction    ActionFunc
	Verbose     bool
}

// ExtractAll fills in content for each source and derives one finding per
// source, preserving source order. A source whose fetch fails keeps empty
// content and yields no finding; fetch failures are contained per source and
// never abort the stage. Context cancellation does abort it.
func ExtractAll(ctx context.Context, topic string, sources []types.Source, opts Options) ([]types.Finding, error) {
	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}

	// Per-index slots so concurrent workers never share an append target.
	contents := make([]string, len(sources))
	failed := make([]bool, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := range sources {
		if opts.OnAction != nil {
			opts.OnAction("extracting", map[string]any{"url": sources[i].URL})
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			content, err := extractContent(gctx, sources[i].URL, topic, opts.Fetcher)
			if err != nil {
				if opts.Verbose {
					log.Printf("[EXTRACT] Skipping %s: %v", sources[i].URL, err)
				}
				failed[i] = true
				return nil
			}
			contents[i] = content
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Reassemble in original source order.
	findings := make([]types.Finding, 0, len(sources))
	for i := range sources {
		if failed[i] {
			continue
		}
		sources[i].Content = contents[i]
		sources[i].ExtractedAt = time.Now().Format(time.RFC3339)

		excerpt := contents[i]
		if len(excerpt) > FindingContentLimit {
			excerpt = excerpt[:FindingContentLimit]
		}

		findings = append(findings, types.Finding{
			Topic:      topic,
			Content:    excerpt,
			SourceURL:  sources[i].URL,
			Confidence: 1.0,
			KeyPoints:  KeyPoints(contents[i]),
		})
	}

	return findings, nil
}

// extractContent resolves a single source's content, via the fetcher when
// configured or the mock generator otherwise.
func extractContent(ctx context.Context, url, topic string, fetcher Fetcher) (string, error) {
	if fetcher == nil {
		return mockContent(topic), nil
	}
	return fetcher.FetchContent(ctx, url)
}

// mockContent synthesizes deterministic source content for a topic.
// The shape intentionally exercises both bullet and numbered key-point markers.
func mockContent(topic string) string {
	return fmt.Sprintf(`Research findings about %[1]s:

Key Information:
- Overview: This is a comprehensive source about %[1]s
- The topic covers several important aspects
- There are multiple perspectives on this subject

Main Points:
1. First key point about %[1]s
2. Second important aspect to consider
3. Third notable finding from research

Conclusion:
Based on the analysis, %[1]s is significant because it impacts
various areas including technology, business, and society.`, topic)
}
