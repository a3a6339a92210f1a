package discovery

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// GoogleProvider implements Provider using the Google Custom Search API.
type GoogleProvider struct {
	svc *customsearch.Service
	cx  string
}

// NewGoogleProvider creates a GoogleProvider for the given API key and engine ID.
func NewGoogleProvider(ctx context.Context, apiKey, cx string) (*GoogleProvider, error) {
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &GoogleProvider{svc: svc, cx: cx}, nil
}

// Search runs a custom-search query and maps results in rank order.
// Relevance decays with rank since the API reports no score of its own.
func (p *GoogleProvider) Search(ctx context.Context, q string, maxResults int) ([]SearchResult, error) {
	if maxResults <= 0 {
		return nil, nil
	}
	if maxResults > 10 {
		maxResults = 10 // API page cap
	}

	resp, err := p.svc.Cse.List().Cx(p.cx).Q(q).Num(int64(maxResults)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]SearchResult, 0, len(resp.Items))
	for i, item := range resp.Items {
		relevance := 0.9 - float64(i)*0.1
		if relevance < 0.1 {
			relevance = 0.1
		}
		results = append(results, SearchResult{
			URL:       item.Link,
			Title:     item.Title,
			Relevance: relevance,
		})
	}
	return results, nil
}
