// Package types provides type definitions for the research records shared across the pipeline.
package types

// Source represents a candidate research source discovered for a topic.
// Identity is the URL; Content starts empty and is filled by extraction.
type Source struct {
	URL         string  `json:"url"`
	Title       string  `json:"title"`
	Content     string  `json:"content,omitempty"`
	Relevance   float64 `json:"relevance"`
	ExtractedAt string  `json:"extracted_at"` // RFC3339 format
}
