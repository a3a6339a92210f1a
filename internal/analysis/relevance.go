// Package analysis scores findings for relevance against the research topic.
package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/agentic-researcher/internal/types"
)

// InvalidTopicError reports a topic with no scoreable words.
type InvalidTopicError struct {
	Topic string
}

func (e *InvalidTopicError) Error() string {
	return fmt.Sprintf("invalid topic %q: no words to score against", e.Topic)
}

// ScoreFindings computes a confidence for every finding and re-sorts the slice
// by confidence descending. The sort is stable: equal-confidence findings keep
// their prior relative order.
//
// Confidence is lexical overlap: the count of topic words (lower-cased,
// whitespace-split, duplicates checked once per occurrence) found as substrings
// of the lower-cased finding content, divided by the topic word count and
// clamped to 1.0.
func ScoreFindings(topic string, findings []types.Finding) error {
	topicWords := strings.Fields(strings.ToLower(topic))
	if len(topicWords) == 0 {
		return &InvalidTopicError{Topic: topic}
	}

	for i := range findings {
		contentLower := strings.ToLower(findings[i].Content)

		matches := 0
		for _, word := range topicWords {
			if strings.Contains(contentLower, word) {
				matches++
			}
		}

		confidence := float64(matches) / float64(len(topicWords))
		if confidence > 1.0 {
			confidence = 1.0
		}
		findings[i].Confidence = confidence
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Confidence > findings[j].Confidence
	})

	return nil
}
