package agent

import (
	"context"

	"github.com/jonathan/agentic-researcher/internal/types"
)

// MultiTopicResearcher runs independent research runs over a set of topics.
// Each topic gets its own Researcher, so no sources, findings, or action log
// entries cross between topics.
type MultiTopicResearcher struct {
	opts Options
}

// NewMultiTopic creates a coordinator whose per-topic agents share opts.
func NewMultiTopic(opts Options) *MultiTopicResearcher {
	return &MultiTopicResearcher{opts: opts}
}

// ResearchAll researches each topic in order and collects the reports keyed
// by topic. A failed topic contributes its Error-state report and does not
// stop the remaining topics; the first failure is returned after all topics
// have run.
func (m *MultiTopicResearcher) ResearchAll(ctx context.Context, topics []string, depth types.Depth) (map[string]*types.ResearchReport, error) {
	reports := make(map[string]*types.ResearchReport, len(topics))
	var firstErr error
	for _, topic := range topics {
		agent := New(m.opts)
		report, err := agent.Research(ctx, topic, depth)
		reports[topic] = report
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return reports, firstErr
}
