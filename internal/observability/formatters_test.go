package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/agentic-researcher/internal/agent"
	"github.com/jonathan/agentic-researcher/internal/types"
)

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	report := &types.ResearchReport{
		Topic:   "quantum computing",
		Summary: "Research on 'quantum computing' completed successfully.",
		Sources: []types.Source{
			{URL: "https://example.com/a", Title: "A"},
		},
		Findings: []types.Finding{
			{Topic: "quantum computing", Content: "Qubits hold superpositions."},
		},
		KeyInsights: []string{"Qubits hold superpositions."},
	}

	p.PrintReport(report)
	output := buf.String()

	assert.Contains(t, output, "RESEARCH REPORT")
	assert.Contains(t, output, "quantum computing")
	assert.Contains(t, output, "Sources:  1")
	assert.Contains(t, output, "Findings: 1")
	assert.Contains(t, output, "Key Insights:")
}

func TestPrintReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReport(nil)

	assert.Empty(t, buf.String())
}

func TestPrintFindings(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	findings := make([]types.Finding, 7)
	for i := range findings {
		findings[i] = types.Finding{
			SourceURL:  "https://example.com/src",
			Confidence: 0.5,
		}
	}

	p.PrintFindings(findings)
	output := buf.String()

	assert.Contains(t, output, "RANKED FINDINGS")
	assert.Contains(t, output, "Total findings: 7")
	assert.Contains(t, output, "#5")
	assert.NotContains(t, output, "#6")
	assert.Contains(t, output, "... and 2 more")
}

func TestPrintFindings_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFindings(nil)

	assert.Empty(t, buf.String())
}

func TestPrintActionLog(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	entries := []agent.Entry{
		{Action: "research_started", State: agent.StateSearching},
		{Action: "searching", Params: map[string]any{"query": "golang guide"}, State: agent.StateSearching},
	}

	p.PrintActionLog(entries)
	output := buf.String()

	assert.Contains(t, output, "ACTION LOG")
	assert.Contains(t, output, "research_started")
	assert.Contains(t, output, "golang guide")
}
