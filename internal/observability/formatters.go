// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/agentic-researcher/internal/agent"
	"github.com/jonathan/agentic-researcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintReport outputs a human-readable summary of a finished research report.
func (p *Printer) PrintReport(report *types.ResearchReport) {
	if report == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Topic:    %s\n", report.Topic))
	sb.WriteString(fmt.Sprintf("Sources:  %d\n", len(report.Sources)))
	sb.WriteString(fmt.Sprintf("Findings: %d\n", len(report.Findings)))
	sb.WriteString("\n")

	sb.WriteString("Summary:\n")
	for _, line := range strings.Split(strings.TrimSpace(report.Summary), "\n") {
		sb.WriteString(fmt.Sprintf("  %s\n", line))
	}

	if len(report.KeyInsights) > 0 {
		sb.WriteString("\nKey Insights:\n")
		count := min(len(report.KeyInsights), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", report.KeyInsights[i]))
		}
	}

	p.printBox("RESEARCH REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFindings outputs the top findings with confidence and source.
func (p *Printer) PrintFindings(findings []types.Finding) {
	if len(findings) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total findings: %d\n\n", len(findings)))

	count := min(len(findings), maxItemsToShow)
	for i := 0; i < count; i++ {
		f := findings[i]
		sb.WriteString(fmt.Sprintf("#%d  confidence %.2f\n", i+1, f.Confidence))
		sb.WriteString(fmt.Sprintf("    Source: %s\n", f.SourceURL))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(findings) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more\n", len(findings)-maxItemsToShow))
	}

	p.printBox("RANKED FINDINGS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintActionLog outputs the recorded agent actions in order.
func (p *Printer) PrintActionLog(entries []agent.Entry) {
	if len(entries) == 0 {
		return
	}

	var sb strings.Builder
	for i, e := range entries {
		sb.WriteString(fmt.Sprintf("%2d. [%s] %s", i+1, e.State, e.Action))
		if q, ok := e.Params["query"]; ok {
			sb.WriteString(fmt.Sprintf(" (%v)", q))
		}
		sb.WriteString("\n")
	}

	p.printBox("ACTION LOG", strings.TrimSuffix(sb.String(), "\n"))
}
