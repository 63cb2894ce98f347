// Package observability provides human-readable rendering of analysis results for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-parser/internal/analysis"
	"github.com/jonathan/resume-parser/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 8
)

// Printer handles formatted output for the analyze command
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

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintAnalysis outputs a human-readable summary of an analysis result.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Experience: %d years\n", result.YearsExperience))
	sb.WriteString("\n")

	writeList(&sb, "Skills", result.Skills, len(analysis.Skills()))
	writeList(&sb, "Titles", result.Titles, len(analysis.Titles()))

	if len(result.Gaps) == 0 {
		sb.WriteString("Gaps: none\n")
	} else {
		sb.WriteString("Gaps:\n")
		for i, gap := range result.Gaps {
			sb.WriteString(fmt.Sprintf("  ✗ %s\n", gap))
			if i < len(result.Recommendations) {
				sb.WriteString(fmt.Sprintf("    → %s\n", result.Recommendations[i]))
			}
		}
	}

	p.printBox("RESUME ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// writeList prints items as "label (n of known):" followed by a truncated bullet list.
func writeList(sb *strings.Builder, label string, items []string, known int) {
	if len(items) == 0 {
		sb.WriteString(fmt.Sprintf("%s: none\n\n", label))
		return
	}
	sb.WriteString(fmt.Sprintf("%s (%d of %d):\n", label, len(items), known))
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	sb.WriteString("\n")
}
