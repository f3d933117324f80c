// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/vectorindex"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxLinesToShow is the default number of lines to display per section
	maxLinesToShow = 5
	// previewChars caps artifact previews
	previewChars = 400
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
		if utf8.RuneCountInString(line) > boxWidth-4 {
			line = truncateRunes(line, boxWidth-7) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResumeSections outputs a per-section line count summary with a short
// preview of each non-empty section.
func (p *Printer) PrintResumeSections(sections types.ResumeSections) {
	var sb strings.Builder
	for _, section := range types.AllSections() {
		lines := sections.Get(section)
		sb.WriteString(fmt.Sprintf("%-12s %d lines\n", string(section)+":", len(lines)))
		count := min(len(lines), maxLinesToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", lines[i]))
		}
		if len(lines) > maxLinesToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(lines)-maxLinesToShow))
		}
	}

	p.printBox("PARSED RESUME SECTIONS", strings.TrimRight(sb.String(), "\n"))
}

// PrintMatches outputs the ranked match list.
func (p *Printer) PrintMatches(matches types.MatchList) {
	var sb strings.Builder
	if matches.Len() == 0 {
		sb.WriteString("No matches found.\n")
	}
	for _, match := range matches.Results {
		sb.WriteString(fmt.Sprintf("%d. %s at %s (score %.2f)\n",
			match.Rank, match.Posting.Title, match.Posting.Company, match.Score))
	}
	if matches.Truncated {
		sb.WriteString("(fewer postings than requested)\n")
	}

	p.printBox("TOP JOB MATCHES", strings.TrimRight(sb.String(), "\n"))
}

// PrintArtifact outputs a truncated preview of a generated analysis.
func (p *Printer) PrintArtifact(artifact *types.AnalysisArtifact) {
	if artifact == nil {
		return
	}

	text := artifact.Text()
	if utf8.RuneCountInString(text) > previewChars {
		text = truncateRunes(text, previewChars) + "..."
	}

	p.printBox(fmt.Sprintf("ANALYSIS (%s)", artifact.Task), text)
}

// truncateRunes cuts s to at most limit runes on a rune boundary.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// PrintIndexStats outputs vector index statistics.
func (p *Printer) PrintIndexStats(stats vectorindex.Stats) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Postings:  %d\n", stats.Count))
	sb.WriteString(fmt.Sprintf("Dimension: %d\n", stats.Dimension))
	sb.WriteString(fmt.Sprintf("Model:     %s", stats.ModelVersion))

	p.printBox("VECTOR INDEX", sb.String())
}
