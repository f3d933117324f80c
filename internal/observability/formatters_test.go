package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/vectorindex"
)

func TestPrintResumeSections(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	sections := types.NewResumeSections()
	sections.Append(types.SectionSkills, "Go")
	sections.Append(types.SectionSkills, "Kubernetes")
	sections.Append(types.SectionExperience, "Acme Corp, Backend Engineer")

	p.PrintResumeSections(sections)
	output := buf.String()

	assert.Contains(t, output, "PARSED RESUME SECTIONS")
	assert.Contains(t, output, "skills:")
	assert.Contains(t, output, "Go")
	assert.Contains(t, output, "Acme Corp, Backend Engineer")
	assert.Contains(t, output, "education:")
}

func TestPrintResumeSections_TruncatesLongSections(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	sections := types.NewResumeSections()
	for i := 0; i < 8; i++ {
		sections.Append(types.SectionSkills, strings.Repeat("x", i+1))
	}

	p.PrintResumeSections(sections)

	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintMatches(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	matches := types.MatchList{
		Results: []types.MatchResult{
			{
				Posting: types.JobPosting{Title: "Backend Engineer", Company: "Acme"},
				Score:   0.91,
				Rank:    1,
			},
			{
				Posting: types.JobPosting{Title: "SRE", Company: "Initech"},
				Score:   0.72,
				Rank:    2,
			},
		},
	}

	p.PrintMatches(matches)
	output := buf.String()

	assert.Contains(t, output, "TOP JOB MATCHES")
	assert.Contains(t, output, "1. Backend Engineer at Acme (score 0.91)")
	assert.Contains(t, output, "2. SRE at Initech (score 0.72)")
	assert.NotContains(t, output, "fewer postings")
}

func TestPrintMatches_Truncated(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatches(types.MatchList{Truncated: true})
	output := buf.String()

	assert.Contains(t, output, "No matches found.")
	assert.Contains(t, output, "fewer postings than requested")
}

func TestPrintArtifact(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintArtifact(&types.AnalysisArtifact{
		Task:    types.TaskSummary,
		Summary: &types.Summary{Text: "Strong overlap with backend roles."},
	})
	output := buf.String()

	assert.Contains(t, output, "ANALYSIS (summary)")
	assert.Contains(t, output, "Strong overlap")
}

func TestPrintArtifact_PreviewKeepsRunesIntact(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	// Multi-byte runes straddling the preview cap must not be split.
	p.PrintArtifact(&types.AnalysisArtifact{
		Task:    types.TaskSummary,
		Summary: &types.Summary{Text: strings.Repeat("é", previewChars+50)},
	})

	assert.True(t, utf8.ValidString(buf.String()))
	assert.Contains(t, buf.String(), "...")
}

func TestPrintBox_TruncatesLongLinesOnRuneBoundary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TEST", strings.Repeat("ü", boxWidth*2))

	assert.True(t, utf8.ValidString(buf.String()))
	assert.Contains(t, buf.String(), "ü...")
}

func TestPrintIndexStats(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintIndexStats(vectorindex.Stats{Count: 12, Dimension: 768, ModelVersion: "text-embedding-004"})
	output := buf.String()

	assert.Contains(t, output, "VECTOR INDEX")
	assert.Contains(t, output, "Postings:  12")
	assert.Contains(t, output, "768")
	assert.Contains(t, output, "text-embedding-004")
}
