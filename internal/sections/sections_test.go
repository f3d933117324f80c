package sections

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/types"
)

const sampleResume = `Jane Doe
jane@example.com

Professional Summary
Backend engineer with eight years of production Go experience.

Technical Skills:
- Go, PostgreSQL, Kafka
- Kubernetes, Terraform

Work Experience
Acme Corp — Senior Engineer (2019–2024)
Built the ingestion pipeline for billions of events.

Education
B.S. Computer Science, State University`

func TestSplit_AssignsSections(t *testing.T) {
	result := Split(sampleResume)

	assert.Contains(t, result.Text(types.SectionSkills), "Go, PostgreSQL, Kafka")
	assert.Contains(t, result.Text(types.SectionExperience), "Acme Corp")
	assert.Contains(t, result.Text(types.SectionEducation), "Computer Science")
	assert.Contains(t, result.Text(types.SectionSummary), "eight years")
	assert.Contains(t, result.Text(types.SectionOther), "Jane Doe", "preamble before first heading lands in other")
}

func TestSplit_HeadingLineStaysInItsSection(t *testing.T) {
	result := Split("Skills\nGo")

	require.Equal(t, []string{"Skills", "Go"}, result.Get(types.SectionSkills))
}

func TestSplit_PartitionIsTotal(t *testing.T) {
	// Every normalized input line must be assigned to exactly one section.
	normalized := Normalize(sampleResume)
	inputLines := strings.Split(normalized, "\n")

	result := Split(sampleResume)

	assert.Equal(t, len(inputLines), result.TotalLines())

	counts := make(map[string]int)
	for _, line := range inputLines {
		counts[line]++
	}
	for _, section := range types.AllSections() {
		for _, line := range result.Get(section) {
			counts[line]--
		}
	}
	for line, count := range counts {
		assert.Zero(t, count, "line %q not assigned exactly once", line)
	}
}

func TestSplit_NoHeadingsFallsBackToSummary(t *testing.T) {
	text := "Just a paragraph of free text.\nNothing resembling a heading here."

	result := Split(text)

	assert.Equal(t, 2, len(result.Get(types.SectionSummary)))
	for _, section := range []types.Section{types.SectionSkills, types.SectionExperience, types.SectionEducation, types.SectionOther} {
		assert.Empty(t, result.Get(section))
	}
}

func TestSplit_Deterministic(t *testing.T) {
	first := Split(sampleResume)
	second := Split(sampleResume)

	assert.Equal(t, first, second)
}

func TestMatchHeading(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected types.Section
		ok       bool
	}{
		{"plain skills", "Skills", types.SectionSkills, true},
		{"skills with colon", "Skills:", types.SectionSkills, true},
		{"technical skills", "Technical Skills", types.SectionSkills, true},
		{"bulleted heading", "• Work Experience", types.SectionExperience, true},
		{"markdown heading", "## Education", types.SectionEducation, true},
		{"case insensitive", "EXPERIENCE", types.SectionExperience, true},
		{"professional summary", "Professional Summary", types.SectionSummary, true},
		{"objective", "Objective:", types.SectionSummary, true},
		{"prose mentioning keyword", "I have experience building large distributed storage systems", "", false},
		{"experienced is not experience", "Experienced Golang Developer Wanted", "", false},
		{"empty line", "", "", false},
		{"blank line", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			section, ok := matchHeading(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, section)
		})
	}
}

func TestParse_PlainText(t *testing.T) {
	result, err := Parse([]byte(sampleResume), types.FormatText)
	require.NoError(t, err)
	assert.False(t, result.IsEmpty())
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := Parse([]byte("x"), types.Format("odt"))
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"crlf to lf", "a\r\nb", "a\nb"},
		{"bare cr to lf", "a\rb", "a\nb"},
		{"trailing whitespace trimmed", "a  \t\nb", "a\nb"},
		{"blank runs collapsed", "a\n\n\n\n\nb", "a\n\nb"},
		{"outer whitespace trimmed", "\n\n  a  \n\n", "a"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}
