// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
	"time"
)

// Format identifies the source format of an uploaded resume document.
type Format string

// Supported resume document formats
const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "text"
)

// ParseFormat maps a file extension or format label to a Format.
// Returns false if the value does not name a supported format.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "pdf":
		return FormatPDF, true
	case "docx":
		return FormatDOCX, true
	case "text", "txt":
		return FormatText, true
	default:
		return "", false
	}
}

// ResumeDocument holds the raw text extracted from an uploaded resume.
// It is immutable once created and lives only for the duration of one
// analysis request.
type ResumeDocument struct {
	RawText     string    `json:"raw_text"`
	Format      Format    `json:"format"`
	ExtractedAt time.Time `json:"extracted_at"`
}

// Section labels a semantic region of a resume.
type Section string

// The fixed set of resume sections produced by the parser
const (
	SectionSkills     Section = "skills"
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionSummary    Section = "summary"
	SectionOther      Section = "other"
)

// AllSections lists every section label in a stable order.
func AllSections() []Section {
	return []Section{SectionSkills, SectionExperience, SectionEducation, SectionSummary, SectionOther}
}

// ResumeSections maps each section label to the ordered lines assigned to it.
// Every label in the fixed set is always present; undetected sections hold an
// empty slice, never nil.
type ResumeSections struct {
	Lines map[Section][]string `json:"lines"`
}

// NewResumeSections returns sections with every label initialized to an empty slice.
func NewResumeSections() ResumeSections {
	lines := make(map[Section][]string, len(AllSections()))
	for _, s := range AllSections() {
		lines[s] = []string{}
	}
	return ResumeSections{Lines: lines}
}

// Append adds a line to the named section.
func (rs ResumeSections) Append(section Section, line string) {
	rs.Lines[section] = append(rs.Lines[section], line)
}

// Get returns the lines for a section, never nil.
func (rs ResumeSections) Get(section Section) []string {
	if lines, ok := rs.Lines[section]; ok {
		return lines
	}
	return []string{}
}

// Text joins a section's lines into a single newline-separated string.
func (rs ResumeSections) Text(section Section) string {
	return strings.Join(rs.Get(section), "\n")
}

// IsEmpty reports whether no section holds any non-blank line.
func (rs ResumeSections) IsEmpty() bool {
	for _, lines := range rs.Lines {
		for _, line := range lines {
			if strings.TrimSpace(line) != "" {
				return false
			}
		}
	}
	return true
}

// TotalLines returns the number of lines assigned across all sections.
func (rs ResumeSections) TotalLines() int {
	total := 0
	for _, lines := range rs.Lines {
		total += len(lines)
	}
	return total
}

// ContactInfo holds contact details pulled from the resume header.
// Fields are empty when not detected.
type ContactInfo struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}
