// Package sections segments extracted resume text into labeled semantic
// sections using an ordered, table-driven set of heading heuristics.
// Segmentation is total (every line lands in exactly one section) and
// deterministic (same input, same output).
package sections

import (
	"strings"

	"github.com/jonathan/resume-matcher/internal/extract"
	"github.com/jonathan/resume-matcher/internal/types"
)

// maxHeadingWords is the longest token count a line may have and still be
// considered a section heading. Real headings are short ("Work Experience",
// "Technical Skills"); prose lines that merely mention a keyword are not.
const maxHeadingWords = 4

// rule pairs a section label with the heading anchors that select it.
// Rules are evaluated in order; the first matching anchor wins.
type rule struct {
	section types.Section
	anchors []string
}

// headingRules is the ordered heuristic table. Multi-word anchors are listed
// alongside their single-word forms; matching is token-based so "experienced"
// never matches the "experience" anchor.
var headingRules = []rule{
	{types.SectionSkills, []string{"technical skills", "core competencies", "skills", "technologies", "tech stack"}},
	{types.SectionExperience, []string{"work experience", "professional experience", "employment history", "work history", "experience", "employment"}},
	{types.SectionEducation, []string{"education", "academic background", "academics", "certifications"}},
	{types.SectionSummary, []string{"professional summary", "career objective", "summary", "objective", "profile", "about me", "about"}},
}

// Parse extracts text from raw document bytes and segments it into sections.
// This is the full parser contract: it fails with extract.UnsupportedFormatError
// or extract.ExtractionError, never with a partial result.
func Parse(raw []byte, format types.Format) (types.ResumeSections, error) {
	text, err := extract.Text(raw, format)
	if err != nil {
		return types.ResumeSections{}, err
	}
	return Split(text), nil
}

// Split segments normalized resume text into labeled sections.
// Text before the first recognized heading is assigned to "other".
// If no heading matches anywhere, the entire text is placed under "summary"
// so downstream embedding always has input to work with.
func Split(text string) types.ResumeSections {
	lines := strings.Split(Normalize(text), "\n")

	result := types.NewResumeSections()
	current := types.SectionOther
	anyHeading := false

	for _, line := range lines {
		if section, ok := matchHeading(line); ok {
			current = section
			anyHeading = true
		}
		result.Append(current, line)
	}

	if !anyHeading {
		fallback := types.NewResumeSections()
		for _, line := range lines {
			fallback.Append(types.SectionSummary, line)
		}
		return fallback
	}

	return result
}

// matchHeading reports whether a line is a section heading and which section
// it opens. A heading is a short line whose tokens contain one of the anchor
// phrases as a consecutive run.
func matchHeading(line string) (types.Section, bool) {
	tokens := headingTokens(line)
	if len(tokens) == 0 || len(tokens) > maxHeadingWords {
		return "", false
	}

	for _, r := range headingRules {
		for _, anchor := range r.anchors {
			if containsPhrase(tokens, strings.Fields(anchor)) {
				return r.section, true
			}
		}
	}
	return "", false
}

// headingTokens normalizes a candidate heading line into lowercase tokens,
// stripping list decoration and trailing punctuation.
func headingTokens(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "•*-–—#>· \t")
	line = strings.TrimRight(line, ":;. \t")
	line = strings.ToLower(line)
	return strings.Fields(line)
}

// containsPhrase reports whether phrase occurs as a consecutive token run.
func containsPhrase(tokens, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(tokens) {
		return false
	}
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		match := true
		for j, word := range phrase {
			if tokens[i+j] != word {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// Normalize cleans resume text while preserving line structure: line endings
// become LF, trailing whitespace is trimmed per line, and runs of more than
// two blank lines collapse.
func Normalize(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, strings.TrimRight(line, " \t"))
	}

	result := strings.Join(cleaned, "\n")
	for strings.Contains(result, "\n\n\n") {
		result = strings.ReplaceAll(result, "\n\n\n", "\n\n")
	}

	return strings.TrimSpace(result)
}
