package assembler

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-matcher/internal/prompts"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// maxDescriptionChars bounds how much of a posting description is
	// interpolated into a prompt.
	maxDescriptionChars = 300

	// missingSectionText stands in for resume sections the parser did not detect.
	missingSectionText = "(not provided)"

	// noMatchesText stands in for the match block when the corpus returned nothing.
	noMatchesText = "No matching jobs were found."
)

// sectionPlaceholders maps resume sections to their template placeholder keys.
var sectionPlaceholders = map[types.Section]string{
	types.SectionSummary:    "Summary",
	types.SectionSkills:     "Skills",
	types.SectionExperience: "Experience",
	types.SectionEducation:  "Education",
}

// BuildContext assembles the exact generation request for a task.
// The result carries the final prompt; nothing downstream mutates it.
func BuildContext(sections types.ResumeSections, matches []types.MatchResult, task types.TaskKind) (types.AnalysisContext, error) {
	spec, ok := taskTable[task]
	if !ok {
		return types.AnalysisContext{}, fmt.Errorf("unknown task kind %q", task)
	}

	template := prompts.MustGet("tasks.json", spec.promptKey)

	data := make(map[string]string, len(spec.sections)+1)
	for _, section := range spec.sections {
		text := strings.TrimSpace(sections.Text(section))
		if text == "" {
			text = missingSectionText
		}
		data[sectionPlaceholders[section]] = text
	}
	data["JobMatches"] = renderMatches(matches, spec.fields, spec.matchLimit)

	return types.AnalysisContext{
		Sections: sections,
		Matches:  matches,
		Task:     task,
		Prompt:   prompts.Format(template, data),
	}, nil
}

// renderMatches formats the top matches as a labeled block, interpolating
// only the fields the task's template declares.
func renderMatches(matches []types.MatchResult, fields []matchField, limit int) string {
	if len(matches) == 0 {
		return noMatchesText
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}

	fieldSet := make(map[matchField]bool, len(fields))
	for _, f := range fields {
		fieldSet[f] = true
	}

	var sb strings.Builder
	for i, match := range matches {
		if i > 0 {
			sb.WriteString("\n\n")
		}

		heading := fmt.Sprintf("Job %d", i+1)
		if fieldSet[fieldTitle] {
			heading += ": " + match.Posting.Title
		}
		if fieldSet[fieldCompany] {
			heading += " at " + match.Posting.Company
		}
		sb.WriteString(heading)
		sb.WriteString(fmt.Sprintf(" (match score %.2f)", match.Score))

		if fieldSet[fieldDescription] {
			sb.WriteString("\nDescription: ")
			sb.WriteString(truncate(match.Posting.Description, maxDescriptionChars))
		}
	}
	return sb.String()
}

// truncate caps s at limit runes, never splitting a multi-byte character.
func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
