// Package assembler builds generation requests from parsed resume sections
// and ranked job matches, dispatches them to a generation backend, and
// returns typed analysis artifacts.
//
// The mapping from task kind to prompt template, interpolated resume
// sections, and interpolated posting fields is a static table, so request
// assembly is testable without ever calling the generator.
package assembler

import (
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/types"
)

// matchField names a JobPosting field that a template interpolates.
type matchField string

const (
	fieldTitle       matchField = "title"
	fieldCompany     matchField = "company"
	fieldDescription matchField = "description"
)

// templateSpec describes how one task kind assembles its generation request.
type templateSpec struct {
	// promptKey selects the template in prompts/tasks.json.
	promptKey string

	// sections lists the resume sections the template interpolates.
	sections []types.Section

	// fields lists the posting fields rendered per match.
	fields []matchField

	// matchLimit caps how many matches are interpolated.
	matchLimit int

	// tier selects the generation model capability level.
	tier llm.ModelTier
}

// taskTable is the static task-to-template mapping.
var taskTable = map[types.TaskKind]templateSpec{
	types.TaskSummary: {
		promptKey:  "summary",
		sections:   []types.Section{types.SectionSummary, types.SectionSkills, types.SectionExperience, types.SectionEducation},
		fields:     []matchField{fieldTitle, fieldCompany, fieldDescription},
		matchLimit: 3,
		tier:       llm.TierStandard,
	},
	types.TaskInterviewQuestions: {
		promptKey:  "interview_questions",
		sections:   []types.Section{types.SectionSkills, types.SectionExperience},
		fields:     []matchField{fieldTitle, fieldDescription},
		matchLimit: 3,
		tier:       llm.TierStandard,
	},
	types.TaskCoverLetter: {
		promptKey:  "cover_letter",
		sections:   []types.Section{types.SectionSummary, types.SectionSkills, types.SectionExperience},
		fields:     []matchField{fieldTitle, fieldCompany, fieldDescription},
		matchLimit: 1,
		tier:       llm.TierAdvanced,
	},
	types.TaskSkillGap: {
		promptKey:  "skill_gap",
		sections:   []types.Section{types.SectionSkills, types.SectionExperience},
		fields:     []matchField{fieldTitle, fieldCompany, fieldDescription},
		matchLimit: 3,
		tier:       llm.TierAdvanced,
	},
}

// TierFor returns the model capability tier a task generates with.
func TierFor(task types.TaskKind) llm.ModelTier {
	if spec, ok := taskTable[task]; ok {
		return spec.tier
	}
	return llm.TierStandard
}
