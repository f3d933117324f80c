package types

import "strings"

// TaskKind selects which analysis artifact a generation request produces.
type TaskKind string

// The supported analysis tasks
const (
	TaskSummary            TaskKind = "summary"
	TaskInterviewQuestions TaskKind = "interview_questions"
	TaskCoverLetter        TaskKind = "cover_letter"
	TaskSkillGap           TaskKind = "skill_gap"
)

// AllTaskKinds lists every task kind in a stable order.
func AllTaskKinds() []TaskKind {
	return []TaskKind{TaskSummary, TaskInterviewQuestions, TaskCoverLetter, TaskSkillGap}
}

// ParseTaskKind maps a task label to a TaskKind.
// Returns false if the value does not name a supported task.
func ParseTaskKind(s string) (TaskKind, bool) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")) {
	case "summary":
		return TaskSummary, true
	case "interview_questions", "questions":
		return TaskInterviewQuestions, true
	case "cover_letter":
		return TaskCoverLetter, true
	case "skill_gap", "skill_gap_report", "gap":
		return TaskSkillGap, true
	default:
		return "", false
	}
}

// AnalysisContext is the fully assembled input for one generation request:
// parsed resume sections, the ranked matches to ground the generation, and
// the task selecting the prompt template. Never persisted.
type AnalysisContext struct {
	Sections ResumeSections `json:"sections"`
	Matches  []MatchResult  `json:"matches"`
	Task     TaskKind       `json:"task"`

	// Prompt is the exact request payload dispatched to the generator.
	Prompt string `json:"prompt"`
}

// AnalysisArtifact is the tagged union of generated analysis payloads.
// Exactly one payload field is non-nil, matching Task.
type AnalysisArtifact struct {
	Task TaskKind `json:"task"`

	Summary            *Summary            `json:"summary,omitempty"`
	InterviewQuestions *InterviewQuestions `json:"interview_questions,omitempty"`
	CoverLetter        *CoverLetter        `json:"cover_letter,omitempty"`
	SkillGapReport     *SkillGapReport     `json:"skill_gap_report,omitempty"`
}

// Summary is a generated overview of the resume against its top matches.
type Summary struct {
	Text string `json:"text"`
}

// InterviewQuestions holds generated interview preparation questions.
type InterviewQuestions struct {
	Questions []string `json:"questions"`

	// Raw preserves the full generator output when question splitting
	// could not find a list structure.
	Raw string `json:"raw,omitempty"`
}

// CoverLetter is a generated cover letter targeting the best match.
type CoverLetter struct {
	Text string `json:"text"`
}

// SkillGapReport describes skills demanded by matched jobs but absent from the resume.
type SkillGapReport struct {
	Text string `json:"text"`
}

// Text returns the primary text payload of the artifact regardless of task.
func (a AnalysisArtifact) Text() string {
	switch {
	case a.Summary != nil:
		return a.Summary.Text
	case a.InterviewQuestions != nil:
		if len(a.InterviewQuestions.Questions) > 0 {
			return strings.Join(a.InterviewQuestions.Questions, "\n")
		}
		return a.InterviewQuestions.Raw
	case a.CoverLetter != nil:
		return a.CoverLetter.Text
	case a.SkillGapReport != nil:
		return a.SkillGapReport.Text
	default:
		return ""
	}
}
