package assembler

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Generator is the opaque text-to-text generation capability.
// Implementations should respect context cancellation and deadlines.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// LLMGenerator adapts an llm.Client to the Generator interface at a fixed tier.
type LLMGenerator struct {
	Client llm.Client
	Tier   llm.ModelTier
}

// Generate dispatches the prompt to the underlying client.
func (g *LLMGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.Client.GenerateContent(ctx, prompt, g.Tier)
}

// Generate dispatches an assembled context to the generator and wraps the
// response as a typed artifact. The generator is treated as opaque; any
// failure surfaces as GenerationServiceError.
func Generate(ctx context.Context, generator Generator, analysisCtx types.AnalysisContext) (types.AnalysisArtifact, error) {
	text, err := generator.Generate(ctx, analysisCtx.Prompt)
	if err != nil {
		return types.AnalysisArtifact{}, &GenerationServiceError{
			Task:    string(analysisCtx.Task),
			Message: "backend request failed",
			Cause:   err,
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return types.AnalysisArtifact{}, &GenerationServiceError{
			Task:    string(analysisCtx.Task),
			Message: "backend returned empty output",
		}
	}

	artifact := types.AnalysisArtifact{Task: analysisCtx.Task}
	switch analysisCtx.Task {
	case types.TaskSummary:
		artifact.Summary = &types.Summary{Text: text}
	case types.TaskInterviewQuestions:
		artifact.InterviewQuestions = parseQuestions(text)
	case types.TaskCoverLetter:
		artifact.CoverLetter = &types.CoverLetter{Text: text}
	case types.TaskSkillGap:
		artifact.SkillGapReport = &types.SkillGapReport{Text: text}
	default:
		return types.AnalysisArtifact{}, &GenerationServiceError{
			Task:    string(analysisCtx.Task),
			Message: "context carries unknown task kind",
		}
	}

	return artifact, nil
}

// listItemPrefix strips "1.", "2)", "-", "*" style list markers.
var listItemPrefix = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*•])\s*`)

// parseQuestions splits generator output into individual questions.
// If the output does not look like a list, the raw text is preserved instead.
func parseQuestions(text string) *types.InterviewQuestions {
	var questions []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		stripped := listItemPrefix.ReplaceAllString(line, "")
		if stripped == line {
			// Not a list item; likely preamble or prose.
			continue
		}
		if stripped != "" {
			questions = append(questions, stripped)
		}
	}

	if len(questions) < 2 {
		return &types.InterviewQuestions{Raw: text}
	}
	return &types.InterviewQuestions{Questions: questions}
}
