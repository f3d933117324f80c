package assembler

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/types"
)

// stubGenerator records prompts and returns canned output.
type stubGenerator struct {
	output  string
	err     error
	prompts []string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.output, nil
}

func testSections() types.ResumeSections {
	s := types.NewResumeSections()
	s.Append(types.SectionSummary, "Seasoned backend engineer.")
	s.Append(types.SectionSkills, "Go, PostgreSQL, Kubernetes")
	s.Append(types.SectionExperience, "Acme Corp — built ingestion pipeline")
	s.Append(types.SectionEducation, "B.S. Computer Science")
	return s
}

func testMatches() []types.MatchResult {
	return []types.MatchResult{
		{Posting: types.JobPosting{ID: "a", Title: "Backend Engineer", Company: "Initech", Description: "Build Go services"}, Score: 0.91, Rank: 1},
		{Posting: types.JobPosting{ID: "b", Title: "Platform Engineer", Company: "Globex", Description: "Run Kubernetes"}, Score: 0.84, Rank: 2},
		{Posting: types.JobPosting{ID: "c", Title: "SRE", Company: "Umbrella", Description: "Keep things alive"}, Score: 0.77, Rank: 3},
		{Posting: types.JobPosting{ID: "d", Title: "Data Engineer", Company: "Hooli", Description: "Pipelines"}, Score: 0.60, Rank: 4},
	}
}

func TestBuildContext_AllTaskKinds(t *testing.T) {
	for _, task := range types.AllTaskKinds() {
		t.Run(string(task), func(t *testing.T) {
			analysisCtx, err := BuildContext(testSections(), testMatches(), task)
			require.NoError(t, err)

			assert.Equal(t, task, analysisCtx.Task)
			assert.NotEmpty(t, analysisCtx.Prompt)
			assert.NotContains(t, analysisCtx.Prompt, "{{.", "all placeholders must be interpolated")
		})
	}
}

func TestBuildContext_UnknownTask(t *testing.T) {
	_, err := BuildContext(testSections(), testMatches(), types.TaskKind("resume_rewrite"))
	assert.Error(t, err)
}

func TestBuildContext_InterpolatesSectionsAndMatches(t *testing.T) {
	analysisCtx, err := BuildContext(testSections(), testMatches(), types.TaskSummary)
	require.NoError(t, err)

	assert.Contains(t, analysisCtx.Prompt, "Go, PostgreSQL, Kubernetes")
	assert.Contains(t, analysisCtx.Prompt, "Acme Corp — built ingestion pipeline")
	assert.Contains(t, analysisCtx.Prompt, "Backend Engineer")
	assert.Contains(t, analysisCtx.Prompt, "Initech")
	assert.Contains(t, analysisCtx.Prompt, "match score 0.91")
}

func TestBuildContext_LimitsInterpolatedMatches(t *testing.T) {
	// Summary interpolates at most 3 matches; the fourth must not leak in.
	analysisCtx, err := BuildContext(testSections(), testMatches(), types.TaskSummary)
	require.NoError(t, err)

	assert.Contains(t, analysisCtx.Prompt, "SRE")
	assert.NotContains(t, analysisCtx.Prompt, "Data Engineer")
	assert.NotContains(t, analysisCtx.Prompt, "Hooli")
}

func TestBuildContext_CoverLetterUsesOnlyTopMatch(t *testing.T) {
	analysisCtx, err := BuildContext(testSections(), testMatches(), types.TaskCoverLetter)
	require.NoError(t, err)

	assert.Contains(t, analysisCtx.Prompt, "Backend Engineer")
	assert.NotContains(t, analysisCtx.Prompt, "Platform Engineer")
}

func TestBuildContext_InterviewQuestionsOmitCompany(t *testing.T) {
	// The interview template interpolates title and description only.
	analysisCtx, err := BuildContext(testSections(), testMatches(), types.TaskInterviewQuestions)
	require.NoError(t, err)

	assert.Contains(t, analysisCtx.Prompt, "Backend Engineer")
	assert.NotContains(t, analysisCtx.Prompt, "Initech")
}

func TestBuildContext_MissingSectionsGetPlaceholder(t *testing.T) {
	analysisCtx, err := BuildContext(types.NewResumeSections(), testMatches(), types.TaskSummary)
	require.NoError(t, err)

	assert.Contains(t, analysisCtx.Prompt, "(not provided)")
}

func TestBuildContext_NoMatches(t *testing.T) {
	analysisCtx, err := BuildContext(testSections(), nil, types.TaskSummary)
	require.NoError(t, err)

	assert.Contains(t, analysisCtx.Prompt, "No matching jobs were found.")
}

func TestBuildContext_TruncatesLongDescriptions(t *testing.T) {
	matches := []types.MatchResult{{
		Posting: types.JobPosting{
			ID:          "long",
			Title:       "Engineer",
			Company:     "Acme",
			Description: strings.Repeat("x", 1000),
		},
		Score: 0.5,
		Rank:  1,
	}}

	analysisCtx, err := BuildContext(testSections(), matches, types.TaskSummary)
	require.NoError(t, err)

	assert.Contains(t, analysisCtx.Prompt, strings.Repeat("x", 300)+"...")
	assert.NotContains(t, analysisCtx.Prompt, strings.Repeat("x", 301))
}

func TestBuildContext_TruncationKeepsRunesIntact(t *testing.T) {
	// A multi-byte rune straddling the cap must be cut whole, never split
	// into invalid UTF-8.
	matches := []types.MatchResult{{
		Posting: types.JobPosting{
			ID:          "accented",
			Title:       "Engineer",
			Company:     "Acme",
			Description: strings.Repeat("x", 299) + strings.Repeat("é", 10),
		},
		Score: 0.5,
		Rank:  1,
	}}

	analysisCtx, err := BuildContext(testSections(), matches, types.TaskSummary)
	require.NoError(t, err)

	assert.True(t, utf8.ValidString(analysisCtx.Prompt))
	assert.Contains(t, analysisCtx.Prompt, strings.Repeat("x", 299)+"é...")
}

func TestBuildContext_Deterministic(t *testing.T) {
	first, err := BuildContext(testSections(), testMatches(), types.TaskSkillGap)
	require.NoError(t, err)
	second, err := BuildContext(testSections(), testMatches(), types.TaskSkillGap)
	require.NoError(t, err)

	assert.Equal(t, first.Prompt, second.Prompt)
}

func TestGenerate_SummaryArtifact(t *testing.T) {
	gen := &stubGenerator{output: "## Resume Strengths\nStrong Go background."}
	analysisCtx, err := BuildContext(testSections(), testMatches(), types.TaskSummary)
	require.NoError(t, err)

	artifact, err := Generate(context.Background(), gen, analysisCtx)
	require.NoError(t, err)

	require.NotNil(t, artifact.Summary)
	assert.Equal(t, types.TaskSummary, artifact.Task)
	assert.Contains(t, artifact.Summary.Text, "Strong Go background")
	require.Len(t, gen.prompts, 1)
	assert.Equal(t, analysisCtx.Prompt, gen.prompts[0], "the dispatched prompt must be exactly the assembled payload")
}

func TestGenerate_ParsesQuestionList(t *testing.T) {
	gen := &stubGenerator{output: "1. Why Go?\n2) Describe a production incident.\n- How do you test?"}
	analysisCtx, err := BuildContext(testSections(), testMatches(), types.TaskInterviewQuestions)
	require.NoError(t, err)

	artifact, err := Generate(context.Background(), gen, analysisCtx)
	require.NoError(t, err)

	require.NotNil(t, artifact.InterviewQuestions)
	assert.Equal(t, []string{"Why Go?", "Describe a production incident.", "How do you test?"}, artifact.InterviewQuestions.Questions)
}

func TestGenerate_UnstructuredQuestionsKeptRaw(t *testing.T) {
	gen := &stubGenerator{output: "I would ask about their Go experience in a conversational way."}
	analysisCtx, err := BuildContext(testSections(), testMatches(), types.TaskInterviewQuestions)
	require.NoError(t, err)

	artifact, err := Generate(context.Background(), gen, analysisCtx)
	require.NoError(t, err)

	require.NotNil(t, artifact.InterviewQuestions)
	assert.Empty(t, artifact.InterviewQuestions.Questions)
	assert.Contains(t, artifact.InterviewQuestions.Raw, "conversational")
}

func TestGenerate_BackendFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream 503")}
	analysisCtx, err := BuildContext(testSections(), testMatches(), types.TaskCoverLetter)
	require.NoError(t, err)

	_, err = Generate(context.Background(), gen, analysisCtx)

	var genErr *GenerationServiceError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, string(types.TaskCoverLetter), genErr.Task)
}

func TestGenerate_EmptyOutput(t *testing.T) {
	gen := &stubGenerator{output: "   \n  "}
	analysisCtx, err := BuildContext(testSections(), testMatches(), types.TaskSkillGap)
	require.NoError(t, err)

	_, err = Generate(context.Background(), gen, analysisCtx)

	var genErr *GenerationServiceError
	require.ErrorAs(t, err, &genErr)
}
