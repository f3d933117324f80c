// Package matcher produces a ranked list of job matches for a parsed resume
// by embedding its most informative sections and querying the vector index.
package matcher

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/vectorindex"
)

// Matcher orchestrates embedding and index lookup. It holds no per-request
// state and is safe for concurrent use.
type Matcher struct {
	embedder embedding.Embedder
	index    vectorindex.Index
}

// New creates a Matcher over the given embedder and index.
// The embedder should be configured for query-side embeddings.
func New(embedder embedding.Embedder, index vectorindex.Index) *Matcher {
	return &Matcher{embedder: embedder, index: index}
}

// Match returns the top-k job matches for the resume.
// Skills and experience form the representative text, falling back to the
// summary section when both are empty. k is clamped to the corpus size;
// a clamped query sets Truncated on the result instead of failing.
func (m *Matcher) Match(ctx context.Context, sections types.ResumeSections, k int) (types.MatchList, error) {
	if k < 1 {
		return types.MatchList{}, fmt.Errorf("k must be at least 1, got %d", k)
	}

	text := RepresentativeText(sections)
	if text == "" {
		return types.MatchList{}, &NoMatchableContentError{}
	}

	vector, err := m.embedder.Embed(ctx, text)
	if err != nil {
		return types.MatchList{}, fmt.Errorf("failed to embed resume text: %w", err)
	}

	size := m.index.Size()
	if size == 0 {
		return types.MatchList{Results: []types.MatchResult{}, Truncated: true}, nil
	}

	effectiveK := min(k, size)
	results, err := m.index.Query(vector, effectiveK)
	if err != nil {
		return types.MatchList{}, fmt.Errorf("index query failed: %w", err)
	}

	return types.MatchList{
		Results:   results,
		Truncated: k > len(results),
	}, nil
}

// RepresentativeText assembles the text that stands in for the whole resume
// during matching: skills first, then experience, then the summary fallback.
func RepresentativeText(sections types.ResumeSections) string {
	parts := make([]string, 0, 2)
	if text := strings.TrimSpace(sections.Text(types.SectionSkills)); text != "" {
		parts = append(parts, text)
	}
	if text := strings.TrimSpace(sections.Text(types.SectionExperience)); text != "" {
		parts = append(parts, text)
	}
	if len(parts) == 0 {
		if text := strings.TrimSpace(sections.Text(types.SectionSummary)); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}
