package types

import (
	"fmt"
	"strings"
)

// JobPosting represents one job in the matching corpus.
// ID is unique corpus-wide; Embedding dimension matches the corpus constant.
// Postings are owned by the vector index and treated as read-only by the matcher.
type JobPosting struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Description string `json:"description" validate:"required"`

	// Optional metadata carried alongside the vector.
	Location        string `json:"location,omitempty"`
	Requirements    string `json:"requirements,omitempty"`
	Salary          string `json:"salary,omitempty"`
	EmploymentType  string `json:"employment_type,omitempty"`
	ExperienceLevel string `json:"experience_level,omitempty"`

	// Embedding is the precomputed vector for SearchText().
	Embedding EmbeddingVector `json:"embedding"`
}

// SearchText renders the posting as a single labeled document for embedding.
// Only non-empty fields contribute, joined with " | " so the embedding input
// is stable regardless of which metadata a source provides.
func (p JobPosting) SearchText() string {
	parts := make([]string, 0, 8)
	add := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", label, value))
		}
	}
	add("Job Title", p.Title)
	add("Company", p.Company)
	add("Location", p.Location)
	add("Description", p.Description)
	add("Requirements", p.Requirements)
	add("Salary", p.Salary)
	add("Employment Type", p.EmploymentType)
	add("Experience Level", p.ExperienceLevel)
	return strings.Join(parts, " | ")
}

// MatchResult pairs a posting with its similarity to a query vector.
type MatchResult struct {
	Posting JobPosting `json:"posting"`

	// Score is the cosine similarity in [-1, 1].
	Score float64 `json:"score"`

	// Rank is 1-based; ties in score are ranked by ascending posting id.
	Rank int `json:"rank"`
}

// MatchList is an ordered sequence of match results for one query.
type MatchList struct {
	Results []MatchResult `json:"results"`

	// Truncated is set when fewer results were returned than requested
	// because the corpus is smaller than k.
	Truncated bool `json:"truncated"`
}

// Len returns the number of results.
func (m MatchList) Len() int {
	return len(m.Results)
}

// Top returns at most n leading results.
func (m MatchList) Top(n int) []MatchResult {
	if n >= len(m.Results) {
		return m.Results
	}
	return m.Results[:n]
}
