package vectorindex

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Memory is a brute-force in-memory index. Linear scan is acceptable for
// corpora under roughly ten thousand postings; the Index contract stays the
// same if this is ever replaced with a real ANN structure.
//
// Postings are stored as immutable values behind a sync.Map, which gives the
// required concurrency guarantees for free: upserts to different ids never
// block each other, each upsert is atomic per posting, and a concurrent query
// observes the old or the new posting, never a torn one.
type Memory struct {
	dimension    int
	modelVersion string
	postings     sync.Map // id -> *types.JobPosting, never mutated in place
}

var _ Index = (*Memory)(nil)

// NewMemory creates an empty index bound to the corpus-wide embedding
// dimension and model version.
func NewMemory(dimension int, modelVersion string) *Memory {
	return &Memory{
		dimension:    dimension,
		modelVersion: modelVersion,
	}
}

// Upsert inserts or replaces a posting by id.
func (m *Memory) Upsert(posting types.JobPosting) error {
	if err := m.checkVector(posting.Embedding); err != nil {
		return err
	}
	stored := posting // copy; stored value is never mutated after this point
	m.postings.Store(posting.ID, &stored)
	return nil
}

// Query scans the corpus and returns the top k matches.
func (m *Memory) Query(vector types.EmbeddingVector, k int) ([]types.MatchResult, error) {
	if k < 1 {
		return nil, fmt.Errorf("k must be at least 1, got %d", k)
	}
	if err := m.checkVector(vector); err != nil {
		return nil, err
	}

	results := make([]types.MatchResult, 0, k)
	m.postings.Range(func(_, value any) bool {
		posting := value.(*types.JobPosting)
		results = append(results, types.MatchResult{
			Posting: *posting,
			Score:   Cosine(vector.Values, posting.Embedding.Values),
		})
		return true
	})

	// Descending score; equal scores ordered by ascending id for
	// deterministic output.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Posting.ID < results[j].Posting.ID
	})

	if len(results) > k {
		results = results[:k]
	}
	for i := range results {
		results[i].Rank = i + 1
	}

	return results, nil
}

// Size returns the number of stored postings.
func (m *Memory) Size() int {
	count := 0
	m.postings.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// DeleteAll removes every posting.
func (m *Memory) DeleteAll() {
	m.postings.Range(func(key, _ any) bool {
		m.postings.Delete(key)
		return true
	})
}

// Stats reports the index size and corpus constants.
func (m *Memory) Stats() Stats {
	return Stats{
		Count:        m.Size(),
		Dimension:    m.dimension,
		ModelVersion: m.modelVersion,
	}
}

func (m *Memory) checkVector(vector types.EmbeddingVector) error {
	if vector.ModelVersion != m.modelVersion || vector.Dimension() != m.dimension {
		return &DimensionMismatchError{
			WantDimension: m.dimension,
			GotDimension:  vector.Dimension(),
			WantModel:     m.modelVersion,
			GotModel:      vector.ModelVersion,
		}
	}
	return nil
}
