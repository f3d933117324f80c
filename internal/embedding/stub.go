package embedding

import (
	"context"
	"crypto/md5" //nolint:gosec // not used for security, only deterministic test vectors
	"math"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Stub is a deterministic in-process Embedder for tests and offline runs.
// Vectors are derived from an MD5 digest of the text, so identical input
// always yields identical output and distinct inputs rarely collide.
type Stub struct {
	Dim   int
	Model string

	// Fixed, when set, overrides the hash derivation per input text.
	Fixed map[string][]float32

	// Calls counts Embed and EmbedBatch text conversions.
	Calls int

	// Err, when set, is returned from every call.
	Err error
}

var _ Embedder = (*Stub)(nil)

// NewStub creates a stub embedder with the given dimension.
func NewStub(dim int) *Stub {
	return &Stub{Dim: dim, Model: "stub-embedding-001"}
}

// Embed derives a deterministic unit-norm vector from the text.
func (s *Stub) Embed(_ context.Context, text string) (types.EmbeddingVector, error) {
	if s.Err != nil {
		return types.EmbeddingVector{}, s.Err
	}
	if err := validateInput(text, -1); err != nil {
		return types.EmbeddingVector{}, err
	}
	s.Calls++
	return types.EmbeddingVector{Values: s.derive(text), ModelVersion: s.Model}, nil
}

// EmbedBatch derives vectors for each text, preserving order.
func (s *Stub) EmbedBatch(ctx context.Context, texts []string) ([]types.EmbeddingVector, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	vectors := make([]types.EmbeddingVector, 0, len(texts))
	for i, text := range texts {
		if err := validateInput(text, i); err != nil {
			return nil, err
		}
		s.Calls++
		vectors = append(vectors, types.EmbeddingVector{Values: s.derive(text), ModelVersion: s.Model})
	}
	return vectors, nil
}

// ModelVersion names the stub model.
func (s *Stub) ModelVersion() string { return s.Model }

// Dimension is the configured vector length.
func (s *Stub) Dimension() int { return s.Dim }

func (s *Stub) derive(text string) []float32 {
	if fixed, ok := s.Fixed[text]; ok {
		return fixed
	}

	digest := md5.Sum([]byte(text)) //nolint:gosec
	values := make([]float32, s.Dim)
	var norm float64
	for i := range values {
		values[i] = float32(digest[i%len(digest)])/255.0 - 0.5
		norm += float64(values[i]) * float64(values[i])
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range values {
			values[i] *= scale
		}
	}
	return values
}
