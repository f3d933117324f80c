package types

// EmbeddingVector is a fixed-length vector representation of a piece of text.
// Two vectors are comparable only when their ModelVersion matches.
type EmbeddingVector struct {
	// Values is the ordered sequence of vector components.
	Values []float32 `json:"values"`

	// SourceID identifies the text this vector represents (e.g., a job
	// posting id or "resume"). Informational only.
	SourceID string `json:"source_id,omitempty"`

	// ModelVersion names the embedding model that produced the vector.
	ModelVersion string `json:"model_version"`
}

// Dimension returns the vector length.
func (v EmbeddingVector) Dimension() int {
	return len(v.Values)
}

// IsZero reports whether every component is exactly zero.
// Zero vectors are degenerate for cosine similarity.
func (v EmbeddingVector) IsZero() bool {
	for _, x := range v.Values {
		if x != 0 {
			return false
		}
	}
	return true
}

// Comparable reports whether two vectors can be meaningfully compared:
// same model version and same dimension.
func (v EmbeddingVector) Comparable(other EmbeddingVector) bool {
	return v.ModelVersion == other.ModelVersion && len(v.Values) == len(other.Values)
}
