package vectorindex

import "math"

// Cosine returns the cosine similarity of two equal-length vectors, in [-1, 1].
// If either vector has zero norm the similarity is defined as 0; a degenerate
// vector matches nothing rather than causing a division error.
func Cosine(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))

	// Clamp float rounding drift back into range.
	if sim > 1 {
		return 1
	}
	if sim < -1 {
		return -1
	}
	return sim
}
