package vectorindex

import "fmt"

// DimensionMismatchError indicates a vector whose dimension or model version
// differs from the corpus-wide constants. Corpus and queries must share one
// embedding model; this is a fatal configuration error, not a transient one.
type DimensionMismatchError struct {
	WantDimension int
	GotDimension  int
	WantModel     string
	GotModel      string
}

func (e *DimensionMismatchError) Error() string {
	if e.WantModel != e.GotModel {
		return fmt.Sprintf("embedding model mismatch: index uses %q, vector was produced by %q", e.WantModel, e.GotModel)
	}
	return fmt.Sprintf("embedding dimension mismatch: index uses %d, vector has %d", e.WantDimension, e.GotDimension)
}
