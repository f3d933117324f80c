package corpus

import "fmt"

// SchemaError indicates a corpus file failed JSON Schema validation before
// any record was processed.
type SchemaError struct {
	Path     string
	Problems []string
}

func (e *SchemaError) Error() string {
	if len(e.Problems) == 0 {
		return fmt.Sprintf("corpus file %s failed schema validation", e.Path)
	}
	return fmt.Sprintf("corpus file %s failed schema validation: %s", e.Path, e.Problems[0])
}

// RecordError indicates a single record is invalid. Index is the record's
// zero-based position in the source file.
type RecordError struct {
	Index   int
	ID      string
	Message string
	Cause   error
}

func (e *RecordError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("corpus record %d (%s): %s", e.Index, e.ID, e.Message)
	}
	return fmt.Sprintf("corpus record %d: %s", e.Index, e.Message)
}

func (e *RecordError) Unwrap() error {
	return e.Cause
}
