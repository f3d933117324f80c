package extract

import "fmt"

// UnsupportedFormatError indicates the requested format is not one of PDF/DOCX/TEXT.
// This is a fix-your-input error; retrying the same upload cannot succeed.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format: %q", e.Format)
}

// ExtractionError indicates no text could be recovered from the document,
// e.g. a corrupted file or an image-only PDF.
type ExtractionError struct {
	Format  string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed for %s document: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed for %s document: %s", e.Format, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
