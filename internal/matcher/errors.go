package matcher

// NoMatchableContentError indicates the resume had no usable text in any of
// the skills, experience, or summary sections, so there is nothing to embed.
type NoMatchableContentError struct{}

func (e *NoMatchableContentError) Error() string {
	return "resume has no matchable content: skills, experience, and summary sections are all empty"
}
