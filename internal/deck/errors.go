package deck

import "fmt"

// InputFormatError indicates a deck or trivia file that could not be read
// or parsed, or whose top-level value is not an array.
type InputFormatError struct {
	Reason string
	Err    error
}

func (e *InputFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid file: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid file: %s", e.Reason)
}

func (e *InputFormatError) Unwrap() error { return e.Err }

// NoValidItemsError indicates a well-formed array that produced no usable
// entries after normalization.
type NoValidItemsError struct {
	// Kind names what was expected, e.g. "questions" or "trivia facts".
	Kind string

	// Total is the number of raw entries that were examined.
	Total int
}

func (e *NoValidItemsError) Error() string {
	return fmt.Sprintf("no valid %s found", e.Kind)
}
