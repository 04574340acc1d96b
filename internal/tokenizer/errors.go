package tokenizer

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrEmptyVocabulary = errors.New("vocabulary has no symbols beyond the reserved specials")
	ErrNoMerges        = errors.New("merge file contains no rules")
)

// ParseError provides detailed information about a malformed line in a
// vocabulary or merge file.
type ParseError struct {
	Path   string // File the line came from, when known
	Line   int    // 1-based line number
	Text   string // Offending line content
	Reason string // What was expected
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s:%d: %q: %s", e.Path, e.Line, e.Text, e.Reason)
	}
	return fmt.Sprintf("line %d: %q: %s", e.Line, e.Text, e.Reason)
}
