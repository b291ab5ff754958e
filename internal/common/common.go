package common

import (
	"fmt"
	"strings"
)

// TimeSpan is a start/end pair in seconds. End >= Start is expected but not
// enforced.
type TimeSpan struct {
	Start float64
	End   float64
}

// SourceBlock is one cue as read from the document. Timing holds the raw
// "<start> --> <end>" line, it is only parsed when the timeline is built.
type SourceBlock struct {
	ID     string
	Timing string
	Text   string
}

// CharToken is a single character with its interpolated timestamp.
type CharToken struct {
	Timestamp float64
	Char      rune
}

type Rule struct {
	Pattern     string
	Replacement string
}

type OutputBlock struct {
	ID    int
	Span  TimeSpan
	Lines []string
}

// ConvertFile tracks one input/output pair of a conversion run.
type ConvertFile struct {
	Input        string
	Output       string
	SourceBlocks int
	OutputBlocks int
	CharsBefore  int
	CharsAfter   int
}

// Text returns the characters of tokens as a string.
func Text(tokens []CharToken) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteRune(t.Char)
	}
	return sb.String()
}

type FormatError struct {
	Text string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed time %q: %v", e.Text, e.Err)
	}
	return fmt.Sprintf("malformed time %q", e.Text)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

type InvalidPatternError struct {
	Index   int
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid regex #%d '%s': %v", e.Index+1, e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

type ConfigError struct {
	Field string
	Value any
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %v (must be a positive integer)", e.Field, e.Value)
}
