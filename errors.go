package llmjson

import "errors"

// Parse failures are wrapped around one of these sentinels with the rune
// position attached, so callers match them with errors.Is.
var (
	// ErrUnexpectedEnd is returned when the input holds no value at all,
	// only whitespace or comments.
	ErrUnexpectedEnd = errors.New("unexpected end of input")

	// ErrInvalidLiteral is returned when a dispatched literal matches no
	// text. The dispatcher only routes to literal productions on
	// characters that can start one, so seeing this error indicates a bug
	// rather than bad input.
	ErrInvalidLiteral = errors.New("invalid literal")

	// ErrRecursionLimit is returned when the input nests deeper than the
	// configured limit. See WithMaxDepth.
	ErrRecursionLimit = errors.New("maximum nesting depth exceeded")
)
