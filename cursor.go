package llmjson

import "unicode"

// cursor is a forward-only window over the input runes. One cursor is
// shared by all parser components of a single call; its position never
// moves backward except for the bounded rollbacks of literal parsing.
type cursor struct {
	input []rune
	pos   int
}

func newCursor(input string) *cursor {
	return &cursor{input: []rune(input)}
}

func (c *cursor) peek() (rune, bool) {
	return c.peekAt(0)
}

// peekAt returns the rune at the given offset from the current position
// without consuming input.
func (c *cursor) peekAt(offset int) (rune, bool) {
	idx := c.pos + offset
	if idx < 0 || idx >= len(c.input) {
		return 0, false
	}
	return c.input[idx], true
}

func (c *cursor) advance() { c.pos++ }

func (c *cursor) eof() bool { return c.pos >= len(c.input) }

// slice returns the input text between start and end, clamped to bounds.
func (c *cursor) slice(start, end int) string {
	start = max(start, 0)
	end = min(end, len(c.input))
	if start >= end {
		return ""
	}
	return string(c.input[start:end])
}

// window returns the text around the current position, for repair-log
// context.
func (c *cursor) window(radius int) string {
	return c.slice(c.pos-radius, c.pos+radius)
}

func (c *cursor) skipWhitespace() {
	for c.pos < len(c.input) && unicode.IsSpace(c.input[c.pos]) {
		c.pos++
	}
}

// skipBlockComment consumes a /* */ comment. An unterminated comment
// consumes the rest of the input.
func (c *cursor) skipBlockComment() {
	c.pos += 2
	for c.pos < len(c.input) {
		if c.input[c.pos] == '*' {
			if next, ok := c.peekAt(1); ok && next == '/' {
				c.pos += 2
				return
			}
		}
		c.pos++
	}
}
