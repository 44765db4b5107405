package llmjson

import (
	"fmt"
	"unicode"
	"unicode/utf16"
)

func isQuote(ch rune) bool {
	return isDoubleQuote(ch) || isSingleQuote(ch)
}

func isDoubleQuote(ch rune) bool {
	switch ch {
	case '"', '“', '”', '„', '‟':
		return true
	}
	return false
}

func isSingleQuote(ch rune) bool {
	switch ch {
	case '\'', '‘', '’', '`', '´':
		return true
	}
	return false
}

func sameQuoteClass(a, b rune) bool {
	if isDoubleQuote(a) {
		return isDoubleQuote(b)
	}
	if isSingleQuote(a) {
		return isSingleQuote(b)
	}
	return false
}

func trimTrailingSpace(values []rune) []rune {
	for len(values) > 0 && unicode.IsSpace(values[len(values)-1]) {
		values = values[:len(values)-1]
	}
	return values
}

// parseStringValue parses a quoted string and folds any +-joined string
// pieces that follow it into a single value.
func (p *parser) parseStringValue(open rune) string {
	value := p.parseQuoted(open)
	for {
		save := p.cur.pos
		p.skipInsignificant()
		if ch, ok := p.cur.peek(); !ok || ch != '+' {
			p.cur.pos = save
			return value
		}
		p.cur.advance()
		p.skipInsignificant()
		next, ok := p.cur.peek()
		if !ok || isStructuralChar(next) {
			p.log("dropped dangling + after string")
			return value
		}
		p.log("concatenated adjacent strings")
		if isQuote(next) {
			value += p.parseQuoted(next)
			continue
		}
		return value + p.parseUnquoted()
	}
}

// parseQuoted repairs a quoted string. Escape sequences are decoded,
// literal newlines are kept as content, and a missing closing quote is
// recovered by the termination rules below.
func (p *parser) parseQuoted(open rune) string {
	if open != '"' {
		p.log("replaced non-standard opening quote")
	}
	p.cur.advance()
	inKey := false
	if ctx, ok := p.context.current(); ok && ctx == contextObjectKey {
		inKey = true
	}

	doubled := false
	if next, ok := p.cur.peek(); ok && sameQuoteClass(next, open) {
		if after, ok := p.cur.peekAt(1); ok && isWordRune(after) {
			p.log("collapsed doubled quotes")
			p.cur.advance()
			doubled = true
		}
	}

	var content []rune
	for {
		ch, ok := p.cur.peek()
		if !ok {
			p.log("closed unterminated string at end of input")
			return string(trimTrailingSpace(content))
		}
		switch {
		case ch == '\\':
			p.decodeEscape(&content)
		case sameQuoteClass(ch, open):
			switch p.classifyMatchingQuote(open) {
			case quoteCloses:
				p.cur.advance()
				if doubled {
					if next, ok := p.cur.peek(); ok && sameQuoteClass(next, open) {
						p.cur.advance()
					}
				}
				return string(content)
			case quoteBeginsNextKey:
				p.log("closed string before the next key")
				return string(trimTrailingSpace(content))
			default:
				p.log("kept quote as literal content")
				content = append(content, ch)
				p.cur.advance()
			}
		case isQuote(ch):
			if p.mismatchedQuoteCloses() {
				p.log("closed string at mismatched quote")
				p.cur.advance()
				return string(content)
			}
			content = append(content, ch)
			p.cur.advance()
		case ch == ',' || ch == '}' || ch == ']' || (ch == ':' && inKey):
			if p.delimiterEndsString(open) {
				p.log("closed unterminated string before structural character")
				return string(trimTrailingSpace(content))
			}
			content = append(content, ch)
			p.cur.advance()
		default:
			content = append(content, ch)
			p.cur.advance()
		}
	}
}

type quoteAction int

const (
	quoteContent quoteAction = iota
	quoteCloses
	quoteBeginsNextKey
)

// classifyMatchingQuote decides whether the quote at the cursor, which
// matches the opening class, ends the string. It closes when what follows
// could not continue this string: structure, another string, a number, or
// the end of the input. A quote followed by a word is literal content,
// unless that word is itself quoted and followed by a colon, which marks
// the quote at the cursor as the opener of the next key.
func (p *parser) classifyMatchingQuote(open rune) quoteAction {
	next, ok := p.nextSignificantAfter(1)
	if !ok {
		return quoteCloses
	}
	switch next {
	case ',', ':', '}', ']', '{', '[', '+':
		return quoteCloses
	}
	if isQuote(next) || isDigit(next) {
		return quoteCloses
	}
	if unicode.IsLetter(next) {
		for i := 1; ; i++ {
			ch, ok := p.cur.peekAt(i)
			if !ok {
				// no continuation quote ahead, so this one must close
				return quoteCloses
			}
			if sameQuoteClass(ch, open) {
				if after, ok := p.nextSignificantAfter(i + 1); ok && after == ':' {
					return quoteBeginsNextKey
				}
				return quoteContent
			}
		}
	}
	return quoteContent
}

// mismatchedQuoteCloses reports whether a quote of the other class should
// be read as an incorrectly escaped closing quote: only when structure
// immediately follows it.
func (p *parser) mismatchedQuoteCloses() bool {
	next, ok := p.nextSignificantAfter(1)
	if !ok {
		return true
	}
	switch next {
	case ',', ':', '}', ']':
		return true
	}
	return false
}

// delimiterEndsString decides whether a structural character inside an
// unclosed string terminates it. The delimiter is content only when a
// closing quote lies ahead that is itself followed by structure, meaning
// the string genuinely closes later.
func (p *parser) delimiterEndsString(open rune) bool {
	for i := 1; ; i++ {
		ch, ok := p.cur.peekAt(i)
		if !ok {
			return true
		}
		if sameQuoteClass(ch, open) {
			after, ok := p.nextSignificantAfter(i + 1)
			if !ok {
				return false
			}
			switch after {
			case ',', ':', '}', ']', '+':
				return false
			}
			return true
		}
	}
}

// nextSignificantAfter returns the first non-whitespace rune at or beyond
// the given offset.
func (p *parser) nextSignificantAfter(offset int) (rune, bool) {
	for i := offset; ; i++ {
		ch, ok := p.cur.peekAt(i)
		if !ok {
			return 0, false
		}
		if !unicode.IsSpace(ch) {
			return ch, true
		}
	}
}

// parseUnquoted scans a bareword: everything up to the next structural
// delimiter, newline, or end of input. Quote characters inside are kept
// as content and escape sequences receive no decoding.
func (p *parser) parseUnquoted() string {
	if ch, ok := p.cur.peek(); ok && ch != '\n' && !isStructuralChar(ch) {
		p.log("quoted unquoted text")
	}
	var content []rune
	for {
		ch, ok := p.cur.peek()
		if !ok || ch == '\n' || isStructuralChar(ch) {
			break
		}
		content = append(content, ch)
		p.cur.advance()
	}
	return string(trimTrailingSpace(content))
}

// decodeEscape decodes the escape sequence at the cursor into content.
// Unknown escapes keep their character and drop the backslash.
func (p *parser) decodeEscape(content *[]rune) {
	p.cur.advance()
	ch, ok := p.cur.peek()
	if !ok {
		p.log("dropped trailing backslash at end of input")
		return
	}
	switch ch {
	case '"', '\\', '/':
		*content = append(*content, ch)
		p.cur.advance()
	case 'b':
		*content = append(*content, '\b')
		p.cur.advance()
	case 'f':
		*content = append(*content, '\f')
		p.cur.advance()
	case 'n':
		*content = append(*content, '\n')
		p.cur.advance()
	case 'r':
		*content = append(*content, '\r')
		p.cur.advance()
	case 't':
		*content = append(*content, '\t')
		p.cur.advance()
	case 'u':
		p.cur.advance()
		r, ok := p.readHex4()
		if !ok {
			p.log("kept invalid unicode escape as text")
			*content = append(*content, 'u')
			return
		}
		if utf16.IsSurrogate(r) {
			if low, ok := p.readLowSurrogate(); ok {
				r = utf16.DecodeRune(r, low)
			}
		}
		*content = append(*content, r)
	default:
		p.log(fmt.Sprintf("dropped invalid escape \\%c", ch))
		*content = append(*content, ch)
		p.cur.advance()
	}
}

// readHex4 consumes four hex digits and returns their code unit.
func (p *parser) readHex4() (rune, bool) {
	var value rune
	for i := range 4 {
		ch, ok := p.cur.peekAt(i)
		if !ok {
			return 0, false
		}
		digit := hexDigit(ch)
		if digit < 0 {
			return 0, false
		}
		value = value<<4 | rune(digit)
	}
	p.cur.pos += 4
	return value, true
}

// readLowSurrogate consumes a \uXXXX low surrogate if one follows.
func (p *parser) readLowSurrogate() (rune, bool) {
	if ch, ok := p.cur.peek(); !ok || ch != '\\' {
		return 0, false
	}
	if ch, ok := p.cur.peekAt(1); !ok || ch != 'u' {
		return 0, false
	}
	var value rune
	for i := range 4 {
		ch, ok := p.cur.peekAt(2 + i)
		if !ok {
			return 0, false
		}
		digit := hexDigit(ch)
		if digit < 0 {
			return 0, false
		}
		value = value<<4 | rune(digit)
	}
	if value < 0xDC00 || value > 0xDFFF {
		return 0, false
	}
	p.cur.pos += 6
	return value, true
}

func hexDigit(ch rune) int {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0')
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 10
	case ch >= 'A' && ch <= 'F':
		return int(ch-'A') + 10
	}
	return -1
}
