package llmjson

import (
	"fmt"
	"strings"
	"unicode"
)

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isWordRune(ch rune) bool {
	return unicode.IsLetter(ch) || isDigit(ch) || ch == '_'
}

// peekWord returns the run of letters at the cursor, without consuming
// it, together with its length in runes.
func (p *parser) peekWord() (string, int) {
	var word []rune
	for i := 0; ; i++ {
		ch, ok := p.cur.peekAt(i)
		if !ok || !unicode.IsLetter(ch) {
			break
		}
		word = append(word, ch)
	}
	return string(word), len(word)
}

// keywordValue maps a lower-cased word to the literal it stands for.
func keywordValue(word string) (any, bool) {
	switch word {
	case "true":
		return true, true
	case "false":
		return false, true
	case "null", "none", "nil", "undefined":
		return nil, true
	case "nan":
		return Number("NaN"), true
	case "infinity":
		return Number("Infinity"), true
	}
	return nil, false
}

// parseLiteral handles keyword literals in any casing, including the
// null aliases None, nil and undefined, and falls back to an unquoted
// string when the word is anything else.
func (p *parser) parseLiteral() (any, error) {
	word, size := p.peekWord()
	if size == 0 {
		return nil, fmt.Errorf("%w at position %d", ErrInvalidLiteral, p.cur.pos)
	}
	if next, ok := p.cur.peekAt(size); !ok || !isWordRune(next) {
		if value, known := keywordValue(strings.ToLower(word)); known {
			switch word {
			case "true", "false", "null":
			default:
				p.log(fmt.Sprintf("interpreted non-standard literal %s", word))
			}
			p.cur.pos += size
			return value, nil
		}
	}
	return p.parseUnquoted(), nil
}

// parseNumber parses a number, completing truncated tails such as "1."
// and "1e" and normalizing non-standard forms. A token that stops looking
// like a number is reparsed as an unquoted string. Repairs are collected
// in pending and logged only once the token is confirmed to be a number,
// so a rollback leaves no trace.
func (p *parser) parseNumber() any {
	start := p.cur.pos
	var raw []rune
	var pending []string
	negative := false
	if ch, ok := p.cur.peek(); ok {
		switch ch {
		case '-':
			negative = true
			raw = append(raw, '-')
			p.cur.advance()
		case '+':
			pending = append(pending, "dropped leading + before number")
			p.cur.advance()
		}
	}
	if ch, ok := p.cur.peek(); ok && unicode.IsLetter(ch) {
		if value, ok := p.parseSignedSentinel(negative, pending); ok {
			return value
		}
		p.cur.pos = start
		return p.parseUnquoted()
	}

	digits := func() int {
		count := 0
		for {
			ch, ok := p.cur.peek()
			if !ok || !isDigit(ch) {
				break
			}
			raw = append(raw, ch)
			p.cur.advance()
			count++
		}
		return count
	}

	if digits() == 0 {
		// a lone sign is text, not a number
		p.cur.pos = start
		return p.parseUnquoted()
	}
	if ch, ok := p.cur.peek(); ok && ch == '.' {
		raw = append(raw, ch)
		p.cur.advance()
		if digits() == 0 {
			pending = append(pending, "completed truncated decimal with 0")
			raw = append(raw, '0')
		}
	}
	if ch, ok := p.cur.peek(); ok && (ch == 'e' || ch == 'E') {
		raw = append(raw, ch)
		p.cur.advance()
		if ch, ok := p.cur.peek(); ok && (ch == '+' || ch == '-') {
			raw = append(raw, ch)
			p.cur.advance()
		}
		if digits() == 0 {
			pending = append(pending, "completed truncated exponent with 0")
			raw = append(raw, '0')
		}
	}
	if ch, ok := p.cur.peek(); ok && unicode.IsLetter(ch) {
		p.cur.pos = start
		return p.parseUnquoted()
	}
	for _, message := range pending {
		p.log(message)
	}

	lexeme := string(raw)
	if !isJSONNumber(lexeme) {
		normalized := normalizeNumber(lexeme)
		p.log(fmt.Sprintf("rewrote number %s as %s", lexeme, normalized))
		lexeme = normalized
	}
	return Number(lexeme)
}

// parseSignedSentinel recognizes NaN and Infinity after an explicit sign,
// flushing any pending repairs only when the word matches.
func (p *parser) parseSignedSentinel(negative bool, pending []string) (Number, bool) {
	word, size := p.peekWord()
	if next, ok := p.cur.peekAt(size); ok && isWordRune(next) {
		return "", false
	}
	var value Number
	switch strings.ToLower(word) {
	case "nan":
		value = "NaN"
	case "infinity":
		value = "Infinity"
		if negative {
			value = "-Infinity"
		}
	default:
		return "", false
	}
	for _, message := range pending {
		p.log(message)
	}
	p.log(fmt.Sprintf("interpreted non-standard literal %s", word))
	p.cur.pos += size
	return value, true
}

// normalizeNumber trims excess leading zeros from the integer part so
// the lexeme conforms to the JSON number grammar.
func normalizeNumber(lexeme string) string {
	rest := lexeme
	sign := ""
	if strings.HasPrefix(rest, "-") {
		sign = "-"
		rest = rest[1:]
	}
	intEnd := len(rest)
	for i, ch := range rest {
		if ch == '.' || ch == 'e' || ch == 'E' {
			intEnd = i
			break
		}
	}
	intPart := strings.TrimLeft(rest[:intEnd], "0")
	if intPart == "" {
		intPart = "0"
	}
	return sign + intPart + rest[intEnd:]
}

// isJSONNumber reports whether s matches the JSON number grammar.
func isJSONNumber(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	switch {
	case i < len(s) && s[i] == '0':
		i++
	case i < len(s) && s[i] >= '1' && s[i] <= '9':
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	default:
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		if i == len(s) || s[i] < '0' || s[i] > '9' {
			return false
		}
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		if i == len(s) || s[i] < '0' || s[i] > '9' {
			return false
		}
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	}
	return i == len(s)
}
