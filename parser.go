package llmjson

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// RepairEvent records a single repair applied to the input.
type RepairEvent struct {
	Position int    `json:"position"`
	Message  string `json:"message"`
	Context  string `json:"context"`
}

type parseContext int

const (
	contextObjectKey parseContext = iota
	contextObjectValue
	contextArray
)

type contextStack struct {
	values []parseContext
}

func (s *contextStack) push(v parseContext) {
	s.values = append(s.values, v)
}

func (s *contextStack) pop() {
	if len(s.values) > 0 {
		s.values = s.values[:len(s.values)-1]
	}
}

func (s *contextStack) current() (parseContext, bool) {
	if len(s.values) == 0 {
		return 0, false
	}
	return s.values[len(s.values)-1], true
}

func (s *contextStack) contains(v parseContext) bool {
	return slices.Contains(s.values, v)
}

type parser struct {
	cur      *cursor
	context  *contextStack
	depth    int
	maxDepth int
	events   []RepairEvent
	log      func(message string)
}

func newParser(input string, logging bool, maxDepth int) *parser {
	p := &parser{
		cur:      newCursor(input),
		context:  &contextStack{},
		maxDepth: maxDepth,
	}
	if logging {
		p.events = []RepairEvent{}
		p.log = p.addEvent
	} else {
		p.log = func(string) {}
	}
	return p
}

func (p *parser) addEvent(message string) {
	p.events = append(p.events, RepairEvent{
		Position: p.cur.pos,
		Message:  message,
		Context:  p.cur.window(10),
	})
}

func isStructuralChar(ch rune) bool {
	switch ch {
	case ',', ':', '}', ']':
		return true
	}
	return false
}

// isValueStart reports whether ch can open a container, quoted string
// or number. Letters are left to skipLeadingProse, which tells keyword
// literals apart from prose.
func isValueStart(ch rune) bool {
	return ch == '{' || ch == '[' || isQuote(ch) || isDigit(ch) || ch == '-' || ch == '+'
}

// skipInsignificant consumes whitespace and comments. Line comments may
// start with //, /* or #.
func (p *parser) skipInsignificant() {
	for {
		p.cur.skipWhitespace()
		ch, ok := p.cur.peek()
		if !ok {
			return
		}
		switch {
		case ch == '#':
			p.log("removed comment")
			p.skipLineComment()
		case ch == '/':
			next, ok := p.cur.peekAt(1)
			if !ok {
				return
			}
			switch next {
			case '/':
				p.log("removed comment")
				p.skipLineComment()
			case '*':
				p.log("removed comment")
				p.cur.skipBlockComment()
			default:
				return
			}
		default:
			return
		}
	}
}

// lineCommentEnds reports whether ch terminates a line comment. Besides
// the newline, the bracket closing the surrounding container ends the
// comment, as does the colon while a key is pending, so a comment on the
// last line cannot swallow them.
func (p *parser) lineCommentEnds(ch rune) bool {
	switch ch {
	case '\n', '\r':
		return true
	case ']':
		return p.context.contains(contextArray)
	case '}':
		return p.context.contains(contextObjectValue)
	case ':':
		return p.context.contains(contextObjectKey)
	}
	return false
}

func (p *parser) skipLineComment() {
	for {
		ch, ok := p.cur.peek()
		if !ok || p.lineCommentEnds(ch) {
			return
		}
		p.cur.advance()
	}
}

// parse runs the repair over the whole input and returns the first value
// it finds. Content after that value is discarded.
func (p *parser) parse() (any, error) {
	p.stripFence()
	for {
		p.skipInsignificant()
		ch, ok := p.cur.peek()
		if !ok {
			return nil, fmt.Errorf("%w at position %d", ErrUnexpectedEnd, p.cur.pos)
		}
		if isStructuralChar(ch) {
			p.skipJunkRun()
			continue
		}
		if !isValueStart(ch) && p.skipLeadingProse() {
			continue
		}
		break
	}
	return p.parseValue()
}

// stripFence drops an opening Markdown code fence, optionally tagged
// with a language, so fenced output parses as its content. The closing
// fence is discarded with the rest of the trailing content.
func (p *parser) stripFence() {
	save := p.cur.pos
	p.cur.skipWhitespace()
	for i := range 3 {
		if ch, ok := p.cur.peekAt(i); !ok || ch != '`' {
			p.cur.pos = save
			return
		}
	}
	p.log("stripped markdown code fence")
	p.cur.pos += 3
	for {
		ch, ok := p.cur.peek()
		if !ok || !isWordRune(ch) {
			return
		}
		p.cur.advance()
	}
}

// skipLeadingProse jumps over prose and decoration before a container,
// as in "Here is the JSON: {...}" or a quoted reply prefix. It reports
// whether the cursor moved. A word that reads as a keyword literal stays
// put so that bare true or null inputs still parse.
func (p *parser) skipLeadingProse() bool {
	word, size := p.peekWord()
	if size > 0 {
		if next, ok := p.cur.peekAt(size); !ok || !isWordRune(next) {
			if _, known := keywordValue(strings.ToLower(word)); known {
				return false
			}
		}
	}
	for i := 0; ; i++ {
		ch, ok := p.cur.peekAt(i)
		if !ok {
			return false
		}
		if ch == '{' || ch == '[' {
			p.log("skipped leading text before value")
			p.cur.pos += i
			return true
		}
	}
}

// skipJunkRun consumes a run of structural characters that cannot begin
// a value.
func (p *parser) skipJunkRun() {
	p.log("skipped stray characters before value")
	for {
		ch, ok := p.cur.peek()
		if !ok || !(isStructuralChar(ch) || unicode.IsSpace(ch)) {
			return
		}
		p.cur.advance()
	}
}

// parseValue dispatches on the first significant character.
func (p *parser) parseValue() (any, error) {
	p.skipInsignificant()
	ch, ok := p.cur.peek()
	if !ok {
		return nil, fmt.Errorf("%w at position %d", ErrUnexpectedEnd, p.cur.pos)
	}
	switch {
	case ch == '{':
		return p.parseObject()
	case ch == '[':
		return p.parseArray()
	case isQuote(ch):
		return p.parseStringValue(ch), nil
	case unicode.IsLetter(ch):
		return p.parseLiteral()
	case ch == '-' || ch == '+' || isDigit(ch):
		return p.parseNumber(), nil
	default:
		return p.parseUnquoted(), nil
	}
}

// parseKey parses an object key. Bareword, numeric and boolean-looking
// keys are all accepted as text.
func (p *parser) parseKey() string {
	ch, ok := p.cur.peek()
	if !ok {
		return ""
	}
	if isQuote(ch) {
		return p.parseQuoted(ch)
	}
	return p.parseUnquoted()
}

// parseMemberValue parses the value of an object member. A member cut
// short by end of input completes with null, and one whose value is
// missing before a delimiter gets the empty string.
func (p *parser) parseMemberValue() (any, error) {
	p.skipInsignificant()
	ch, ok := p.cur.peek()
	switch {
	case !ok:
		p.log("completed dangling key with null")
		return nil, nil
	case ch == ',' || ch == '}' || ch == ']':
		p.log("filled missing value with empty string")
		return "", nil
	default:
		return p.parseValue()
	}
}

func (p *parser) parseObject() (*Object, error) {
	if p.depth >= p.maxDepth {
		return nil, fmt.Errorf("%w at position %d", ErrRecursionLimit, p.cur.pos)
	}
	p.depth++
	defer func() { p.depth-- }()

	p.cur.advance()
	obj := NewObject()
	sawComma := false
	for {
		p.skipInsignificant()
		ch, ok := p.cur.peek()
		if !ok {
			p.log("closed unterminated object at end of input")
			return obj, nil
		}
		switch ch {
		case '}':
			if sawComma {
				p.log("removed trailing comma")
			}
			p.cur.advance()
			return obj, nil
		case ']':
			p.log("closed object at mismatched bracket")
			p.cur.advance()
			return obj, nil
		case ',':
			p.log("removed extra comma")
			p.cur.advance()
			continue
		}
		sawComma = false

		p.context.push(contextObjectKey)
		key := p.parseKey()

		p.skipInsignificant()
		if ch, ok := p.cur.peek(); ok && ch == ':' {
			p.cur.advance()
		} else {
			p.log("inserted missing colon after key")
		}
		p.context.pop()

		p.context.push(contextObjectValue)
		value, err := p.parseMemberValue()
		p.context.pop()
		if err != nil {
			return nil, err
		}
		obj.Set(key, value)

		p.skipInsignificant()
		ch, ok = p.cur.peek()
		switch {
		case !ok:
			p.log("closed unterminated object at end of input")
			return obj, nil
		case ch == ',':
			p.cur.advance()
			sawComma = true
		case ch == '}':
			p.cur.advance()
			return obj, nil
		case ch == ']':
			p.log("closed object at mismatched bracket")
			p.cur.advance()
			return obj, nil
		case isQuote(ch) || unicode.IsLetter(ch) || isDigit(ch) || ch == '-' || ch == '+':
			p.log("inserted missing comma between members")
		default:
			p.log("skipped stray character in object")
			p.cur.advance()
		}
	}
}

func (p *parser) parseArray() ([]any, error) {
	if p.depth >= p.maxDepth {
		return nil, fmt.Errorf("%w at position %d", ErrRecursionLimit, p.cur.pos)
	}
	p.depth++
	defer func() { p.depth-- }()

	p.cur.advance()
	p.context.push(contextArray)
	defer p.context.pop()

	values := []any{}
	sawComma := false
	for {
		p.skipInsignificant()
		ch, ok := p.cur.peek()
		if !ok {
			p.log("closed unterminated array at end of input")
			return values, nil
		}
		switch ch {
		case ']':
			if sawComma {
				p.log("removed trailing comma")
			}
			p.cur.advance()
			return values, nil
		case '}':
			p.log("closed array at mismatched bracket")
			p.cur.advance()
			return values, nil
		case ',':
			p.log("removed extra comma")
			p.cur.advance()
			continue
		case ':':
			p.log("skipped stray colon in array")
			p.cur.advance()
			continue
		}
		sawComma = false

		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		values = append(values, value)

		p.skipInsignificant()
		ch, ok = p.cur.peek()
		switch {
		case !ok:
			p.log("closed unterminated array at end of input")
			return values, nil
		case ch == ',':
			p.cur.advance()
			sawComma = true
		case ch == ']':
			p.cur.advance()
			return values, nil
		case ch == '}':
			p.log("closed array at mismatched bracket")
			p.cur.advance()
			return values, nil
		case ch == ':':
			p.log("skipped stray colon in array")
			p.cur.advance()
		default:
			p.log("inserted missing comma between elements")
		}
	}
}
