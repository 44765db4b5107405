package llmjson

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
)

// serialize renders a parsed value back to strict JSON text.
func serialize(value any, cfg options) string {
	enc := encoder{ensureASCII: ensureASCIIValue(cfg)}
	if cfg.indent > 0 {
		enc.indent = strings.Repeat(" ", cfg.indent)
	}
	enc.writeValue(value, 0)
	return enc.buf.String()
}

type encoder struct {
	buf         bytes.Buffer
	ensureASCII bool
	indent      string
}

func (e *encoder) writeValue(value any, depth int) {
	switch v := value.(type) {
	case nil:
		e.buf.WriteString("null")
	case bool:
		e.buf.WriteString(strconv.FormatBool(v))
	case string:
		e.writeString(v)
	case Number:
		e.writeNumber(v)
	case []any:
		e.writeArray(v, depth)
	case *Object:
		e.writeObject(v, depth)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			e.buf.WriteString("null")
		} else {
			e.buf.WriteString(formatFloat(v))
		}
	case int:
		e.buf.WriteString(strconv.Itoa(v))
	case int64:
		e.buf.WriteString(strconv.FormatInt(v, 10))
	default:
		e.buf.WriteString("null")
	}
}

// writeNumber renders a Number. The lexeme passes through when it is
// already a valid JSON number; the non-finite sentinels become null.
func (e *encoder) writeNumber(n Number) {
	if isJSONNumber(string(n)) {
		e.buf.WriteString(string(n))
		return
	}
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		e.buf.WriteString("null")
		return
	}
	e.buf.WriteString(formatFloat(f))
}

func (e *encoder) writeArray(values []any, depth int) {
	if len(values) == 0 {
		e.buf.WriteString("[]")
		return
	}
	e.buf.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			e.buf.WriteByte(',')
			if e.indent == "" {
				e.buf.WriteByte(' ')
			}
		}
		if e.indent != "" {
			e.writeBreak(depth + 1)
		}
		e.writeValue(v, depth+1)
	}
	if e.indent != "" {
		e.writeBreak(depth)
	}
	e.buf.WriteByte(']')
}

func (e *encoder) writeObject(obj *Object, depth int) {
	if obj == nil || obj.Len() == 0 {
		e.buf.WriteString("{}")
		return
	}
	e.buf.WriteByte('{')
	for i, m := range obj.members {
		if i > 0 {
			e.buf.WriteByte(',')
			if e.indent == "" {
				e.buf.WriteByte(' ')
			}
		}
		if e.indent != "" {
			e.writeBreak(depth + 1)
		}
		e.writeString(m.Key)
		e.buf.WriteString(": ")
		e.writeValue(m.Value, depth+1)
	}
	if e.indent != "" {
		e.writeBreak(depth)
	}
	e.buf.WriteByte('}')
}

func (e *encoder) writeBreak(depth int) {
	e.buf.WriteByte('\n')
	for range depth {
		e.buf.WriteString(e.indent)
	}
}

func (e *encoder) writeString(s string) {
	e.buf.WriteByte('"')
	for _, r := range s {
		e.writeEscaped(r)
	}
	e.buf.WriteByte('"')
}

func (e *encoder) writeEscaped(r rune) {
	switch r {
	case '"':
		e.buf.WriteString(`\"`)
	case '\\':
		e.buf.WriteString(`\\`)
	case '\b':
		e.buf.WriteString(`\b`)
	case '\f':
		e.buf.WriteString(`\f`)
	case '\n':
		e.buf.WriteString(`\n`)
	case '\r':
		e.buf.WriteString(`\r`)
	case '\t':
		e.buf.WriteString(`\t`)
	default:
		switch {
		case r < 0x20:
			e.buf.WriteString(hex4(uint16(r)))
		case r > 0x7f && e.ensureASCII:
			if r > 0xffff {
				for _, unit := range utf16.Encode([]rune{r}) {
					e.buf.WriteString(hex4(unit))
				}
			} else {
				e.buf.WriteString(hex4(uint16(r)))
			}
		default:
			e.buf.WriteRune(r)
		}
	}
}

// hex4 renders a UTF-16 code unit as a \u escape with lowercase hex.
func hex4(unit uint16) string {
	return fmt.Sprintf(`\u%04x`, unit)
}

// formatFloat renders a float with a decimal point so it reads back as a
// float.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
