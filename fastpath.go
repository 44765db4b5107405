package llmjson

import (
	"encoding/json"
	"fmt"
	"strings"

	xjson "github.com/charmbracelet/x/json"
)

// tryFastPath decodes input with the standard decoder when it is already
// valid JSON, bypassing the repair machinery. Inputs nested beyond
// maxDepth fall through to the repair path so both paths enforce the
// same limit.
func tryFastPath(input string, maxDepth int) (any, bool) {
	if !xjson.IsValid(input) {
		return nil, false
	}
	value, err := decodeStrict(input, maxDepth)
	if err != nil {
		return nil, false
	}
	return value, true
}

func decodeStrict(input string, maxDepth int) (any, error) {
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()
	return decodeStrictValue(dec, 0, maxDepth)
}

func decodeStrictValue(dec *json.Decoder, depth, maxDepth int) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		if depth >= maxDepth {
			return nil, ErrRecursionLimit
		}
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected token %v", keyTok)
				}
				value, err := decodeStrictValue(dec, depth+1, maxDepth)
				if err != nil {
					return nil, err
				}
				obj.Set(key, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			values := []any{}
			for dec.More() {
				value, err := decodeStrictValue(dec, depth+1, maxDepth)
				if err != nil {
					return nil, err
				}
				values = append(values, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return values, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case json.Number:
		return Number(t), nil
	default:
		return tok, nil
	}
}
