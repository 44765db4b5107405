// Package llmjson repairs the malformed JSON that large language models
// tend to emit: unquoted keys, single or smart quotes, trailing commas,
// truncated containers, Markdown fences and prose around the payload.
// The repair is tolerant by construction and turns almost any input into
// a value. The error cases are inputs with no value at all, which report
// ErrUnexpectedEnd, and inputs nested beyond the recursion limit, which
// report ErrRecursionLimit.
//
// Valid input takes a fast path through the standard decoder and comes
// back unchanged in meaning, so calling Repair on every payload is
// cheap.
package llmjson

// Parse repairs input and returns the parsed value: one of nil, bool,
// string, Number, []any or *Object.
func Parse(input string, opts ...Option) (any, error) {
	cfg := applyOptions(opts)
	value, _, err := parseWith(input, false, cfg)
	return value, err
}

// ParseWithLog is Parse plus the list of repairs that were applied. The
// list is empty, never nil, when the input needed none.
func ParseWithLog(input string, opts ...Option) (any, []RepairEvent, error) {
	cfg := applyOptions(opts)
	return parseWith(input, true, cfg)
}

// Repair parses input and renders it back as strict JSON text.
func Repair(input string, opts ...Option) (string, error) {
	cfg := applyOptions(opts)
	value, _, err := parseWith(input, false, cfg)
	if err != nil {
		return "", err
	}
	return serialize(value, cfg), nil
}

// RepairWithLog is Repair plus the list of repairs that were applied.
func RepairWithLog(input string, opts ...Option) (string, []RepairEvent, error) {
	cfg := applyOptions(opts)
	value, events, err := parseWith(input, true, cfg)
	if err != nil {
		return "", nil, err
	}
	return serialize(value, cfg), events, nil
}

func parseWith(input string, logging bool, cfg options) (any, []RepairEvent, error) {
	if !cfg.skipFastPath {
		if value, ok := tryFastPath(input, cfg.maxDepth); ok {
			return value, []RepairEvent{}, nil
		}
	}
	p := newParser(input, logging, cfg.maxDepth)
	value, err := p.parse()
	if err != nil {
		return nil, nil, err
	}
	return value, p.events, nil
}
