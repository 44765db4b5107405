package llmjson

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  any
	}{
		{
			name:  "bare_true",
			input: "True",
			want:  true,
		},
		{
			name:  "bare_null",
			input: "NONE",
			want:  nil,
		},
		{
			name:  "bare_string",
			input: "'hello'",
			want:  "hello",
		},
		{
			name:  "bare_number",
			input: "12.5",
			want:  Number("12.5"),
		},
		{
			name:  "empty_array",
			input: "[]",
			want:  []any{},
		},
		{
			name:  "mixed_array",
			input: "[1, 'two', false, null]",
			want:  []any{Number("1"), "two", false, nil},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %#v want %#v", got, tc.want)
			}
		})
	}
}

func TestParseObject(t *testing.T) {
	got, err := Parse("{b: 1, \"a\": 2, b: 3}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	obj, ok := got.(*Object)
	if !ok {
		t.Fatalf("expected *Object, got %T", got)
	}
	if keys := obj.Keys(); !reflect.DeepEqual(keys, []string{"b", "a"}) {
		t.Fatalf("unexpected key order %v", keys)
	}
	value, ok := obj.Get("b")
	if !ok {
		t.Fatal("missing key b")
	}
	if value != Number("3") {
		t.Fatalf("repeated key should keep the last value, got %v", value)
	}
}

func TestParseDuplicateKeysFastPath(t *testing.T) {
	// valid input, so this exercises the strict decoder
	got, err := Parse("{\"a\": 1, \"b\": 2, \"a\": 3}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	obj := got.(*Object)
	if keys := obj.Keys(); !reflect.DeepEqual(keys, []string{"a", "b"}) {
		t.Fatalf("unexpected key order %v", keys)
	}
	if value, _ := obj.Get("a"); value != Number("3") {
		t.Fatalf("got %v want 3", value)
	}
}

func TestParseNonFinite(t *testing.T) {
	got, err := Parse("[NaN, Infinity, -Infinity]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	values := got.([]any)
	if len(values) != 3 {
		t.Fatalf("expected 3 values, got %v", values)
	}

	nan := values[0].(Number)
	if nan.IsFinite() {
		t.Fatal("NaN should not be finite")
	}
	if f, err := nan.Float64(); err != nil || !math.IsNaN(f) {
		t.Fatalf("got %v, %v", f, err)
	}

	pos := values[1].(Number)
	if f, err := pos.Float64(); err != nil || !math.IsInf(f, 1) {
		t.Fatalf("got %v, %v", f, err)
	}
	neg := values[2].(Number)
	if f, err := neg.Float64(); err != nil || !math.IsInf(f, -1) {
		t.Fatalf("got %v, %v", f, err)
	}
}

func TestParseFastPathEquivalence(t *testing.T) {
	inputs := []string{
		"null",
		"true",
		"\"text\"",
		"-0",
		"1.5e3",
		"[1, 2, 3]",
		"  [\"a\", {\"b\": []}]  ",
		"{\"a\": 1, \"b\": {\"c\": \"d\\ne\"}}",
		"{\"key\": 12345678901234567890}",
	}

	for _, input := range inputs {
		fast, err := Parse(input)
		if err != nil {
			t.Fatalf("fast path %q: %v", input, err)
		}
		repaired, err := Parse(input, WithSkipFastPath())
		if err != nil {
			t.Fatalf("repair path %q: %v", input, err)
		}
		if !reflect.DeepEqual(fast, repaired) {
			t.Fatalf("paths disagree for %q: %#v vs %#v", input, fast, repaired)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"", "   ", "/* just a comment */"} {
		_, err := Parse(input)
		if !errors.Is(err, ErrUnexpectedEnd) {
			t.Fatalf("input %q: got %v want ErrUnexpectedEnd", input, err)
		}
	}

	_, err := Parse("{\"a\": {\"b\": {\"c\": 1}}}", WithMaxDepth(2))
	if !errors.Is(err, ErrRecursionLimit) {
		t.Fatalf("got %v want ErrRecursionLimit", err)
	}
}

func TestParseWithLog(t *testing.T) {
	value, events, err := ParseWithLog("{'a': 1}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := value.(*Object); !ok {
		t.Fatalf("expected *Object, got %T", value)
	}
	if len(events) == 0 {
		t.Fatal("expected repairs to be recorded")
	}
	for _, e := range events {
		if e.Context == "" {
			t.Fatalf("event without context: %+v", e)
		}
	}
}
