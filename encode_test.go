package llmjson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerializeScalars(t *testing.T) {
	obj := NewObject()
	obj.Set("num", Number("7"))
	obj.Set("float", 3.0)
	obj.Set("int", 42)
	obj.Set("big", int64(1<<40))
	obj.Set("none", nil)

	got := serialize(obj, options{})
	require.Equal(t, "{\"num\": 7, \"float\": 3.0, \"int\": 42, \"big\": 1099511627776, \"none\": null}", got)
}

func TestSerializeNonFinite(t *testing.T) {
	values := []any{Number("NaN"), Number("Infinity"), Number("-Infinity")}
	require.Equal(t, "[null, null, null]", serialize(values, options{}))
}

func TestSerializeControlCharacters(t *testing.T) {
	got := serialize("a\tb\x01c", options{})
	require.Equal(t, "\"a\\tb\\u0001c\"", got)
}

func TestSerializeEnsureASCII(t *testing.T) {
	got := serialize("héllo", options{})
	require.Equal(t, "\"h\\u00e9llo\"", got)

	off := false
	got = serialize("héllo", options{ensureASCII: &off})
	require.Equal(t, "\"héllo\"", got)

	// astral plane characters become surrogate pairs
	got = serialize("\U0001F600", options{})
	require.Equal(t, "\"\\ud83d\\ude00\"", got)
}

func TestSerializeIndent(t *testing.T) {
	obj := NewObject()
	obj.Set("a", []any{Number("1"), Number("2")})
	obj.Set("b", NewObject())

	got := serialize(obj, options{indent: 4})
	want := "{\n    \"a\": [\n        1,\n        2\n    ],\n    \"b\": {}\n}"
	require.Equal(t, want, got)
}

func TestFormatFloat(t *testing.T) {
	require.Equal(t, "3.0", formatFloat(3))
	require.Equal(t, "0.25", formatFloat(0.25))
	require.Equal(t, "-1.5", formatFloat(-1.5))
}

func TestIsJSONNumber(t *testing.T) {
	valid := []string{"0", "-0", "1", "-12", "1.5", "0.5", "1e3", "1E3", "1e+3", "1.5e-3", "12345678901234567890"}
	for _, s := range valid {
		require.True(t, isJSONNumber(s), s)
	}

	invalid := []string{"", "-", "+1", "01", ".5", "1.", "1e", "1e+", "NaN", "Infinity", "1x", "--1"}
	for _, s := range invalid {
		require.False(t, isJSONNumber(s), s)
	}
}
