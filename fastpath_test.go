package llmjson

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTryFastPath(t *testing.T) {
	value, ok := tryFastPath("{\"a\": [1, \"b\"], \"c\": null}", defaultMaxDepth)
	require.True(t, ok)

	obj, isObj := value.(*Object)
	require.True(t, isObj)
	require.Equal(t, []string{"a", "c"}, obj.Keys())

	a, _ := obj.Get("a")
	require.Equal(t, []any{Number("1"), "b"}, a)

	c, _ := obj.Get("c")
	require.Nil(t, c)
}

func TestTryFastPathScalars(t *testing.T) {
	cases := []struct {
		input string
		want  any
	}{
		{"true", true},
		{"null", nil},
		{"\"hi\"", "hi"},
		{"1.5e3", Number("1.5e3")},
		{"\"\"", ""},
		{" [] ", []any{}},
	}
	for _, tc := range cases {
		value, ok := tryFastPath(tc.input, defaultMaxDepth)
		require.True(t, ok, tc.input)
		require.Equal(t, tc.want, value, tc.input)
	}
}

func TestTryFastPathRejectsInvalid(t *testing.T) {
	for _, input := range []string{
		"",
		"{'a': 1}",
		"[1, 2,]",
		"{\"a\": 1} trailing",
		"```json\n{}\n```",
	} {
		_, ok := tryFastPath(input, defaultMaxDepth)
		require.False(t, ok, input)
	}
}

func TestTryFastPathDepthLimit(t *testing.T) {
	deep := strings.Repeat("[", 20) + strings.Repeat("]", 20)

	_, ok := tryFastPath(deep, 10)
	require.False(t, ok)

	_, ok = tryFastPath(deep, defaultMaxDepth)
	require.True(t, ok)
}
