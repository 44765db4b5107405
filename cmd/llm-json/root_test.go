package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	llmjson "github.com/ilteoood/llm-json"
	"github.com/ilteoood/llm-json/internal/jsonext"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewCLI()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRunStdin(t *testing.T) {
	stdout, _, err := runCLI(t, "{'a': 1,}")
	require.NoError(t, err)
	require.Equal(t, "{\n  \"a\": 1\n}\n", stdout)
}

func TestRunCompact(t *testing.T) {
	stdout, _, err := runCLI(t, "{'a': 1}", "--indent", "0")
	require.NoError(t, err)
	require.Equal(t, "{\"a\": 1}\n", stdout)
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("[1, 2,"), 0o644))

	stdout, _, err := runCLI(t, "", path)
	require.NoError(t, err)
	require.True(t, jsonext.Equal(stdout, "[1, 2]"))
}

func TestRunMissingFile(t *testing.T) {
	_, _, err := runCLI(t, "", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read file")
}

func TestRunInline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{name: 'John'}"), 0o644))

	stdout, _, err := runCLI(t, "", "--inline", path)
	require.NoError(t, err)
	require.Contains(t, stdout, "repaired in place")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, jsonext.Equal(string(data), "{\"name\": \"John\"}"))
}

func TestRunOutput(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.json")

	stdout, _, err := runCLI(t, "[1 2]", "-o", target)
	require.NoError(t, err)
	require.Contains(t, stdout, "Output written to")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	require.True(t, jsonext.Equal(string(data), "[1, 2]"))
}

func TestRunEnsureASCII(t *testing.T) {
	stdout, _, err := runCLI(t, "{'a': 'é'}", "--indent", "0")
	require.NoError(t, err)
	require.Equal(t, "{\"a\": \"é\"}\n", stdout)

	stdout, _, err = runCLI(t, "{'a': 'é'}", "--indent", "0", "--ensure-ascii")
	require.NoError(t, err)
	require.Equal(t, "{\"a\": \"\\u00e9\"}\n", stdout)
}

func TestRunSkipValidation(t *testing.T) {
	stdout, _, err := runCLI(t, "{'a': 1}", "--indent", "0", "--skip-validation")
	require.NoError(t, err)
	require.Equal(t, "{\"a\": 1}\n", stdout)
}

func TestRunVerbose(t *testing.T) {
	_, stderr, err := runCLI(t, "{'a': 1,}", "--verbose")
	require.NoError(t, err)
	require.Contains(t, stderr, "POSITION")
	require.Contains(t, stderr, "comma")
}

func TestRunEmptyInput(t *testing.T) {
	_, _, err := runCLI(t, "")
	require.Error(t, err)
	require.ErrorIs(t, err, llmjson.ErrUnexpectedEnd)
}

func TestRunConflictingFlags(t *testing.T) {
	_, _, err := runCLI(t, "{}", "-i", "-o", "out.json")
	require.Error(t, err)
}

func TestRunInlineRequiresFile(t *testing.T) {
	_, _, err := runCLI(t, "{}", "--inline")
	require.Error(t, err)
}

func TestRunVersion(t *testing.T) {
	stdout, _, err := runCLI(t, "", "--version")
	require.NoError(t, err)
	require.Contains(t, stdout, llmjson.Version)
}

func TestExitCode(t *testing.T) {
	require.Equal(t, 2, exitCode(llmjson.ErrUnexpectedEnd))
	require.Equal(t, 3, exitCode(llmjson.ErrInvalidLiteral))
	require.Equal(t, 4, exitCode(llmjson.ErrRecursionLimit))
	require.Equal(t, 1, exitCode(errors.New("boom")))
}
