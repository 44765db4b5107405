package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	llmjson "github.com/ilteoood/llm-json"
)

func main() {
	if err := NewCLI().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, llmjson.ErrUnexpectedEnd):
		return 2
	case errors.Is(err, llmjson.ErrInvalidLiteral):
		return 3
	case errors.Is(err, llmjson.ErrRecursionLimit):
		return 4
	}
	return 1
}
