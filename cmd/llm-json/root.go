package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	llmjson "github.com/ilteoood/llm-json"
	"github.com/ilteoood/llm-json/internal/jsonext"
	"github.com/ilteoood/llm-json/internal/logutil"
)

func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "llm-json [filename]",
		Short:   "Repair malformed JSON",
		Long:    "Repair malformed JSON from a file or standard input and print or write the result.",
		Args:    cobra.MaximumNArgs(1),
		Version: llmjson.Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	flags := rootCmd.Flags()
	flags.BoolP("inline", "i", false, "Replace the file content with the repaired output")
	flags.StringP("output", "o", "", "Write the repaired output to this file")
	flags.Bool("ensure-ascii", false, "Escape non-ASCII characters in the output")
	flags.Int("indent", 2, "Spaces per indent level, 0 prints compact output")
	flags.Bool("skip-validation", false, "Skip the strict parse attempted before repair")
	flags.BoolP("verbose", "v", false, "Print the repairs that were applied")
	rootCmd.MarkFlagsMutuallyExclusive("inline", "output")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	verbose, _ := flags.GetBool("verbose")
	inline, _ := flags.GetBool("inline")
	output, _ := flags.GetString("output")
	ensureASCII, _ := flags.GetBool("ensure-ascii")
	indent, _ := flags.GetInt("indent")
	skipValidation, _ := flags.GetBool("skip-validation")

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := logutil.NewLogger(cmd.ErrOrStderr(), level)

	var filename string
	if len(args) > 0 {
		filename = args[0]
	}
	if inline && filename == "" {
		return errors.New("--inline requires a filename")
	}

	input, err := readInput(cmd, filename)
	if err != nil {
		return err
	}
	logger.Debug("read input", "bytes", len(input))

	opts := []llmjson.Option{
		llmjson.WithEnsureASCII(ensureASCII),
		llmjson.WithIndent(indent),
	}
	if skipValidation {
		opts = append(opts, llmjson.WithSkipFastPath())
	}

	var repaired string
	if verbose {
		result, events, err := llmjson.RepairWithLog(input, opts...)
		if err != nil {
			return err
		}
		logger.Debug("repair finished", "repairs", len(events))
		if len(events) > 0 {
			writeRepairTable(cmd.ErrOrStderr(), events)
		}
		repaired = result
	} else {
		result, err := llmjson.Repair(input, opts...)
		if err != nil {
			return err
		}
		repaired = result
	}

	if !jsonext.IsValidJSON(repaired) {
		return errors.New("repaired output is not valid JSON")
	}

	switch {
	case inline:
		if err := os.WriteFile(filename, []byte(repaired+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write file %q: %w", filename, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "File %q repaired in place\n", filename)
	case output != "":
		if err := os.WriteFile(output, []byte(repaired+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write file %q: %w", output, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Output written to %q\n", output)
	default:
		fmt.Fprintln(cmd.OutOrStdout(), repaired)
	}
	return nil
}

func readInput(cmd *cobra.Command, filename string) (string, error) {
	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return "", fmt.Errorf("failed to read file %q: %w", filename, err)
		}
		return string(data), nil
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", errors.New("no input file and stdin is a terminal")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func writeRepairTable(w io.Writer, events []llmjson.RepairEvent) {
	var data [][]string
	for _, e := range events {
		data = append(data, []string{strconv.Itoa(e.Position), e.Message, e.Context})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"POSITION", "REPAIR", "CONTEXT"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}
