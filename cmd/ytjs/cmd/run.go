package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/connormason/youtube-dl/pkg/jsinterp"
	"github.com/spf13/cobra"
)

var (
	runGlobals   []string
	runTrace     bool
	runTraceJSON bool
	runMaxDepth  int
	runTimeout   time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run <file> <function>",
	Short: "Extract one function and call it once per NDJSON args line on stdin",
	Long: `run resolves function once and reuses the
same compiled closure for every line of stdin, each a JSON array of
arguments, printing one JSON result line per input line. This mirrors how
a cache of (function_name, body_hash) -> compiled closure would reuse a
single extracted function across many signature strings.

Example:
  echo '["AQIC..."]' | ytjs run player.js decipher`,
	Args: cobra.ExactArgs(2),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringArrayVar(&runGlobals, "global", nil, "name=JSON-value global binding, repeatable")
	runCmd.Flags().BoolVar(&runTrace, "trace", false, "print a human-readable statement trace to stderr")
	runCmd.Flags().BoolVar(&runTraceJSON, "trace-json", false, "print an NDJSON statement trace to stderr")
	runCmd.Flags().IntVar(&runMaxDepth, "max-depth", 100, "recursion budget")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "wall-clock deadline per call, 0 for none")
}

func runRun(_ *cobra.Command, args []string) error {
	filename, funcName := args[0], args[1]

	src, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	globals, err := parseGlobals(runGlobals)
	if err != nil {
		return err
	}

	opts := buildEngineOptions(runMaxDepth, runTimeout, runTrace, runTraceJSON)
	engine, err := jsinterp.Build(string(src), opts...)
	if err != nil {
		return fmt.Errorf("failed to build interpreter: %w", err)
	}

	callable, err := engine.ExtractFunction(funcName)
	if err != nil {
		return formatEngineError(err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		callArgs, err := parseArgsJSON(line)
		if err != nil {
			return fmt.Errorf("failed to parse args line %q: %w", line, err)
		}
		result, err := callable.Call(callArgs, globals)
		if err != nil {
			return formatEngineError(err)
		}
		out, err := result.MarshalJSON()
		if err != nil {
			return fmt.Errorf("failed to render result: %w", err)
		}
		fmt.Println(string(out))
	}
	return scanner.Err()
}
