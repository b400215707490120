package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/connormason/youtube-dl/pkg/jsinterp"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var (
	callArgsJSON  string
	callGlobals   []string
	callTrace     bool
	callTraceJSON bool
	callMaxDepth  int
	callTimeout   time.Duration
)

var callCmd = &cobra.Command{
	Use:   "call <file> <function>",
	Short: "Build a program from file and call one function in it",
	Long: `call loads a player-script-shaped JS source file, resolves a single
named function, and invokes it with the
given arguments, printing the JSON-rendered result.

Examples:
  # Call one function with a JSON array of arguments
  ytjs call sig.js decipher --args '["AQIC..."]'

  # Pass named globals into the program's outermost scope
  ytjs call player.js getNParam --args '["abc123"]' --global 'DEBUG=true'`,
	Args: cobra.ExactArgs(2),
	RunE: runCall,
}

func init() {
	rootCmd.AddCommand(callCmd)

	callCmd.Flags().StringVar(&callArgsJSON, "args", "[]", "JSON array of arguments to pass")
	callCmd.Flags().StringArrayVar(&callGlobals, "global", nil, "name=JSON-value global binding, repeatable")
	callCmd.Flags().BoolVar(&callTrace, "trace", false, "print a human-readable statement trace to stderr")
	callCmd.Flags().BoolVar(&callTraceJSON, "trace-json", false, "print an NDJSON statement trace to stderr")
	callCmd.Flags().IntVar(&callMaxDepth, "max-depth", 100, "recursion budget")
	callCmd.Flags().DurationVar(&callTimeout, "timeout", 0, "wall-clock deadline for the call, 0 for none")
}

func runCall(_ *cobra.Command, args []string) error {
	filename, funcName := args[0], args[1]

	src, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	globals, err := parseGlobals(callGlobals)
	if err != nil {
		return err
	}

	opts := buildEngineOptions(callMaxDepth, callTimeout, callTrace, callTraceJSON)
	engine, err := jsinterp.Build(string(src), opts...)
	if err != nil {
		return fmt.Errorf("failed to build interpreter: %w", err)
	}

	callArgs, err := parseArgsJSON(callArgsJSON)
	if err != nil {
		return fmt.Errorf("failed to parse --args: %w", err)
	}

	result, err := engine.Call(funcName, callArgs, globals)
	if err != nil {
		return formatEngineError(err)
	}

	out, err := result.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// parseArgsJSON decodes a JSON array of arbitrary JSON values into the
// Value slice Engine.Call expects, using gjson so a malformed top-level
// shape (non-array) is rejected with a clear message rather than a panic.
func parseArgsJSON(raw string) ([]jsinterp.Value, error) {
	if raw == "" {
		return nil, nil
	}
	parsed := gjson.Parse(raw)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("--args must be a JSON array, got: %s", raw)
	}
	results := parsed.Array()
	values := make([]jsinterp.Value, len(results))
	for i, r := range results {
		values[i] = jsinterp.FromJSON(r.Value())
	}
	return values, nil
}

// parseGlobals turns repeated --global name=JSON flags into a globals map,
// using gjson to decode each value the same way parseArgsJSON decodes
// array elements.
func parseGlobals(raw []string) (map[string]jsinterp.Value, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	globals := make(map[string]jsinterp.Value, len(raw))
	for _, kv := range raw {
		name, value, ok := splitOnce(kv, '=')
		if !ok {
			return nil, fmt.Errorf("--global must be name=value, got: %s", kv)
		}
		result := gjson.Parse(value)
		globals[name] = jsinterp.FromJSON(result.Value())
	}
	return globals, nil
}

func splitOnce(s string, sep byte) (before, after string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}

// buildEngineOptions assembles the shared Build options (recursion depth,
// deadline, trace mode) for both call and run.
func buildEngineOptions(maxDepth int, timeout time.Duration, trace, traceJSON bool) []jsinterp.Option {
	var opts []jsinterp.Option
	if maxDepth > 0 {
		opts = append(opts, jsinterp.WithMaxRecursionDepth(maxDepth))
	}
	if timeout > 0 {
		opts = append(opts, jsinterp.WithDeadline(time.Now().Add(timeout)))
	}
	switch {
	case traceJSON:
		opts = append(opts, jsinterp.WithTrace(ndjsonTrace(os.Stderr)))
	case trace:
		opts = append(opts, jsinterp.WithTrace(func(depth int, message string) {
			fmt.Fprintf(os.Stderr, "%*s%s\n", depth*2, "", message)
		}))
	}
	return opts
}

// ndjsonTrace writes one JSON object per statement entry to w, using
// sjson rather than round-tripping a struct through encoding/json, the
// same approach internal/jsinterp.NDJSONTrace uses for its own tracing
// hook.
func ndjsonTrace(w *os.File) func(depth int, message string) {
	return func(depth int, message string) {
		line, err := sjson.Set("{}", "depth", depth)
		if err != nil {
			return
		}
		line, err = sjson.Set(line, "stmt", message)
		if err != nil {
			return
		}
		fmt.Fprintln(w, line)
	}
}

// formatEngineError renders a jsinterp.Error with its structured kind and
// snippet, falling back to a plain
// wrap for any other error.
func formatEngineError(err error) error {
	if ierr, ok := err.(*jsinterp.Error); ok {
		return fmt.Errorf("%s: %s (in: %s)", ierr.Kind, ierr.Message, ierr.Expr)
	}
	return fmt.Errorf("evaluation failed: %w", err)
}
