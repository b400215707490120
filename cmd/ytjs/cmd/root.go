package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags, following // cmd/dwscript/cmd/root.go convention)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ytjs",
	Short: "Sandboxed JS-subset interpreter for player signature scripts",
	Long: `ytjs drives the jsinterp engine: a sandboxed tree-walking evaluator
for the subset of JavaScript used by streaming-site player scripts
(signature and n-parameter transforms).

It has no network layer of its own: point it at an already-downloaded
player script and a function name, and it evaluates that function the
same way the extractor package would.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
