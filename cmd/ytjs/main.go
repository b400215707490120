// Command ytjs is a thin CLI harness over the jsinterp engine, for
// exercising player-script signature/n-parameter transforms from a
// terminal without wiring a full extractor. It mirrors cmd/dwscript entry point: a
// package main that only calls cmd.Execute.
package main

import (
	"fmt"
	"os"

	"github.com/connormason/youtube-dl/cmd/ytjs/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
