// Command flc is the command-line entry point for the interpreter: run a
// program, inspect its tokens or parsed tree, or print build info.
package main

import (
	"fmt"
	"os"

	"github.com/flc-lang/flc/cmd/flc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
