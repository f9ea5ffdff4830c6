// main.go
//
// Entry point for the guessnumber terminal game.
// Responsibilities:
//   - Build the command tree (play / results / clear).
//   - Report startup failures on stderr and exit non-zero.

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "guessnumber:", err)
		os.Exit(1)
	}
}
