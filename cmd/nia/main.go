// Command nia is the Nia interpreter's CLI front end: run a script
// file, evaluate an inline expression, or drop into a REPL.
package main

import (
	"fmt"
	"os"

	"github.com/nialang/nia/cmd/nia/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
