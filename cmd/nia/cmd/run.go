package cmd

import (
	"fmt"
	"os"

	nerrors "github.com/nialang/nia/internal/nia/errors"
	"github.com/nialang/nia/internal/nia/interp"
	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Nia script file or expression",
	Long: `Execute a Nia program from a file or inline expression, printing
the canonical form of the last top-level value.

Examples:
  # Run a script file
  nia run script.nia

  # Evaluate an inline expression
  nia run -e "(+ 1 2 3)"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
}

func runScript(_ *cobra.Command, args []string) error {
	var source, filename string

	switch {
	case evalExpr != "":
		source = evalExpr
		filename = "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		source = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	interpreter := interp.New()
	result, err := interpreter.Execute(source)
	if err != nil {
		printEvaluationError(interpreter, err)
		return fmt.Errorf("execution failed")
	}

	fmt.Println(interpreter.Store.Print(result))
	return nil
}

// printEvaluationError prints the one-line kind/symbol/message summary
// plus cause chain, the same shape the REPL uses.
func printEvaluationError(interpreter *interp.Interpreter, err error) {
	var nerr *nerrors.Error
	if ok := asNiaError(err, &nerr); ok {
		fmt.Fprintln(os.Stderr, nerr.Summary(interpreter.Store))
		return
	}
	fmt.Fprintln(os.Stderr, err.Error())
}

func asNiaError(err error, target **nerrors.Error) bool {
	if e, ok := err.(*nerrors.Error); ok {
		*target = e
		return true
	}
	return false
}
