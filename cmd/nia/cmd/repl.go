package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nialang/nia/internal/nia/interp"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start a read-eval-print loop",
	Long: `Read one Nia form (or sequence of forms) per line from stdin, evaluate
it against a persistent top-level environment, and print the result —
or, on error, the one-line kind/symbol/message summary and cause
chain.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, _ []string) error {
	return repl(cmd.InOrStdin(), cmd.OutOrStdout())
}

func repl(in io.Reader, out io.Writer) error {
	interpreter := interp.New()
	env := interpreter.Store.RootEnv
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	fmt.Fprint(out, "nia> ")
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			fmt.Fprint(out, "nia> ")
			continue
		}
		result, err := interpreter.ExecuteIn(env, line)
		if err != nil {
			printEvaluationError(interpreter, err)
		} else {
			fmt.Fprintln(out, interpreter.Store.Print(result))
		}
		fmt.Fprint(out, "nia> ")
	}
	fmt.Fprintln(out)
	return scanner.Err()
}
