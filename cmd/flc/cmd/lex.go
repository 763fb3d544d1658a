package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/flc-lang/flc/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	lexEval    string
	lexShowPos bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a program and print the resulting words",
	Long: `Split a program into its flat stream of lexical words and print them.

If no file is given, reads from stdin.

Examples:
  flc lex script.fl
  flc lex -e "1 + 2"
  flc lex --show-pos script.fl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline code instead of reading from a file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show each word's line:column")
}

func runLex(_ *cobra.Command, args []string) error {
	src, path, err := readSource(lexEval, args)
	if err != nil {
		return err
	}

	words, errs := lexer.New(path, src).Words()
	for _, w := range words {
		if lexShowPos {
			fmt.Printf("%-20q @%s\n", w.Text, w.Pos.String())
		} else {
			fmt.Printf("%q\n", w.Text)
		}
	}

	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return fmt.Errorf("%d lex error(s)", len(errs))
	}
	return nil
}

// readSource resolves the input source for lex/parse/run: an inline
// -e/--eval string, a single file argument, or stdin when neither is
// given. The returned path is used as the source name in diagnostics.
func readSource(eval string, args []string) (src, path string, err error) {
	switch {
	case eval != "":
		return eval, "<eval>", nil
	case len(args) == 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("read %s: %w", args[0], err)
		}
		return string(data), args[0], nil
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
}
