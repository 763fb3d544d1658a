package cmd

import (
	"fmt"
	"os"

	"github.com/flc-lang/flc/internal/ast"
	"github.com/flc-lang/flc/internal/diag"
	"github.com/flc-lang/flc/internal/lexer"
	"github.com/flc-lang/flc/internal/parser"
	"github.com/spf13/cobra"
)

var (
	parseEval    string
	parseDumpAST bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a program and display its expression tree",
	Long: `Parse a program into its expression tree and print it.

If no file is given, reads from stdin. By default prints the tree's
source-like rendering; --dump-ast instead prints its shape, one node
per line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline code instead of reading from a file")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the expression tree's shape instead of its source rendering")
}

func runParse(_ *cobra.Command, args []string) error {
	src, path, err := readSource(parseEval, args)
	if err != nil {
		return err
	}

	expr, errs := parseSource(path, src)
	if len(errs) > 0 {
		fmt.Fprint(os.Stderr, diag.FormatErrors(errs, true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if parseDumpAST {
		dumpNode(expr, 0)
	} else {
		fmt.Println(expr.String())
	}
	return nil
}

// parseSource runs the lex/parse pipeline shared by the parse and run
// commands, converting lexer and parser errors to diag.SourceError
// so they share one rendering.
func parseSource(path, src string) (ast.Expression, []*diag.SourceError) {
	words, lexErrs := lexer.New(path, src).Words()
	if len(lexErrs) > 0 {
		errs := make([]*diag.SourceError, len(lexErrs))
		for i, e := range lexErrs {
			errs[i] = diag.New(e.Pos, e.Message, src)
		}
		return nil, errs
	}

	p := parser.New(words)
	expr, err := p.ParseProgram()
	if err != nil {
		switch e := err.(type) {
		case *parser.Error:
			return nil, []*diag.SourceError{diag.New(e.Pos, e.Message, src)}
		case *parser.ErrIncomplete:
			return nil, []*diag.SourceError{diag.New(e.Pos, e.Error(), src)}
		default:
			return nil, []*diag.SourceError{diag.New(words[0].Pos, err.Error(), src)}
		}
	}
	if perrs := p.Errors(); len(perrs) > 0 {
		errs := make([]*diag.SourceError, len(perrs))
		for i, e := range perrs {
			errs[i] = diag.New(e.Pos, e.Message, src)
		}
		return nil, errs
	}
	return expr, nil
}

func dumpNode(node ast.Expression, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}

	switch n := node.(type) {
	case *ast.Symbol:
		fmt.Printf("%sSymbol: %s\n", pad, n.Name)
	case *ast.Tuple:
		fmt.Printf("%sTuple (%d)\n", pad, len(n.Objects))
		for _, o := range n.Objects {
			dumpNode(o, indent+1)
		}
	case *ast.FunctionCall:
		fmt.Printf("%sFunctionCall\n", pad)
		fmt.Printf("%s  Function:\n", pad)
		dumpNode(n.Function, indent+2)
		fmt.Printf("%s  Arguments:\n", pad)
		dumpNode(n.Arguments, indent+2)
	case *ast.FunctionDefinition:
		fmt.Printf("%sFunctionDefinition\n", pad)
		fmt.Printf("%s  Parameters:\n", pad)
		dumpNode(n.Parameters, indent+2)
		if n.Filter != nil {
			fmt.Printf("%s  Filter:\n", pad)
			dumpNode(n.Filter, indent+2)
		}
		fmt.Printf("%s  Body:\n", pad)
		dumpNode(n.Body, indent+2)
	case *ast.Property:
		fmt.Printf("%sProperty: %s\n", pad, n.Name)
		dumpNode(n.Object, indent+1)
	default:
		fmt.Printf("%s%T: %s\n", pad, node, node.String())
	}
}
