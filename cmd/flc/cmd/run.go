package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/flc-lang/flc/internal/builtins"
	"github.com/flc-lang/flc/internal/config"
	"github.com/flc-lang/flc/internal/diag"
	"github.com/flc-lang/flc/internal/interp"
	"github.com/flc-lang/flc/internal/loader"
	"github.com/flc-lang/flc/internal/runtime"
	"github.com/spf13/cobra"
)

var (
	runEval    string
	runDumpAST bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a program",
	Long: `Execute a program from a file or an inline expression.

Examples:
  flc run script.fl
  flc run -e "println(1 + 2)"
  flc run --dump-ast script.fl
  flc run -I ./lib script.fl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runEval, "eval", "e", "", "evaluate inline code instead of reading from a file")
	runCmd.Flags().BoolVar(&runDumpAST, "dump-ast", false, "dump the parsed expression tree before running")
}

func runProgram(_ *cobra.Command, args []string) error {
	src, path, err := readSource(runEval, args)
	if err != nil {
		return err
	}

	sourceDir := "."
	if path != "<eval>" && path != "<stdin>" {
		sourceDir = filepath.Dir(path)
	}

	cfg, err := loadConfig(sourceDir)
	if err != nil {
		return err
	}

	expr, errs := parseSource(path, src)
	if len(errs) > 0 {
		fmt.Fprint(os.Stderr, diag.FormatErrors(errs, true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if runDumpAST {
		dumpNode(expr, 0)
		fmt.Println()
	}

	global := runtime.NewGlobalContext(cfg.MaxDepth)
	in := interp.New(global)
	ld := loader.New(in, global, sourceDir, cfg.Include)
	builtins.Register(global, in, builtins.Options{Stdout: os.Stdout, Importer: ld})

	_, err = in.Execute(global, expr)
	if err != nil {
		if exc, ok := err.(*interp.Exception); ok {
			fmt.Fprint(os.Stderr, diag.FormatException(exc, src))
			return fmt.Errorf("uncaught exception")
		}
		return err
	}
	return nil
}

// loadConfig merges the optional .interpreter.yaml found next to the
// program (or at --config) with the --include/--max-depth flags, the
// latter always winning (config.Config.Override).
func loadConfig(sourceDir string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadDefault(sourceDir)
	}
	if err != nil {
		return nil, err
	}
	return cfg.Override(includePaths, maxDepth), nil
}
