package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information, set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	includePaths []string
	maxDepth     int
	configPath   string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "flc",
	Short: "An interpreter for a small expression-oriented dynamic language",
	Long: `flc runs, tokenizes, and parses programs written in a small
expression-oriented dynamic language: everything is an expression,
operators are ordinary functions resolved by multiple dispatch, and
` + "`import`" + ` loads other source files into the same global scope.`,
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

	rootCmd.PersistentFlags().StringArrayVarP(&includePaths, "include", "I", nil, "additional import search path (repeatable)")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", 0, "recursion depth limit (0: use config/default)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a .interpreter.yaml config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
