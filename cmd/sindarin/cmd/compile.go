package cmd

import (
	"fmt"

	"github.com/realorko/sindarin/pkg/compiler"
	"github.com/spf13/cobra"
)

var (
	compileEvalExpr   string
	compileSearchPath []string
	showStats         bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Run the full front-end pipeline on a Sindarin file or expression",
	Long: `Run lexing, parsing, (for files: import loading), type checking,
escape analysis, and optimization over a Sindarin program.

A bare expression passed via -e is compiled standalone with no import
resolution. A file argument is compiled with its imports recursively
resolved and spliced in first.

Examples:
  sindarin compile script.sn
  sindarin compile --stats script.sn
  sindarin compile --search-path ./lib --search-path ./vendor script.sn
  sindarin compile -e "fn f(x: int): int =>\n  return x + 0"`,
	Args: cobra.MaximumNArgs(1),
	RunE: compileScript,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileEvalExpr, "eval", "e", "", "compile inline code instead of reading from file")
	compileCmd.Flags().StringSliceVar(&compileSearchPath, "search-path", nil, "additional import search paths (repeatable, files only)")
	compileCmd.Flags().BoolVar(&showStats, "stats", false, "print optimizer counters on success")
}

func compileScript(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	opts := []compiler.Option{compiler.WithVerbose(verbose)}
	if len(compileSearchPath) > 0 {
		opts = append(opts, compiler.WithSearchPaths(compileSearchPath))
	}
	e := compiler.New(opts...)

	var program *compiler.Program
	var err error
	if compileEvalExpr != "" {
		program, err = e.Compile(compileEvalExpr, "<eval>")
	} else if len(args) == 1 {
		program, err = e.CompileFile(args[0])
	} else {
		return fmt.Errorf("either provide a file path or use -e for inline code")
	}

	if err != nil {
		if ce, ok := err.(*compiler.CompileError); ok {
			printDiagnostics(ce.Errors)
		}
		return err
	}

	fmt.Println("compiled successfully")
	for _, w := range program.Warnings {
		fmt.Printf("warning: %s\n", w.Error())
	}
	if showStats {
		fmt.Printf("optimizer: %d variable(s) removed, %d no-op(s) removed\n",
			program.Optimized.VariablesRemoved, program.Optimized.NoopsRemoved)
	}
	return nil
}
