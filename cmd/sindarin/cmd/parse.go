package cmd

import (
	"fmt"

	"github.com/realorko/sindarin/internal/ast"
	"github.com/realorko/sindarin/pkg/compiler"
	"github.com/spf13/cobra"
)

var (
	parseEvalExpr string
	dumpAST       bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Sindarin file or expression",
	Long: `Parse a Sindarin program and report syntax errors, or optionally
dump the resulting module's top-level statement shape.

Examples:
  sindarin parse script.sn
  sindarin parse -e "fn add(a: int, b: int): int =>\n  return a + b"
  sindarin parse --dump-ast script.sn`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline code instead of reading from file")
	parseCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the top-level statements of the parsed module")
}

func parseScript(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(parseEvalExpr, args)
	if err != nil {
		return err
	}

	e := compiler.New()
	mod, perr := e.Parse(input, filename)
	if perr != nil {
		return perr
	}

	fmt.Printf("parsed %s: %d top-level statement(s)\n", filename, len(mod.Statements))
	if dumpAST {
		dumpModule(mod)
	}
	return nil
}

func dumpModule(mod *ast.Module) {
	for i, st := range mod.Statements {
		fmt.Printf("  [%d] %T @%s\n", i, st, st.Pos())
	}
}
