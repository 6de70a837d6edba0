package cmd

import (
	"fmt"

	"github.com/realorko/sindarin/pkg/compiler"
	"github.com/spf13/cobra"
)

var checkEvalExpr string

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Type-check and escape-analyze a Sindarin file or expression",
	Long: `Run the type checker and escape analyzer over a Sindarin program and
report any diagnostics. Unlike compile, check never runs the optimizer.

Examples:
  sindarin check script.sn
  sindarin check -e "fn f(): int =>\n  return \"nope\""`,
	Args: cobra.MaximumNArgs(1),
	RunE: checkScript,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkEvalExpr, "eval", "e", "", "check inline code instead of reading from file")
}

func checkScript(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(checkEvalExpr, args)
	if err != nil {
		return err
	}

	e := compiler.New()
	mod, perr := e.Parse(input, filename)
	if perr != nil {
		return perr
	}

	if cerr := e.Check(mod); cerr != nil {
		if ce, ok := cerr.(*compiler.CompileError); ok {
			printDiagnostics(ce.Errors)
		}
		return cerr
	}

	fmt.Printf("%s: no errors\n", filename)
	return nil
}

func printDiagnostics(errs []*compiler.Error) {
	for _, e := range errs {
		fmt.Println(e.Error())
	}
}
