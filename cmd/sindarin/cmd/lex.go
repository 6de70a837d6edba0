package cmd

import (
	"fmt"
	"os"

	"github.com/realorko/sindarin/internal/lexer"
	"github.com/realorko/sindarin/pkg/token"
	"github.com/spf13/cobra"
)

var (
	lexEvalExpr string
	showPos     bool
	showKind    bool
	onlyErrors  bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Sindarin file or expression",
	Long: `Tokenize (lex) a Sindarin program and print the resulting tokens.

Examples:
  # Tokenize a script file
  sindarin lex script.sn

  # Tokenize inline code
  sindarin lex -e "var x: int = 42"

  # Show token kinds and positions
  sindarin lex --show-kind --show-pos script.sn

  # Show only illegal tokens
  sindarin lex --only-errors script.sn`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showKind, "show-kind", false, "show token kind names")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only illegal tokens")
}

func lexScript(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(lexEvalExpr, args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("Tokenizing: %s\n", filename)
		fmt.Printf("Input length: %d bytes\n", len(input))
		fmt.Println("---")
	}

	l := lexer.New(input, filename)
	count := 0
	for {
		tok := l.NextToken()
		if !onlyErrors {
			printToken(tok)
		}
		count++
		if tok.Kind == token.EOF {
			break
		}
	}

	errs := l.Errors()
	if onlyErrors {
		for _, e := range errs {
			fmt.Printf("%s: %s\n", e.Pos, e.Message)
		}
	}

	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", count)
		if len(errs) > 0 {
			fmt.Printf("Errors: %d\n", len(errs))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("lexing reported %d error(s)", len(errs))
	}
	return nil
}

func printToken(tok token.Token) {
	var output string
	if showKind {
		output = fmt.Sprintf("[%-12s]", tok.Kind)
	}
	if tok.Literal == "" {
		output += fmt.Sprintf(" %s", tok.Kind)
	} else {
		output += fmt.Sprintf(" %q", tok.Literal)
	}
	if showPos {
		output += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	fmt.Println(output)
}

// readSource determines the input source the same way across every
// subcommand: -e for inline code, a single positional file argument, or
// an error if neither is given.
func readSource(evalExpr string, args []string) (input, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, rerr := os.ReadFile(args[0])
		if rerr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], rerr)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline code")
}
