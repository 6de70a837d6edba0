package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "sindarin",
	Short: "Sindarin front-end: lexer, parser, checker, escape analyzer, optimizer",
	Long: `sindarin is the compiler front end for the Sindarin language: an
indentation-sensitive, statically-typed imperative language with arena-scoped
memory qualifiers (default/shared/private) instead of garbage collection.

This tool exposes each pipeline stage as its own subcommand so the front end
can be exercised and debugged one pass at a time.`,
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

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose trace output")
}
