package main

import (
	"fmt"
	"os"

	"github.com/realorko/sindarin/cmd/sindarin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
