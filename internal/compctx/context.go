// Package compctx carries the per-compilation state spec.md §9 says must
// never be process-global: a verbosity knob and a running error count,
// threaded explicitly through every pass (lexer, parser, loader, checker,
// escape analyzer, optimizer).
package compctx

import (
	"fmt"
	"io"
	"os"
)

// Context is passed by pointer through the whole pipeline. It is not
// safe for concurrent use — the pipeline is single-threaded (spec §5).
type Context struct {
	Verbose    bool
	ErrorCount int
	out        io.Writer
}

// New creates a Context writing trace output to os.Stderr.
func New(verbose bool) *Context {
	return &Context{Verbose: verbose, out: os.Stderr}
}

// NewWithWriter creates a Context writing trace output to w, for tests
// that want to capture trace output instead of letting it hit stderr.
func NewWithWriter(verbose bool, w io.Writer) *Context {
	return &Context{Verbose: verbose, out: w}
}

// Trace writes a formatted trace line when Verbose is set. This is the
// only logging this compiler core does; see SPEC_FULL.md's Ambient Stack
// section for why no logging library is used.
func (c *Context) Trace(format string, args ...any) {
	if !c.Verbose {
		return
	}
	fmt.Fprintf(c.out, format+"\n", args...)
}

// RecordError increments the running error count. Passes call this once
// per diagnostic they emit with error severity; warnings do not count.
func (c *Context) RecordError() {
	c.ErrorCount++
}

// HasErrors reports whether any pass has recorded an error yet.
func (c *Context) HasErrors() bool {
	return c.ErrorCount > 0
}
