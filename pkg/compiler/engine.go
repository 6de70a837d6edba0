package compiler

import (
	"github.com/realorko/sindarin/internal/arena"
	"github.com/realorko/sindarin/internal/ast"
	"github.com/realorko/sindarin/internal/checker"
	"github.com/realorko/sindarin/internal/compctx"
	"github.com/realorko/sindarin/internal/escape"
	"github.com/realorko/sindarin/internal/lexer"
	"github.com/realorko/sindarin/internal/loader"
	"github.com/realorko/sindarin/internal/optimizer"
	"github.com/realorko/sindarin/internal/parser"
	"github.com/realorko/sindarin/pkg/token"
)

// Option configures an Engine, following the functional-options shape
// the teacher's own engine constructor uses (WithCompileMode and
// friends in the filtered pkg/dwscript implementation).
type Option func(*Engine)

// WithSearchPaths sets the directories CompileFile's loader searches
// for imports, beyond the importing file's own directory.
func WithSearchPaths(paths []string) Option {
	return func(e *Engine) { e.searchPaths = paths }
}

// WithVerbose turns on compctx.Context trace output for every pass.
func WithVerbose(verbose bool) Option {
	return func(e *Engine) { e.ctx = compctx.New(verbose) }
}

// Engine runs the full Sindarin front end: lex, parse, (optionally)
// resolve imports, type-check, escape-analyze, and optimize.
type Engine struct {
	searchPaths []string
	ctx         *compctx.Context
}

// New creates an Engine with default options (no extra search paths,
// verbosity off).
func New(opts ...Option) *Engine {
	e := &Engine{ctx: compctx.New(false)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Program is the result of a successful Compile/CompileFile run.
type Program struct {
	Module    *ast.Module
	Optimized optimizer.Counters
	// Warnings carries every warning-severity diagnostic the checking
	// stage raised (e.g. escape's unconsumed-pending-spawn rule) even
	// though none of them stopped compilation.
	Warnings []*Error
}

// Parse lexes and parses source, stopping before any semantic pass.
// filename is used only for diagnostic positions.
func (e *Engine) Parse(source, filename string) (*ast.Module, error) {
	lx := lexer.New(source, filename)
	p := parser.New(lx, arena.New())
	mod := p.ParseModule(filename)

	if errs := lexErrors(lx); len(errs) > 0 {
		return nil, &CompileError{Stage: "lexing", Errors: errs}
	}
	if errs := parseErrors(p); len(errs) > 0 {
		return nil, &CompileError{Stage: "parsing", Errors: errs}
	}
	return mod, nil
}

// Check runs the type checker and escape analyzer over mod, in that
// order (spec §4.H runs after §4.G). Both passes' diagnostics are
// reported together under a single "checking" stage so a caller sees
// every problem the module has at once, not just the first pass's.
// Warning-only diagnostics (e.g. escape's unconsumed-pending-spawn
// rule) are discarded here; use Compile/CompileFile to get them back
// via Program.Warnings.
func (e *Engine) Check(mod *ast.Module) error {
	diags, err := e.check(mod)
	_ = diags
	return err
}

func (e *Engine) check(mod *ast.Module) ([]*Error, error) {
	c := checker.New()
	c.CheckModule(mod)

	var diags []*Error
	for _, ce := range c.Errors() {
		diags = append(diags, fromPosition(ce.Pos, ce.Message, SeverityError, ""))
	}

	a := escape.New()
	a.AnalyzeModule(mod)
	for _, ae := range a.Errors() {
		sev := SeverityError
		if ae.Severity == escape.SeverityWarning {
			sev = SeverityWarning
		}
		diags = append(diags, fromPosition(ae.Pos, ae.Message, sev, ""))
	}

	if hasError(diags) {
		return diags, &CompileError{Stage: "checking", Errors: diags}
	}
	return diags, nil
}

// Compile parses, checks, and optimizes a single source string with no
// import resolution — imports in source are left unresolved
// (ImportStmt.Module stays nil), matching internal/checker's documented
// behavior for a module constructed outside the loader.
func (e *Engine) Compile(source, filename string) (*Program, error) {
	mod, err := e.Parse(source, filename)
	if err != nil {
		return nil, err
	}
	diags, err := e.check(mod)
	if err != nil {
		return nil, err
	}
	opt := optimizer.New()
	opt.Optimize(mod)
	return &Program{Module: mod, Optimized: opt.Counters, Warnings: warningsOf(diags)}, nil
}

// CompileFile loads rootPath and every module it transitively imports,
// then checks and optimizes the single flattened result (spec §4.J).
func (e *Engine) CompileFile(rootPath string) (*Program, error) {
	ld := loader.New(e.searchPaths, e.ctx)
	mod, lerrs := ld.Load(rootPath)
	if len(lerrs) > 0 {
		errs := make([]*Error, 0, len(lerrs))
		for _, le := range lerrs {
			errs = append(errs, fromPosition(le.Pos, le.Message, SeverityError, le.Kind.String()))
		}
		return nil, &CompileError{Stage: "loading", Errors: errs}
	}
	diags, err := e.check(mod)
	if err != nil {
		return nil, err
	}
	opt := optimizer.New()
	opt.Optimize(mod)
	return &Program{Module: mod, Optimized: opt.Counters, Warnings: warningsOf(diags)}, nil
}

func fromPosition(pos token.Position, message string, severity ErrorSeverity, code string) *Error {
	return &Error{Message: message, Line: pos.Line, Column: pos.Column, Severity: severity, Code: code}
}

func warningsOf(diags []*Error) []*Error {
	var warnings []*Error
	for _, d := range diags {
		if d.IsWarning() {
			warnings = append(warnings, d)
		}
	}
	return warnings
}

func hasError(errs []*Error) bool {
	for _, e := range errs {
		if e.IsError() {
			return true
		}
	}
	return false
}

func lexErrors(lx *lexer.Lexer) []*Error {
	var errs []*Error
	for _, le := range lx.Errors() {
		sev := SeverityError
		if le.Warning {
			sev = SeverityWarning
		}
		errs = append(errs, fromPosition(le.Pos, le.Message, sev, ""))
	}
	return errs
}

func parseErrors(p *parser.Parser) []*Error {
	var errs []*Error
	for _, pe := range p.Errors() {
		errs = append(errs, fromPosition(pe.Pos, pe.Message, SeverityError, ""))
	}
	return errs
}
