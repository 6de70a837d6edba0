// Package loader implements spec §4.J's module loader: it lexes and
// parses a root source file, recursively resolves every import,
// detects import cycles, and splices non-namespaced imports' top-level
// declarations into the importing module so the checker sees a single
// flattened program.
//
// Grounded on the teacher's internal/units.UnitRegistry: the same
// loading map[string]bool cycle guard, the same load-once cache keyed
// by resolved path, and the same "search path list, first match wins"
// resolution FindUnit implements — adapted from unit-name lookup to
// filesystem import-path lookup, since Sindarin imports name files, not
// Pascal-style unit identifiers.
package loader

import (
	"fmt"
	"path/filepath"

	"github.com/realorko/sindarin/internal/arena"
	"github.com/realorko/sindarin/internal/ast"
	"github.com/realorko/sindarin/internal/compctx"
	"github.com/realorko/sindarin/internal/errors"
	"github.com/realorko/sindarin/internal/lexer"
	"github.com/realorko/sindarin/internal/parser"
	"github.com/realorko/sindarin/pkg/token"
)

// ErrorKind classifies a loader diagnostic. Per spec §7's error
// taxonomy, an import cycle is a resolution error, on par with the
// checker's own unknown-identifier and duplicate-definition kinds.
type ErrorKind int

const (
	// NotFound means no search path held a file matching the import.
	NotFound ErrorKind = iota
	// CyclicImport means the module is already on the loading stack.
	CyclicImport
	// ParseError means the imported file failed to lex or parse.
	ParseError
)

func (k ErrorKind) String() string {
	switch k {
	case CyclicImport:
		return "cyclic-import"
	case ParseError:
		return "parse error"
	default:
		return "module not found"
	}
}

// Error is a single loader diagnostic.
type Error struct {
	Kind    ErrorKind
	Message string
	Pos     token.Position
}

func (e *Error) Error() string { return e.Message }

// ToDiagnostic converts a loader error to the shared diagnostic format
// (spec §6.3), the same boundary internal/checker.Error and
// internal/escape.Error cross.
func (e *Error) ToDiagnostic(source string) *errors.Diagnostic {
	return errors.New(e.Pos, e.Message, source)
}

// Loader resolves and caches modules across a single compilation.
type Loader struct {
	searchPaths []string
	loading     map[string]bool
	loaded      map[string]*ast.Module
	ctx         *compctx.Context
}

// New creates a Loader searching paths in order, falling back to the
// current directory when none are given (mirroring NewUnitRegistry's
// default). ctx may be nil, in which case loading proceeds silently.
func New(searchPaths []string, ctx *compctx.Context) *Loader {
	if len(searchPaths) == 0 {
		searchPaths = []string{"."}
	}
	if ctx == nil {
		ctx = compctx.New(false)
	}
	return &Loader{
		searchPaths: searchPaths,
		loading:     make(map[string]bool),
		loaded:      make(map[string]*ast.Module),
		ctx:         ctx,
	}
}

// Load lexes, parses, and resolves rootPath, returning the flattened
// root module (spec §4.J) or the diagnostics collected along the way.
// Loading stops at the first file that fails to lex or parse, but a
// resolution failure on one import does not prevent sibling imports
// from being attempted, so a caller sees every broken import at once.
func (l *Loader) Load(rootPath string) (*ast.Module, []*Error) {
	abs, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, []*Error{{Kind: NotFound, Message: fmt.Sprintf("module %q: %v", rootPath, err)}}
	}
	return l.loadFile(abs)
}

func (l *Loader) loadFile(absPath string) (*ast.Module, []*Error) {
	if cached, ok := l.loaded[absPath]; ok {
		l.ctx.Trace("loader: cache hit for %s", absPath)
		return cached, nil
	}
	if l.loading[absPath] {
		return nil, []*Error{{
			Kind:    CyclicImport,
			Message: fmt.Sprintf("cyclic-import: %s is already being loaded", absPath),
			Pos:     token.Position{File: absPath},
		}}
	}
	l.loading[absPath] = true
	defer delete(l.loading, absPath)

	l.ctx.Trace("loader: reading %s", absPath)
	src, rerr := readFile(absPath)
	if rerr != nil {
		l.ctx.RecordError()
		return nil, []*Error{{Kind: NotFound, Message: rerr.Error(), Pos: token.Position{File: absPath}}}
	}

	mod, perrs := l.parse(absPath, src)
	if len(perrs) > 0 {
		for range perrs {
			l.ctx.RecordError()
		}
		return nil, perrs
	}

	dir := filepath.Dir(absPath)
	var errs []*Error
	var spliced []ast.Statement
	for _, imp := range mod.Imports {
		impAbs, rerr := resolve(imp.Path, dir, l.searchPaths)
		if rerr != nil {
			errs = append(errs, &Error{Kind: NotFound, Message: rerr.Error(), Pos: imp.Pos()})
			continue
		}
		impMod, ierrs := l.loadFile(impAbs)
		errs = append(errs, ierrs...)
		if impMod == nil {
			continue
		}
		imp.Module = impMod
		if imp.Namespace == "" {
			spliced = append(spliced, topLevelDecls(impMod)...)
		}
	}
	if len(errs) > 0 {
		for range errs {
			l.ctx.RecordError()
		}
		return nil, errs
	}

	// Non-namespaced imports splice before the importer's own
	// statements (spec §4.J pass 3); the import statement itself stays
	// put so the checker's non-namespaced merge path still has it to walk.
	if len(spliced) > 0 {
		mod.Statements = append(spliced, mod.Statements...)
	}

	l.loaded[absPath] = mod
	return mod, nil
}

func (l *Loader) parse(path string, src string) (*ast.Module, []*Error) {
	lx := lexer.New(src, path)
	p := parser.New(lx, arena.New())
	mod := p.ParseModule(path)

	var errs []*Error
	for _, le := range lx.Errors() {
		if le.Warning {
			continue
		}
		errs = append(errs, &Error{Kind: ParseError, Message: le.Message, Pos: le.Pos})
	}
	for _, pe := range p.Errors() {
		errs = append(errs, &Error{Kind: ParseError, Message: pe.Message, Pos: pe.Pos})
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return mod, nil
}

// topLevelDecls returns the function and var_decl statements of mod
// eligible for splicing into a non-namespaced importer (spec §4.J pass
// 3). Nested imports of mod were already spliced into mod itself when
// mod was loaded, so they travel along transitively.
func topLevelDecls(mod *ast.Module) []ast.Statement {
	var decls []ast.Statement
	for _, st := range mod.Statements {
		switch st.(type) {
		case *ast.FunctionStmt, *ast.VarDeclStmt:
			decls = append(decls, st)
		}
	}
	return decls
}
