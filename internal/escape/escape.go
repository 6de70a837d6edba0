// Package escape implements the memory-qualifier / arena-ownership pass
// described in spec §4.H: it runs after the type checker, over the same
// AST, and is responsible for three things the checker deliberately
// leaves to it: computing each function's effective (post-promotion)
// modifier, enforcing that an escaping value never crosses out of a
// `private` block into an outer-owned symbol, and tracking the
// freeze/unfreeze lifecycle of thread_spawn/thread_sync handles.
//
// Grounded on the teacher's internal/semantic pass structure (a second
// walk of the already-typed AST, reusing the same symbol-table shape as
// the checker) generalized to a concern DWScript has no equivalent
// of — this package and internal/optimizer are the two passes spec.md
// introduces that have no direct teacher analog.
package escape

import (
	"fmt"

	"github.com/realorko/sindarin/internal/ast"
	"github.com/realorko/sindarin/internal/errors"
	"github.com/realorko/sindarin/internal/symbols"
	"github.com/realorko/sindarin/internal/types"
	"github.com/realorko/sindarin/pkg/token"
)

// Severity distinguishes a hard error from the one warning-level rule
// spec §4.H calls out (an unconsumed pending spawn at scope exit).
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Error is the escape analyzer's internal diagnostic value, converted to
// an errors.Diagnostic only at the reporting boundary, the same
// convention internal/checker.Error uses.
type Error struct {
	Severity Severity
	Message  string
	Pos      token.Position
}

func (e *Error) Error() string { return e.Message }

func (e *Error) ToDiagnostic(source string) *errors.Diagnostic {
	if e.Severity == SeverityWarning {
		return errors.NewWarning(e.Pos, e.Message, source)
	}
	return errors.New(e.Pos, e.Message, source)
}

// Analyzer walks a module that has already passed type checking,
// threading its own symbols.Table (a fresh instance — it does not share
// the checker's) through every scope.
type Analyzer struct {
	table *symbols.Table
	errs  []*Error
}

// New creates an Analyzer with a fresh global scope.
func New() *Analyzer { return &Analyzer{table: symbols.New()} }

// Errors returns every diagnostic accumulated so far, errors and
// warnings together, in the order they were raised.
func (a *Analyzer) Errors() []*Error { return a.errs }

func (a *Analyzer) addError(pos token.Position, format string, args ...any) {
	a.errs = append(a.errs, &Error{Severity: SeverityError, Message: fmt.Sprintf(format, args...), Pos: pos})
}

func (a *Analyzer) addWarning(pos token.Position, format string, args ...any) {
	a.errs = append(a.errs, &Error{Severity: SeverityWarning, Message: fmt.Sprintf(format, args...), Pos: pos})
}

// AnalyzeModule runs the pass over every top-level statement.
func (a *Analyzer) AnalyzeModule(mod *ast.Module) {
	a.registerFunctions(mod.Statements)
	for _, stmt := range mod.Statements {
		a.analyzeStmt(stmt)
	}
}

// registerFunctions pre-registers every function declaration in stmts,
// the same forward-reference accommodation internal/checker makes, so a
// spawn or call can resolve a callee's parameter qualifiers regardless
// of declaration order.
func (a *Analyzer) registerFunctions(stmts []ast.Statement) {
	for _, stmt := range stmts {
		fn, ok := stmt.(*ast.FunctionStmt)
		if !ok {
			continue
		}
		a.table.AddFunction(fn.Name, a.functionType(fn), fn.Modifier, fn.Modifier)
	}
}

// functionType rebuilds a function's Type from its already-checked
// TypeExpressions: every TypeExpression.Resolved field was populated by
// internal/checker.resolveTypeExpr on the prior pass, so this is a plain
// read, not a second resolution.
func (a *Analyzer) functionType(fn *ast.FunctionStmt) *types.Type {
	params := make([]*types.Type, len(fn.Params))
	quals := make([]types.MemQual, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = resolvedOf(p.Type)
		quals[i] = p.Qual
	}
	return types.NewFunction(resolvedOf(fn.ReturnType), params, quals, false)
}

func resolvedOf(te *ast.TypeExpression) *types.Type {
	if te == nil {
		return types.VoidType
	}
	if te.Resolved != nil {
		return te.Resolved
	}
	return types.Primitive(te.Kind)
}

// isEscaping reports whether a value of kind k is a reference into an
// arena (spec §4.H's implicit-promotion trigger list: function, str, or
// array), as opposed to a value type that is safe to return out of a
// default function's own child arena.
func isEscaping(k types.Kind) bool {
	return k == types.Array || k == types.Function || k == types.Str
}
