// Package checker implements the type checker described in spec §4.G:
// type_check_module pushes a global scope, registers function
// declarations first so forward references resolve, then visits every
// top-level statement. type_check_stmt and type_check_expr dispatch by
// node kind.
//
// Grounded on the teacher's internal/semantic/analyzer.go: Analyze
// pushes scope and pre-registers declarations before visiting the
// program body, and errors accumulate as typed values (the teacher's
// *SemanticError) rather than being formatted immediately — this
// package's Error plays the same role, converted to an
// errors.Diagnostic only at the reporting boundary (pkg/compiler).
package checker

import (
	"fmt"

	"github.com/realorko/sindarin/internal/ast"
	"github.com/realorko/sindarin/internal/errors"
	"github.com/realorko/sindarin/internal/symbols"
	"github.com/realorko/sindarin/internal/types"
	"github.com/realorko/sindarin/pkg/token"
)

// ErrorKind classifies a checker Error, mirroring the teacher's split
// between a generic semantic error and the more specific resolution/
// type-mismatch cases surfaced in internal/semantic/errors.go.
type ErrorKind int

const (
	ResolutionError ErrorKind = iota
	TypeError
	ImportError
)

func (k ErrorKind) String() string {
	switch k {
	case ResolutionError:
		return "resolution error"
	case ImportError:
		return "import error"
	default:
		return "type error"
	}
}

// Error is the checker's internal structured error value. It is not an
// errors.Diagnostic: that conversion happens once, at the pipeline's
// reporting boundary, so every pass (lexer, parser, checker, escape
// analyzer) can accumulate its own typed errors independently.
type Error struct {
	Kind    ErrorKind
	Message string
	Pos     token.Position
}

func (e *Error) Error() string { return e.Message }

// ToDiagnostic converts an Error into the shared reporting type, given
// the original source text for the caret/context rendering.
func (e *Error) ToDiagnostic(source string) *errors.Diagnostic {
	return errors.New(e.Pos, e.Message, source)
}

// Checker walks a type-checked module, threading a single symbols.Table
// through every scope and accumulating Errors rather than stopping at
// the first one (spec §8 wants every checkable error reported in one
// pass, not just the first).
type Checker struct {
	table       *symbols.Table
	errs        []*Error
	returnStack []*types.Type
}

// New creates a Checker with a fresh global scope.
func New() *Checker {
	return &Checker{table: symbols.New()}
}

// Errors returns every Error accumulated so far.
func (c *Checker) Errors() []*Error { return c.errs }

func (c *Checker) addError(kind ErrorKind, pos token.Position, format string, args ...any) {
	c.errs = append(c.errs, &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos})
}

// CheckModule type-checks every top-level statement in mod (spec
// §4.G's type_check_module driver).
func (c *Checker) CheckModule(mod *ast.Module) {
	c.registerFunctions(mod.Statements)
	for _, stmt := range mod.Statements {
		c.checkStmt(stmt)
	}
}

// registerFunctions pre-registers every function declaration in stmts
// into the current scope before any of them is body-checked, so a
// function may call another declared later in the same scope.
func (c *Checker) registerFunctions(stmts []ast.Statement) {
	for _, stmt := range stmts {
		fn, ok := stmt.(*ast.FunctionStmt)
		if !ok {
			continue
		}
		typ := c.functionType(fn)
		if _, ok := c.table.AddFunction(fn.Name, typ, fn.Modifier, fn.Modifier); !ok {
			c.addError(ResolutionError, fn.Pos(), "function %q is already declared in this scope", fn.Name)
		}
	}
}

func (c *Checker) functionType(fn *ast.FunctionStmt) *types.Type {
	params := make([]*types.Type, len(fn.Params))
	quals := make([]types.MemQual, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = c.resolveTypeExpr(p.Type)
		quals[i] = p.Qual
	}
	ret := c.resolveTypeExpr(fn.ReturnType)
	return types.NewFunction(ret, params, quals, false)
}

// resolveTypeExpr turns a parsed TypeExpression into a *types.Type,
// stamping the result back onto the node the way the teacher's checker
// populates a type-annotation node's resolved field in place.
func (c *Checker) resolveTypeExpr(te *ast.TypeExpression) *types.Type {
	if te == nil {
		return types.VoidType
	}
	var t *types.Type
	switch te.Kind {
	case types.Array:
		t = types.NewArray(c.resolveTypeExpr(te.ElemType))
	case types.Function:
		params := make([]*types.Type, len(te.FuncParams))
		for i, p := range te.FuncParams {
			params[i] = c.resolveTypeExpr(p)
		}
		t = types.NewFunction(c.resolveTypeExpr(te.FuncReturn), params, nil, false)
	default:
		t = types.Primitive(te.Kind)
	}
	te.Resolved = t
	return t
}

// typeAssignable implements spec §3.3's coercion rules plus the
// empty-array-to-typed-array coercion spec §4.G.1 calls for at the
// variable/parameter boundary, on top of types.Type.AssignableTo.
func (c *Checker) typeAssignable(from, to *types.Type) bool {
	if from == nil || to == nil {
		return false
	}
	// any is the wildcard element type array.push/pop are declared with
	// in internal/builtins (spec has no generics, so this is the escape
	// hatch both directions: anything fits an any-typed parameter, and
	// an any-typed result (e.g. pop()'s return) fits any destination).
	if from.Kind == types.Any || to.Kind == types.Any {
		return true
	}
	if from.Kind == types.Array && to.Kind == types.Array && from.Elem.Kind == types.Nil {
		return true
	}
	return from.AssignableTo(to)
}

func isNumeric(t *types.Type) bool { return t != nil && numericRank(t.Kind) > 0 }

func numericRank(k types.Kind) int {
	switch k {
	case types.Int:
		return 1
	case types.Long:
		return 2
	case types.Double:
		return 3
	default:
		return 0
	}
}
