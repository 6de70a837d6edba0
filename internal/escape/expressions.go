package escape

import (
	"github.com/realorko/sindarin/internal/ast"
	"github.com/realorko/sindarin/internal/symbols"
	"github.com/realorko/sindarin/internal/types"
	"github.com/realorko/sindarin/pkg/token"
)

// analyzeExpr recurses through an already-typed expression tree, looking
// only for the three things this pass cares about: writes to a symbol
// (for the frozen-argument and private-escape checks), thread_spawn/
// thread_sync handles, and nested function/lambda bodies that need their
// own scope.
func (a *Analyzer) analyzeExpr(e ast.Expression) {
	if e == nil {
		return
	}
	switch expr := e.(type) {
	case *ast.AssignExpr:
		a.analyzeExpr(expr.Target)
		a.analyzeExpr(expr.Value)
		a.checkWrite(expr.Target, expr.Value.GetType(), expr.Pos())
	case *ast.IndexAssignExpr:
		a.analyzeExpr(expr.Container)
		a.analyzeExpr(expr.Index)
		a.analyzeExpr(expr.Value)
		a.checkWrite(expr.Container, expr.Value.GetType(), expr.Pos())
	case *ast.IncrementExpr:
		a.analyzeExpr(expr.Target)
		a.checkWrite(expr.Target, nil, expr.Pos())
	case *ast.DecrementExpr:
		a.analyzeExpr(expr.Target)
		a.checkWrite(expr.Target, nil, expr.Pos())
	case *ast.BinaryExpr:
		a.analyzeExpr(expr.Left)
		a.analyzeExpr(expr.Right)
	case *ast.UnaryExpr:
		a.analyzeExpr(expr.Operand)
	case *ast.ArrayExpr:
		for _, el := range expr.Elements {
			a.analyzeExpr(el)
		}
	case *ast.ArrayAccessExpr:
		a.analyzeExpr(expr.Array)
		a.analyzeExpr(expr.Index)
	case *ast.ArraySliceExpr:
		a.analyzeExpr(expr.Array)
		a.analyzeExpr(expr.Start)
		a.analyzeExpr(expr.End)
	case *ast.RangeExpr:
		a.analyzeExpr(expr.Start)
		a.analyzeExpr(expr.End)
	case *ast.SpreadExpr:
		a.analyzeExpr(expr.Value)
	case *ast.InterpolatedExpr:
		for _, part := range expr.Parts {
			if part.Expr != nil {
				a.analyzeExpr(part.Expr)
			}
		}
	case *ast.MemberExpr:
		a.analyzeExpr(expr.Receiver)
	case *ast.LambdaExpr:
		a.analyzeLambda(expr)
	case *ast.CallExpr:
		a.analyzeExpr(expr.Callee)
		for _, arg := range expr.Args {
			a.analyzeExpr(arg)
		}
	case *ast.StaticCallExpr:
		for _, arg := range expr.Args {
			a.analyzeExpr(arg)
		}
	case *ast.SizedArrayAllocExpr:
		a.analyzeExpr(expr.Size)
		if expr.Default != nil {
			a.analyzeExpr(expr.Default)
		}
	case *ast.ThreadSpawnExpr:
		a.analyzeExpr(expr.Callee)
		for _, arg := range expr.Args {
			a.analyzeExpr(arg)
		}
	case *ast.ThreadSyncExpr:
		a.analyzeThreadSync(expr)
	default:
		// VariableExpr, LiteralExpr: leaves, nothing to recurse into.
	}
}

// analyzeLambda gives a lambda body its own scope, the way
// internal/checker.checkLambda does, using the function type the
// checker already stamped on the lambda (lam.GetType()) to recover
// param types the checker back-inferred rather than re-deriving them.
func (a *Analyzer) analyzeLambda(lam *ast.LambdaExpr) {
	fnType := lam.GetType()
	a.table.PushScope()
	for i, p := range lam.Params {
		pt := types.AnyType
		if fnType != nil && i < len(fnType.Params) {
			pt = fnType.Params[i]
		}
		a.table.AddSymbol(p.Name, symbols.KindParam, pt, p.Qual)
	}
	a.registerFunctions(lam.Body)
	for _, st := range lam.Body {
		a.analyzeStmt(st)
	}
	a.checkPendingAtScopeExit()
	a.table.PopScope()
}

// checkWrite implements the two write-time rules spec §4.H enforces:
// writing to a symbol frozen by a pending spawn is always an error, and
// (while inside a private block) writing an escaping-type value into a
// symbol owned by an outer scope is an escape-violation.
func (a *Analyzer) checkWrite(target ast.Expression, valueType *types.Type, pos token.Position) {
	v, ok := target.(*ast.VariableExpr)
	if !ok {
		return
	}
	sym, ok := a.table.Lookup(v.Name)
	if !ok {
		return
	}
	if sym.Frozen {
		a.addError(pos, "%q is frozen by a pending thread_spawn and cannot be written to until sync", sym.Name)
	}
	if valueType != nil && isEscaping(valueType.Kind) && a.table.ArenaDepth() > 0 && sym.OwnerDepth < a.table.ArenaDepth() {
		a.addError(pos, "escape-violation: %s value assigned into %q, which is owned by an outer scope, from inside a private block", valueType, sym.Name)
	}
}
