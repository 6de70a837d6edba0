package escape

import (
	"github.com/realorko/sindarin/internal/ast"
	"github.com/realorko/sindarin/internal/symbols"
	"github.com/realorko/sindarin/internal/types"
)

// analyzeStmt dispatches by statement kind. Unlike internal/checker this
// pass does not re-derive types (the checker already stamped every
// expression's GetType()); it only tracks arena nesting, escape
// violations, and spawn/sync freeze bookkeeping.
func (a *Analyzer) analyzeStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		a.analyzeExpr(s.Expr)
	case *ast.VarDeclStmt:
		a.analyzeVarDecl(s)
	case *ast.FunctionStmt:
		a.analyzeFunctionStmt(s)
	case *ast.ReturnStmt:
		if s.Value != nil {
			a.analyzeExpr(s.Value)
		}
	case *ast.IfStmt:
		a.analyzeExpr(s.Condition)
		a.analyzeBlock(s.Then)
		if s.Else != nil {
			a.analyzeStmt(s.Else)
		}
	case *ast.WhileStmt:
		a.analyzeExpr(s.Condition)
		a.analyzeLoopBody(s.Body, s.Modifier)
	case *ast.ForStmt:
		a.table.PushScope()
		if s.Init != nil {
			a.analyzeStmt(s.Init)
		}
		if s.Condition != nil {
			a.analyzeExpr(s.Condition)
		}
		if s.Post != nil {
			a.analyzeStmt(s.Post)
		}
		a.analyzeLoopBody(s.Body, s.Modifier)
		a.checkPendingAtScopeExit()
		a.table.PopScope()
	case *ast.ForEachStmt:
		a.analyzeExpr(s.Iterable)
		elemType := types.AnyType
		if it := s.Iterable.GetType(); it != nil && it.Kind == types.Array {
			elemType = it.Elem
		}
		a.table.PushScope()
		a.table.AddSymbol(s.VarName, symbols.KindParam, elemType, types.MemDefault)
		a.analyzeLoopBody(s.Body, s.Modifier)
		a.checkPendingAtScopeExit()
		a.table.PopScope()
	case *ast.BlockStmt:
		a.analyzeBlock(s)
	case *ast.BreakStmt, *ast.ContinueStmt, *ast.ImportStmt:
		// No escape-analysis obligations: control-flow markers carry no
		// value, and imports are spliced by the loader before this pass
		// runs (spec §4.J) so their functions already appear as ordinary
		// top-level FunctionStmts by the time AnalyzeModule sees them.
	}
}

// analyzeLoopBody enters the loop body's own scope. Only the `private`
// modifier affects arena nesting for escape-enforcement purposes (spec
// §4.H's default-vs-shared loop-iteration rule is a runtime allocation
// strategy with no static counterpart once there is no codegen pass to
// drive; see DESIGN.md).
func (a *Analyzer) analyzeLoopBody(b *ast.BlockStmt, _ types.FuncModifier) {
	a.analyzeBlock(b)
}

// analyzeVarDecl handles the one case ordinary var-decl analysis cares
// about beyond recursing into the initializer: a thread_spawn
// initializer freezes its reference-like arguments (spec §4.H).
func (a *Analyzer) analyzeVarDecl(s *ast.VarDeclStmt) {
	if spawn, ok := s.Initializer.(*ast.ThreadSpawnExpr); ok {
		a.analyzeThreadSpawnDecl(s, spawn)
		return
	}
	if s.Initializer != nil {
		a.analyzeExpr(s.Initializer)
	}

	var typ *types.Type
	switch {
	case s.DeclaredType != nil && s.DeclaredType.Resolved != nil:
		typ = s.DeclaredType.Resolved
	case s.Initializer != nil:
		typ = s.Initializer.GetType()
	}
	if typ == nil {
		typ = types.VoidType
	}
	if sym, ok := a.table.AddSymbol(s.Name, symbols.KindLocal, typ, s.Qual); ok {
		sym.Pos = s.Pos()
	}
}

// analyzeBlock pushes a scope, entering a private arena only for a
// `private`-modifier block (spec §4.H: "shared block uses parent's
// arena", "default block [has its] own child arena" but is not itself
// subject to the escape-enforcement rule, which spec.md states only for
// private blocks).
func (a *Analyzer) analyzeBlock(b *ast.BlockStmt) {
	if b == nil {
		return
	}
	a.table.PushScope()
	if b.Modifier == types.ModPrivate {
		a.table.EnterArena()
	}
	a.registerFunctions(b.Statements)
	for _, st := range b.Statements {
		a.analyzeStmt(st)
	}
	a.checkPendingAtScopeExit()
	if b.Modifier == types.ModPrivate {
		a.table.ExitArena()
	}
	a.table.PopScope()
}

// checkPendingAtScopeExit implements spec §4.H's thread-safety warning:
// a variable holding a pending (unconsumed) spawn result must be
// consumed by thread_sync before its scope ends.
func (a *Analyzer) checkPendingAtScopeExit() {
	for _, sym := range a.table.CurrentScopeSymbols() {
		if sym.Pending {
			a.addWarning(sym.Pos, "spawn result %q is never passed to a sync before its scope ends", sym.Name)
		}
	}
}
