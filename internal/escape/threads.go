package escape

import (
	"github.com/realorko/sindarin/internal/ast"
	"github.com/realorko/sindarin/internal/symbols"
	"github.com/realorko/sindarin/internal/types"
)

// analyzeThreadSpawnDecl implements spec §4.H's thread-spawn freeze
// rule: each argument that is an array, a str, or a primitive passed
// `as ref` (per the callee's param_mem_quals) is frozen for the
// duration of the spawn, and the declared variable becomes a pending
// handle that must reach a thread_sync before its scope ends.
func (a *Analyzer) analyzeThreadSpawnDecl(s *ast.VarDeclStmt, spawn *ast.ThreadSpawnExpr) {
	a.analyzeExpr(spawn.Callee)
	for _, arg := range spawn.Args {
		a.analyzeExpr(arg)
	}

	var calleeType *types.Type
	if v, ok := spawn.Callee.(*ast.VariableExpr); ok {
		if sym, found := a.table.Lookup(v.Name); found {
			calleeType = sym.Type
		}
	}

	var frozen []*symbols.Symbol
	for i, arg := range spawn.Args {
		v, ok := arg.(*ast.VariableExpr)
		if !ok {
			continue
		}
		argSym, found := a.table.Lookup(v.Name)
		if !found {
			continue
		}
		argType := arg.GetType()
		refQualified := calleeType != nil && i < len(calleeType.ParamMemQuals) && calleeType.ParamMemQuals[i] == types.MemRef
		isRefLike := argType != nil && (argType.Kind == types.Array || argType.Kind == types.Str)
		if isRefLike || refQualified {
			frozen = append(frozen, argSym)
		}
	}

	resultType := spawn.GetType()
	if resultType == nil {
		resultType = types.VoidType
	}
	sym, ok := a.table.AddSymbol(s.Name, symbols.KindLocal, resultType, s.Qual)
	if !ok {
		return
	}
	sym.Pos = s.Pos()
	symbols.SetFrozenArgs(sym, frozen)
	if resultType.Kind != types.Void {
		symbols.MarkPending(sym)
	}
}

// analyzeThreadSync implements the unfreeze half: consuming a spawn
// handle via sync() unfreezes every argument that spawn froze.
func (a *Analyzer) analyzeThreadSync(e *ast.ThreadSyncExpr) {
	a.analyzeExpr(e.Handle)
	v, ok := e.Handle.(*ast.VariableExpr)
	if !ok {
		return
	}
	sym, found := a.table.Lookup(v.Name)
	if !found {
		return
	}
	symbols.UnfreezeArgs(sym)
}
