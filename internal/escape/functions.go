package escape

import (
	"github.com/realorko/sindarin/internal/ast"
	"github.com/realorko/sindarin/internal/symbols"
	"github.com/realorko/sindarin/internal/types"
)

// analyzeFunctionStmt computes fn's effective modifier (spec §4.H's
// implicit-promotion rule) and then walks its body under the arena
// nesting that modifier implies.
func (a *Analyzer) analyzeFunctionStmt(fn *ast.FunctionStmt) {
	var fnType *types.Type
	if sym, ok := a.table.Lookup(fn.Name); ok && sym.IsFunction && sym.Type != nil {
		fnType = sym.Type
	} else {
		fnType = a.functionType(fn)
		a.table.AddFunction(fn.Name, fnType, fn.Modifier, fn.Modifier)
	}

	escapes := isEscaping(fnType.Return.Kind)
	switch fn.Modifier {
	case types.ModPrivate:
		fn.EffectiveModifier = types.ModPrivate
		if escapes {
			a.addError(fn.ReturnType.Pos(), "private function %q must return a primitive type, got %s", fn.Name, fnType.Return)
		}
	case types.ModShared:
		fn.EffectiveModifier = types.ModShared
	default: // declared default
		if escapes {
			// Implicit promotion: the return value outlives the
			// function's own child arena, so it must allocate in the
			// caller's instead.
			fn.EffectiveModifier = types.ModShared
		} else {
			fn.EffectiveModifier = types.ModDefault
		}
	}

	a.table.PushScope()
	if fn.Modifier == types.ModPrivate {
		a.table.EnterArena()
	}
	for i, p := range fn.Params {
		a.table.AddSymbol(p.Name, symbols.KindParam, fnType.Params[i], p.Qual)
	}
	a.registerFunctions(fn.Body)
	for _, st := range fn.Body {
		a.analyzeStmt(st)
	}
	a.checkPendingAtScopeExit()
	if fn.Modifier == types.ModPrivate {
		a.table.ExitArena()
	}
	a.table.PopScope()
}
