package optimizer

import "github.com/realorko/sindarin/internal/ast"

// markTailCall implements spec §4.I pass 4: a `return f(...)` whose
// callee is a bare reference to the enclosing function f is a tail
// call, regardless of how deeply the return is nested in non-
// terminating control flow (a return inside an if-without-else branch
// still qualifies, since this walk is driven by statement position,
// not by the terminates() reachability check pass 1 uses).
func (o *Optimizer) markTailCall(value ast.Expression, owner string) {
	if owner == "" {
		return
	}
	call, ok := value.(*ast.CallExpr)
	if !ok {
		return
	}
	callee, ok := call.Callee.(*ast.VariableExpr)
	if !ok || callee.Name != owner {
		return
	}
	if !call.IsTailCall {
		call.IsTailCall = true
		o.Counters.TailCallsOptimized++
	}
}
