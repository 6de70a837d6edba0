package optimizer

import "github.com/realorko/sindarin/internal/ast"

// terminates reports whether stmt always transfers control out of its
// enclosing block (spec §4.I pass 1). An if/else chain terminates only
// when every branch does; a bare if has no else branch to guarantee
// anything, so — per spec.md §9 Open Question (b) — it is NEVER treated
// as a terminator, even when its then-branch always returns.
func terminates(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case *ast.ReturnStmt, *ast.BreakStmt, *ast.ContinueStmt:
		return true
	case *ast.IfStmt:
		if s.Else == nil {
			return false
		}
		return blockTerminates(s.Then) && terminates(s.Else)
	case *ast.BlockStmt:
		return blockTerminates(s)
	default:
		return false
	}
}

func blockTerminates(b *ast.BlockStmt) bool {
	if b == nil || len(b.Statements) == 0 {
		return false
	}
	return terminates(b.Statements[len(b.Statements)-1])
}

// removeUnreachable drops every statement after the first terminator
// in stmts (spec §4.I pass 1). Control-flow children are assumed to
// have already been recursed into by the caller.
func removeUnreachable(stmts []ast.Statement, c *Counters) []ast.Statement {
	for i, st := range stmts {
		if terminates(st) {
			if rest := len(stmts) - (i + 1); rest > 0 {
				c.StatementsRemoved += rest
			}
			return stmts[:i+1]
		}
	}
	return stmts
}

// removeDeadVars drops any var_decl whose name is never read in stmts
// and whose initializer is pure (spec §4.I pass 3). It repeats until a
// sweep removes nothing, so a variable read only by another removed
// variable's initializer goes in the same run.
func removeDeadVars(stmts []ast.Statement, c *Counters) []ast.Statement {
	for {
		reads := collectReadNames(stmts)
		out := make([]ast.Statement, 0, len(stmts))
		removed := false
		for _, st := range stmts {
			if vd, ok := st.(*ast.VarDeclStmt); ok {
				if !reads[vd.Name] && isPureExpr(vd.Initializer) {
					c.VariablesRemoved++
					removed = true
					continue
				}
			}
			out = append(out, st)
		}
		if !removed {
			return out
		}
		stmts = out
	}
}

// isPureExpr reports whether e can be dropped without observable
// effect: no call, increment, decrement, assign, or index-assign
// anywhere in its subtree (spec §4.I pass 3). A lambda literal is pure
// on its own — it is the later call through it, not its construction,
// that would have an effect.
func isPureExpr(e ast.Expression) bool {
	if e == nil {
		return true
	}
	switch expr := e.(type) {
	case *ast.CallExpr, *ast.StaticCallExpr, *ast.ThreadSpawnExpr, *ast.ThreadSyncExpr,
		*ast.AssignExpr, *ast.IndexAssignExpr, *ast.IncrementExpr, *ast.DecrementExpr:
		return false
	case *ast.BinaryExpr:
		return isPureExpr(expr.Left) && isPureExpr(expr.Right)
	case *ast.UnaryExpr:
		return isPureExpr(expr.Operand)
	case *ast.ArrayExpr:
		for _, el := range expr.Elements {
			if !isPureExpr(el) {
				return false
			}
		}
		return true
	case *ast.ArrayAccessExpr:
		return isPureExpr(expr.Array) && isPureExpr(expr.Index)
	case *ast.ArraySliceExpr:
		return isPureExpr(expr.Array) && isPureExpr(expr.Start) && isPureExpr(expr.End)
	case *ast.RangeExpr:
		return isPureExpr(expr.Start) && isPureExpr(expr.End)
	case *ast.SpreadExpr:
		return isPureExpr(expr.Value)
	case *ast.InterpolatedExpr:
		for _, p := range expr.Parts {
			if p.Expr != nil && !isPureExpr(p.Expr) {
				return false
			}
		}
		return true
	case *ast.MemberExpr:
		return isPureExpr(expr.Receiver)
	case *ast.SizedArrayAllocExpr:
		if !isPureExpr(expr.Size) {
			return false
		}
		return expr.Default == nil || isPureExpr(expr.Default)
	default:
		// *ast.VariableExpr, *ast.LiteralExpr, *ast.LambdaExpr: pure.
		return true
	}
}

// collectReadNames gathers every variable name read anywhere in stmts,
// recursing into nested control-flow (a name read inside a nested
// if/while/for body of this same block still counts) and into nested
// function/lambda bodies (a free variable referenced there is still a
// read of whatever outer declaration it resolves to).
func collectReadNames(stmts []ast.Statement) map[string]bool {
	reads := make(map[string]bool)
	for _, st := range stmts {
		collectStmtReads(st, reads)
	}
	return reads
}

func collectStmtReads(stmt ast.Statement, reads map[string]bool) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		collectExprReads(s.Expr, reads)
	case *ast.VarDeclStmt:
		collectExprReads(s.Initializer, reads)
	case *ast.FunctionStmt:
		for _, st := range s.Body {
			collectStmtReads(st, reads)
		}
	case *ast.ReturnStmt:
		collectExprReads(s.Value, reads)
	case *ast.IfStmt:
		collectExprReads(s.Condition, reads)
		collectBlockReads(s.Then, reads)
		if s.Else != nil {
			collectStmtReads(s.Else, reads)
		}
	case *ast.WhileStmt:
		collectExprReads(s.Condition, reads)
		collectBlockReads(s.Body, reads)
	case *ast.ForStmt:
		if s.Init != nil {
			collectStmtReads(s.Init, reads)
		}
		collectExprReads(s.Condition, reads)
		if s.Post != nil {
			collectStmtReads(s.Post, reads)
		}
		collectBlockReads(s.Body, reads)
	case *ast.ForEachStmt:
		collectExprReads(s.Iterable, reads)
		collectBlockReads(s.Body, reads)
	case *ast.BlockStmt:
		collectBlockReads(s, reads)
	}
}

func collectBlockReads(b *ast.BlockStmt, reads map[string]bool) {
	if b == nil {
		return
	}
	for _, st := range b.Statements {
		collectStmtReads(st, reads)
	}
}

func collectExprReads(e ast.Expression, reads map[string]bool) {
	if e == nil {
		return
	}
	switch expr := e.(type) {
	case *ast.VariableExpr:
		reads[expr.Name] = true
	case *ast.AssignExpr:
		// The target of a plain assignment is not a read (spec §4.I pass 3).
		collectExprReads(expr.Value, reads)
	case *ast.IndexAssignExpr:
		collectExprReads(expr.Container, reads) // the container IS a read
		collectExprReads(expr.Index, reads)
		collectExprReads(expr.Value, reads)
	case *ast.IncrementExpr:
		collectExprReads(expr.Target, reads)
	case *ast.DecrementExpr:
		collectExprReads(expr.Target, reads)
	case *ast.BinaryExpr:
		collectExprReads(expr.Left, reads)
		collectExprReads(expr.Right, reads)
	case *ast.UnaryExpr:
		collectExprReads(expr.Operand, reads)
	case *ast.ArrayExpr:
		for _, el := range expr.Elements {
			collectExprReads(el, reads)
		}
	case *ast.ArrayAccessExpr:
		collectExprReads(expr.Array, reads)
		collectExprReads(expr.Index, reads)
	case *ast.ArraySliceExpr:
		collectExprReads(expr.Array, reads)
		collectExprReads(expr.Start, reads)
		collectExprReads(expr.End, reads)
	case *ast.RangeExpr:
		collectExprReads(expr.Start, reads)
		collectExprReads(expr.End, reads)
	case *ast.SpreadExpr:
		collectExprReads(expr.Value, reads)
	case *ast.InterpolatedExpr:
		for _, p := range expr.Parts {
			if p.Expr != nil {
				collectExprReads(p.Expr, reads)
			}
		}
	case *ast.MemberExpr:
		collectExprReads(expr.Receiver, reads)
	case *ast.LambdaExpr:
		for _, st := range expr.Body {
			collectStmtReads(st, reads)
		}
	case *ast.CallExpr:
		collectExprReads(expr.Callee, reads)
		for _, a := range expr.Args {
			collectExprReads(a, reads)
		}
	case *ast.StaticCallExpr:
		for _, a := range expr.Args {
			collectExprReads(a, reads)
		}
	case *ast.SizedArrayAllocExpr:
		collectExprReads(expr.Size, reads)
		collectExprReads(expr.Default, reads)
	case *ast.ThreadSpawnExpr:
		collectExprReads(expr.Callee, reads)
		for _, a := range expr.Args {
			collectExprReads(a, reads)
		}
	case *ast.ThreadSyncExpr:
		collectExprReads(expr.Handle, reads)
	}
}
