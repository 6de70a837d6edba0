package optimizer

import (
	"github.com/realorko/sindarin/internal/ast"
	"github.com/realorko/sindarin/internal/types"
	"github.com/realorko/sindarin/pkg/token"
)

// rewriteExpr recurses bottom-up through an expression tree, applying
// algebraic identities and string-literal merging as it unwinds (spec
// §4.I passes 2 and 5; "Applied bottom-up" per the spec text).
func (o *Optimizer) rewriteExpr(e ast.Expression) ast.Expression {
	if e == nil {
		return nil
	}
	switch expr := e.(type) {
	case *ast.BinaryExpr:
		expr.Left = o.rewriteExpr(expr.Left)
		expr.Right = o.rewriteExpr(expr.Right)
		return o.simplifyBinary(expr)
	case *ast.UnaryExpr:
		expr.Operand = o.rewriteExpr(expr.Operand)
		return o.simplifyUnary(expr)
	case *ast.AssignExpr:
		expr.Value = o.rewriteExpr(expr.Value)
		return expr
	case *ast.IndexAssignExpr:
		expr.Container = o.rewriteExpr(expr.Container)
		expr.Index = o.rewriteExpr(expr.Index)
		expr.Value = o.rewriteExpr(expr.Value)
		return expr
	case *ast.ArrayExpr:
		for i, el := range expr.Elements {
			expr.Elements[i] = o.rewriteExpr(el)
		}
		return expr
	case *ast.ArrayAccessExpr:
		expr.Array = o.rewriteExpr(expr.Array)
		expr.Index = o.rewriteExpr(expr.Index)
		return expr
	case *ast.ArraySliceExpr:
		expr.Array = o.rewriteExpr(expr.Array)
		if expr.Start != nil {
			expr.Start = o.rewriteExpr(expr.Start)
		}
		if expr.End != nil {
			expr.End = o.rewriteExpr(expr.End)
		}
		return expr
	case *ast.RangeExpr:
		expr.Start = o.rewriteExpr(expr.Start)
		expr.End = o.rewriteExpr(expr.End)
		return expr
	case *ast.SpreadExpr:
		expr.Value = o.rewriteExpr(expr.Value)
		return expr
	case *ast.InterpolatedExpr:
		return o.mergeInterpolated(expr)
	case *ast.MemberExpr:
		expr.Receiver = o.rewriteExpr(expr.Receiver)
		return expr
	case *ast.LambdaExpr:
		for _, st := range expr.Body {
			o.optimizeStmt(st, "")
		}
		expr.Body = removeUnreachable(expr.Body, &o.Counters)
		expr.Body = removeDeadVars(expr.Body, &o.Counters)
		return expr
	case *ast.CallExpr:
		expr.Callee = o.rewriteExpr(expr.Callee)
		for i, a := range expr.Args {
			expr.Args[i] = o.rewriteExpr(a)
		}
		return expr
	case *ast.StaticCallExpr:
		for i, a := range expr.Args {
			expr.Args[i] = o.rewriteExpr(a)
		}
		return expr
	case *ast.SizedArrayAllocExpr:
		expr.Size = o.rewriteExpr(expr.Size)
		if expr.Default != nil {
			expr.Default = o.rewriteExpr(expr.Default)
		}
		return expr
	case *ast.ThreadSpawnExpr:
		expr.Callee = o.rewriteExpr(expr.Callee)
		for i, a := range expr.Args {
			expr.Args[i] = o.rewriteExpr(a)
		}
		return expr
	case *ast.ThreadSyncExpr:
		expr.Handle = o.rewriteExpr(expr.Handle)
		return expr
	default:
		// *ast.VariableExpr, *ast.LiteralExpr, *ast.IncrementExpr,
		// *ast.DecrementExpr: leaves for this pass, nothing to fold.
		return e
	}
}

// simplifyBinary applies spec §4.I pass 2's identities plus the binary
// half of pass 5's string-literal fold. x*0 is deliberately NOT folded
// to 0: the other operand may carry a side effect (a call, an
// increment) that a fold would silently drop, and spec §4.I pass 2
// says pure simplifications only.
func (o *Optimizer) simplifyBinary(expr *ast.BinaryExpr) ast.Expression {
	if merged := mergeStringConcat(expr); merged != nil {
		o.Counters.StringLiteralsMerged++
		return merged
	}
	switch expr.Operator {
	case "+":
		if isZeroLiteral(expr.Right) {
			o.Counters.NoopsRemoved++
			return expr.Left
		}
		if isZeroLiteral(expr.Left) {
			o.Counters.NoopsRemoved++
			return expr.Right
		}
	case "-":
		if isZeroLiteral(expr.Right) {
			o.Counters.NoopsRemoved++
			return expr.Left
		}
	case "*":
		if isOneLiteral(expr.Right) {
			o.Counters.NoopsRemoved++
			return expr.Left
		}
		if isOneLiteral(expr.Left) {
			o.Counters.NoopsRemoved++
			return expr.Right
		}
	case "/":
		if isOneLiteral(expr.Right) {
			o.Counters.NoopsRemoved++
			return expr.Left
		}
	}
	return expr
}

// simplifyUnary folds !!x → x and -(-x) → x: a doubled operator applied
// to itself.
func (o *Optimizer) simplifyUnary(expr *ast.UnaryExpr) ast.Expression {
	if inner, ok := expr.Operand.(*ast.UnaryExpr); ok && inner.Operator == expr.Operator {
		switch expr.Operator {
		case "!", "-":
			o.Counters.NoopsRemoved++
			return inner.Operand
		}
	}
	return expr
}

// mergeStringConcat folds `"a" + "b"` into a single string literal when
// both operands of a binary + are already string literals.
func mergeStringConcat(expr *ast.BinaryExpr) ast.Expression {
	if expr.Operator != "+" {
		return nil
	}
	l, lok := expr.Left.(*ast.LiteralExpr)
	r, rok := expr.Right.(*ast.LiteralExpr)
	if !lok || !rok || l.Kind != types.Str || r.Kind != types.Str {
		return nil
	}
	merged := ast.NewLiteralExpr(l.Tok, types.Str, token.Literal{Str: l.Value.Str + r.Value.Str})
	merged.SetType(l.GetType())
	return merged
}

// mergeInterpolated folds consecutive literal-text parts of an
// interpolated string into one (spec §4.I pass 5), after recursing
// into any embedded expressions.
func (o *Optimizer) mergeInterpolated(expr *ast.InterpolatedExpr) ast.Expression {
	for i := range expr.Parts {
		if expr.Parts[i].Expr != nil {
			expr.Parts[i].Expr = o.rewriteExpr(expr.Parts[i].Expr)
		}
	}
	merged := make([]ast.InterpolPart, 0, len(expr.Parts))
	for _, p := range expr.Parts {
		if p.Expr == nil && len(merged) > 0 && merged[len(merged)-1].Expr == nil {
			merged[len(merged)-1].Text += p.Text
			o.Counters.StringLiteralsMerged++
			continue
		}
		merged = append(merged, p)
	}
	expr.Parts = merged
	return expr
}

func isZeroLiteral(e ast.Expression) bool {
	lit, ok := e.(*ast.LiteralExpr)
	if !ok {
		return false
	}
	switch lit.Kind {
	case types.Int, types.Byte:
		return lit.Value.Int == 0
	case types.Long:
		return lit.Value.Long == 0
	case types.Double:
		return lit.Value.Double == 0
	default:
		return false
	}
}

func isOneLiteral(e ast.Expression) bool {
	lit, ok := e.(*ast.LiteralExpr)
	if !ok {
		return false
	}
	switch lit.Kind {
	case types.Int, types.Byte:
		return lit.Value.Int == 1
	case types.Long:
		return lit.Value.Long == 1
	case types.Double:
		return lit.Value.Double == 1
	default:
		return false
	}
}
