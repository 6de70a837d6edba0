package checker

import (
	"sort"

	"github.com/realorko/sindarin/internal/ast"
	"github.com/realorko/sindarin/internal/symbols"
	"github.com/realorko/sindarin/internal/types"
)

// checkExpr dispatches by expression kind (spec §4.G.1) and stamps the
// resolved type back onto the node via Expression.SetType, matching the
// teacher's SetType-during-analysis convention.
func (c *Checker) checkExpr(e ast.Expression) *types.Type {
	if e == nil {
		return nil
	}
	var t *types.Type
	switch expr := e.(type) {
	case *ast.LiteralExpr:
		t = types.Primitive(expr.Kind)
	case *ast.VariableExpr:
		t = c.checkVariable(expr)
	case *ast.AssignExpr:
		t = c.checkAssign(expr)
	case *ast.IndexAssignExpr:
		t = c.checkIndexAssign(expr)
	case *ast.BinaryExpr:
		t = c.checkBinary(expr)
	case *ast.UnaryExpr:
		t = c.checkUnary(expr)
	case *ast.ArrayExpr:
		t = c.checkArrayLiteral(expr)
	case *ast.ArrayAccessExpr:
		t = c.checkArrayAccess(expr)
	case *ast.ArraySliceExpr:
		t = c.checkArraySlice(expr)
	case *ast.RangeExpr:
		t = c.checkRange(expr)
	case *ast.SpreadExpr:
		t = c.checkExpr(expr.Value)
	case *ast.IncrementExpr:
		t = c.checkIncDec(expr.Target)
	case *ast.DecrementExpr:
		t = c.checkIncDec(expr.Target)
	case *ast.InterpolatedExpr:
		t = c.checkInterpolated(expr)
	case *ast.MemberExpr:
		t = c.checkMember(expr)
	case *ast.LambdaExpr:
		t = c.checkLambda(expr, nil)
	case *ast.CallExpr:
		t = c.checkCall(expr)
	case *ast.StaticCallExpr:
		t = c.checkStaticCall(expr)
	case *ast.SizedArrayAllocExpr:
		t = c.checkSizedArrayAlloc(expr)
	case *ast.ThreadSpawnExpr:
		t = c.checkThreadSpawn(expr)
	case *ast.ThreadSyncExpr:
		t = c.checkThreadSync(expr)
	default:
		c.addError(TypeError, e.Pos(), "unsupported expression %T", e)
		t = types.VoidType
	}
	e.SetType(t)
	return t
}

func (c *Checker) checkVariable(e *ast.VariableExpr) *types.Type {
	sym, ok := c.table.Lookup(e.Name)
	if !ok {
		c.addError(ResolutionError, e.Pos(), "undefined name %q", e.Name)
		return types.VoidType
	}
	return sym.Type
}

// checkAssign implements spec §4.G.1's assignment rule: LHS and RHS
// types must match, with nil-compatibility and int/byte narrowing.
func (c *Checker) checkAssign(e *ast.AssignExpr) *types.Type {
	targetType := c.checkExpr(e.Target)
	var valType *types.Type
	if lam, ok := e.Value.(*ast.LambdaExpr); ok && targetType != nil && targetType.Kind == types.Function {
		valType = c.checkLambda(lam, targetType)
		lam.SetType(valType)
	} else {
		valType = c.checkExpr(e.Value)
	}
	if targetType != nil && valType != nil && !c.typeAssignable(valType, targetType) {
		c.addError(TypeError, e.Pos(), "cannot assign %s to %s", valType, targetType)
	}
	return targetType
}

func (c *Checker) checkIndexAssign(e *ast.IndexAssignExpr) *types.Type {
	containerType := c.checkExpr(e.Container)
	c.requireInt(e.Index, "array index")

	elemType := types.AnyType
	if containerType != nil {
		if containerType.Kind != types.Array {
			c.addError(TypeError, e.Container.Pos(), "indexed assignment target must be an array, got %s", containerType)
		} else {
			elemType = containerType.Elem
		}
	}
	valType := c.checkExpr(e.Value)
	if valType != nil && !c.typeAssignable(valType, elemType) {
		c.addError(TypeError, e.Pos(), "cannot assign %s to array element of type %s", valType, elemType)
	}
	return elemType
}

// checkBinary implements spec §4.G.1's binary-arithmetic/comparison/
// logical rules.
func (c *Checker) checkBinary(e *ast.BinaryExpr) *types.Type {
	lt := c.checkExpr(e.Left)
	rt := c.checkExpr(e.Right)
	if lt == nil || rt == nil {
		return types.VoidType
	}
	switch e.Operator {
	case "&&", "||":
		if lt.Kind != types.Bool || rt.Kind != types.Bool {
			c.addError(TypeError, e.Pos(), "operator %s requires bool operands, got %s and %s", e.Operator, lt, rt)
		}
		return types.BoolType
	case "==", "!=", "<", "<=", ">", ">=":
		if !c.comparable(lt, rt) {
			c.addError(TypeError, e.Pos(), "cannot compare %s and %s", lt, rt)
		}
		return types.BoolType
	case "+":
		if lt.Kind == types.Str || rt.Kind == types.Str {
			if lt.Kind != types.Str || rt.Kind != types.Str {
				c.addError(TypeError, e.Pos(), "string concatenation requires both operands str, got %s and %s", lt, rt)
			}
			return types.StrType
		}
		return c.dominantNumeric(e, lt, rt)
	case "-", "*", "/", "%":
		return c.dominantNumeric(e, lt, rt)
	default:
		c.addError(TypeError, e.Pos(), "unknown operator %s", e.Operator)
		return types.VoidType
	}
}

func (c *Checker) dominantNumeric(e *ast.BinaryExpr, lt, rt *types.Type) *types.Type {
	if !isNumeric(lt) || !isNumeric(rt) {
		c.addError(TypeError, e.Pos(), "operator %s requires numeric operands, got %s and %s", e.Operator, lt, rt)
		return types.VoidType
	}
	if numericRank(lt.Kind) >= numericRank(rt.Kind) {
		return lt
	}
	return rt
}

func (c *Checker) comparable(lt, rt *types.Type) bool {
	if isNumeric(lt) && isNumeric(rt) {
		return true
	}
	return lt.Equals(rt) || lt.Kind == types.Nil || rt.Kind == types.Nil
}

func (c *Checker) checkUnary(e *ast.UnaryExpr) *types.Type {
	t := c.checkExpr(e.Operand)
	if t == nil {
		return types.VoidType
	}
	switch e.Operator {
	case "!":
		if t.Kind != types.Bool {
			c.addError(TypeError, e.Pos(), "unary ! requires bool, got %s", t)
		}
		return types.BoolType
	case "-":
		if !isNumeric(t) {
			c.addError(TypeError, e.Pos(), "unary - requires a numeric operand, got %s", t)
		}
		return t
	default:
		c.addError(TypeError, e.Pos(), "unknown unary operator %s", e.Operator)
		return t
	}
}

// checkArrayLiteral implements spec §4.G.1's array-literal rule: every
// element must be mutually assignable, and the element type is their
// common type. An empty literal gets element type nil, coerced to the
// destination type at the variable/parameter boundary.
func (c *Checker) checkArrayLiteral(e *ast.ArrayExpr) *types.Type {
	if len(e.Elements) == 0 {
		return types.NewArray(types.NilType)
	}
	elemType := c.checkExpr(e.Elements[0])
	for _, el := range e.Elements[1:] {
		t := c.checkExpr(el)
		if t == nil {
			continue
		}
		if c.typeAssignable(t, elemType) {
			continue
		}
		if c.typeAssignable(elemType, t) {
			elemType = t
			continue
		}
		c.addError(TypeError, el.Pos(), "array element type %s does not match earlier elements' type %s", t, elemType)
	}
	return types.NewArray(elemType)
}

func (c *Checker) checkArrayAccess(e *ast.ArrayAccessExpr) *types.Type {
	at := c.checkExpr(e.Array)
	c.requireInt(e.Index, "array index")
	if at == nil {
		return types.VoidType
	}
	if at.Kind != types.Array {
		c.addError(TypeError, e.Array.Pos(), "cannot index non-array type %s", at)
		return types.VoidType
	}
	return at.Elem
}

func (c *Checker) checkArraySlice(e *ast.ArraySliceExpr) *types.Type {
	at := c.checkExpr(e.Array)
	if e.Start != nil {
		c.requireInt(e.Start, "slice start")
	}
	if e.End != nil {
		c.requireInt(e.End, "slice end")
	}
	if at == nil {
		return types.VoidType
	}
	if at.Kind != types.Array {
		c.addError(TypeError, e.Array.Pos(), "cannot slice non-array type %s", at)
		return types.VoidType
	}
	return at
}

func (c *Checker) checkRange(e *ast.RangeExpr) *types.Type {
	c.requireInt(e.Start, "range start")
	c.requireInt(e.End, "range end")
	return types.NewArray(types.IntType)
}

func (c *Checker) checkIncDec(target ast.Expression) *types.Type {
	t := c.checkExpr(target)
	if t != nil && !isNumeric(t) {
		c.addError(TypeError, target.Pos(), "++/-- requires a numeric operand, got %s", t)
	}
	return t
}

// checkInterpolated implements spec §4.G.1's interpolated-string rule:
// every embedded expression must be a printable type.
func (c *Checker) checkInterpolated(e *ast.InterpolatedExpr) *types.Type {
	for _, part := range e.Parts {
		if part.Expr == nil {
			continue
		}
		t := c.checkExpr(part.Expr)
		if t != nil && !isPrintable(t) {
			c.addError(TypeError, part.Expr.Pos(), "interpolated expression has non-printable type %s", t)
		}
	}
	return types.StrType
}

func isPrintable(t *types.Type) bool {
	return t.IsPrimitive() || t.IsOpaqueHost()
}

// checkMember types a bare `receiver.name` reference that is not itself
// the callee of a CallExpr (e.g. passing a method as a value). Method
// calls are typed by checkCall/checkStaticCall instead, since only
// there is the call's argument list available for dispatch.
func (c *Checker) checkMember(e *ast.MemberExpr) *types.Type {
	recvType := c.checkExpr(e.Receiver)
	if recvType == nil {
		return types.VoidType
	}
	if sig, ok := c.lookupInstanceMethod(recvType, e.Name); ok {
		return types.NewFunction(sig.Return, sig.Params, nil, sig.Variadic)
	}
	c.addError(TypeError, e.Pos(), "type %s has no member %q", recvType, e.Name)
	return types.VoidType
}

// checkLambda implements spec §4.G.1's lambda rule: parameter and
// return types may be omitted and are back-inferred from expected (the
// declared variable type or call-site parameter type); the capture set
// is computed here, from the body's free variables, and stamped onto
// lam.Captures as part of the lambda's output AST contract (spec §6.2).
func (c *Checker) checkLambda(lam *ast.LambdaExpr, expected *types.Type) *types.Type {
	params := make([]*types.Type, len(lam.Params))
	quals := make([]types.MemQual, len(lam.Params))
	for i, p := range lam.Params {
		switch {
		case p.Type != nil:
			params[i] = c.resolveTypeExpr(p.Type)
		case expected != nil && i < len(expected.Params):
			params[i] = expected.Params[i]
		default:
			c.addError(TypeError, p.Tok.Pos, "cannot infer type of lambda parameter %q", p.Name)
			params[i] = types.AnyType
		}
		quals[i] = p.Qual
	}

	var ret *types.Type
	switch {
	case lam.ReturnType != nil:
		ret = c.resolveTypeExpr(lam.ReturnType)
	case expected != nil:
		ret = expected.Return
	default:
		ret = types.VoidType
	}

	c.table.PushScope()
	for i, p := range lam.Params {
		c.table.AddSymbol(p.Name, symbols.KindParam, params[i], p.Qual)
	}
	c.returnStack = append(c.returnStack, ret)
	for _, st := range lam.Body {
		c.checkStmt(st)
	}
	c.returnStack = c.returnStack[:len(c.returnStack)-1]
	c.table.PopScope()

	lam.Captures = freeVariables(lam.Params, lam.Body)

	return types.NewFunction(ret, params, quals, false)
}

// freeVariables collects the names referenced in body that are not bound
// by params or by a var_decl (or nested function/lambda parameter)
// within body itself — the capture set spec §4.G.1 calls for.
func freeVariables(params []*ast.Param, body []ast.Statement) []string {
	bound := make(map[string]bool, len(params))
	for _, p := range params {
		bound[p.Name] = true
	}
	free := make(map[string]bool)
	collectFreeVarsStmts(body, bound, free)

	names := make([]string, 0, len(free))
	for name := range free {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func cloneBound(bound map[string]bool) map[string]bool {
	c := make(map[string]bool, len(bound)+1)
	for k, v := range bound {
		c[k] = v
	}
	return c
}

func collectFreeVarsStmts(stmts []ast.Statement, bound map[string]bool, free map[string]bool) {
	bound = cloneBound(bound)
	for _, st := range stmts {
		collectFreeVarsStmt(st, bound, free)
	}
}

func collectFreeVarsStmt(stmt ast.Statement, bound map[string]bool, free map[string]bool) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		collectFreeVarsExpr(s.Expr, bound, free)
	case *ast.VarDeclStmt:
		if s.Initializer != nil {
			collectFreeVarsExpr(s.Initializer, bound, free)
		}
		bound[s.Name] = true
	case *ast.FunctionStmt:
		bound[s.Name] = true
		inner := cloneBound(bound)
		for _, p := range s.Params {
			inner[p.Name] = true
		}
		collectFreeVarsStmts(s.Body, inner, free)
	case *ast.ReturnStmt:
		if s.Value != nil {
			collectFreeVarsExpr(s.Value, bound, free)
		}
	case *ast.IfStmt:
		collectFreeVarsExpr(s.Condition, bound, free)
		collectFreeVarsStmt(s.Then, bound, free)
		if s.Else != nil {
			collectFreeVarsStmt(s.Else, bound, free)
		}
	case *ast.WhileStmt:
		collectFreeVarsExpr(s.Condition, bound, free)
		collectFreeVarsStmt(s.Body, bound, free)
	case *ast.ForStmt:
		inner := cloneBound(bound)
		if s.Init != nil {
			collectFreeVarsStmt(s.Init, inner, free)
		}
		if s.Condition != nil {
			collectFreeVarsExpr(s.Condition, inner, free)
		}
		if s.Post != nil {
			collectFreeVarsStmt(s.Post, inner, free)
		}
		collectFreeVarsStmt(s.Body, inner, free)
	case *ast.ForEachStmt:
		collectFreeVarsExpr(s.Iterable, bound, free)
		inner := cloneBound(bound)
		inner[s.VarName] = true
		collectFreeVarsStmt(s.Body, inner, free)
	case *ast.BlockStmt:
		collectFreeVarsStmts(s.Statements, bound, free)
	case *ast.BreakStmt, *ast.ContinueStmt, *ast.ImportStmt:
		// no sub-expressions to walk
	}
}

func collectFreeVarsExpr(expr ast.Expression, bound map[string]bool, free map[string]bool) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.VariableExpr:
		if !bound[e.Name] {
			free[e.Name] = true
		}
	case *ast.BinaryExpr:
		collectFreeVarsExpr(e.Left, bound, free)
		collectFreeVarsExpr(e.Right, bound, free)
	case *ast.UnaryExpr:
		collectFreeVarsExpr(e.Operand, bound, free)
	case *ast.AssignExpr:
		collectFreeVarsExpr(e.Target, bound, free)
		collectFreeVarsExpr(e.Value, bound, free)
	case *ast.IndexAssignExpr:
		collectFreeVarsExpr(e.Container, bound, free)
		collectFreeVarsExpr(e.Index, bound, free)
		collectFreeVarsExpr(e.Value, bound, free)
	case *ast.CallExpr:
		collectFreeVarsExpr(e.Callee, bound, free)
		for _, a := range e.Args {
			collectFreeVarsExpr(a, bound, free)
		}
	case *ast.ArrayExpr:
		for _, el := range e.Elements {
			collectFreeVarsExpr(el, bound, free)
		}
	case *ast.ArrayAccessExpr:
		collectFreeVarsExpr(e.Array, bound, free)
		collectFreeVarsExpr(e.Index, bound, free)
	case *ast.ArraySliceExpr:
		collectFreeVarsExpr(e.Array, bound, free)
		collectFreeVarsExpr(e.Start, bound, free)
		collectFreeVarsExpr(e.End, bound, free)
	case *ast.RangeExpr:
		collectFreeVarsExpr(e.Start, bound, free)
		collectFreeVarsExpr(e.End, bound, free)
	case *ast.SpreadExpr:
		collectFreeVarsExpr(e.Value, bound, free)
	case *ast.IncrementExpr:
		collectFreeVarsExpr(e.Target, bound, free)
	case *ast.DecrementExpr:
		collectFreeVarsExpr(e.Target, bound, free)
	case *ast.InterpolatedExpr:
		for _, p := range e.Parts {
			if p.Expr != nil {
				collectFreeVarsExpr(p.Expr, bound, free)
			}
		}
	case *ast.MemberExpr:
		collectFreeVarsExpr(e.Receiver, bound, free)
	case *ast.LambdaExpr:
		inner := cloneBound(bound)
		for _, p := range e.Params {
			inner[p.Name] = true
		}
		collectFreeVarsStmts(e.Body, inner, free)
	case *ast.StaticCallExpr:
		for _, a := range e.Args {
			collectFreeVarsExpr(a, bound, free)
		}
	case *ast.SizedArrayAllocExpr:
		collectFreeVarsExpr(e.Size, bound, free)
		if e.Default != nil {
			collectFreeVarsExpr(e.Default, bound, free)
		}
	case *ast.ThreadSpawnExpr:
		collectFreeVarsExpr(e.Callee, bound, free)
		for _, a := range e.Args {
			collectFreeVarsExpr(a, bound, free)
		}
	case *ast.ThreadSyncExpr:
		collectFreeVarsExpr(e.Handle, bound, free)
	}
}

// checkSizedArrayAlloc implements spec §4.G.1's sized-array-allocation
// rule: the size must be int, and an optional default value must match
// the element type.
func (c *Checker) checkSizedArrayAlloc(e *ast.SizedArrayAllocExpr) *types.Type {
	c.requireInt(e.Size, "sized array allocation size")
	elemType := c.resolveTypeExpr(e.ElemType)
	if e.Default != nil {
		dt := c.checkExpr(e.Default)
		if dt != nil && !c.typeAssignable(dt, elemType) {
			c.addError(TypeError, e.Default.Pos(), "default value type %s does not match element type %s", dt, elemType)
		}
	}
	return types.NewArray(elemType)
}

func (c *Checker) checkThreadSpawn(e *ast.ThreadSpawnExpr) *types.Type {
	return c.checkCallLike(e.Callee, e.Args, e.Pos())
}

func (c *Checker) checkThreadSync(e *ast.ThreadSyncExpr) *types.Type {
	return c.checkExpr(e.Handle)
}
