package checker

import (
	"github.com/realorko/sindarin/internal/ast"
	"github.com/realorko/sindarin/internal/builtins"
	"github.com/realorko/sindarin/internal/types"
	"github.com/realorko/sindarin/pkg/token"
)

// checkCall implements spec §4.G.2's three call-dispatch paths: built-in
// globals, regular calls, and instance-method calls (whose callee is a
// MemberExpr). Static-method calls go through checkStaticCall instead,
// since the parser already recognized that shape (see
// internal/parser's parseCallExpr).
func (c *Checker) checkCall(e *ast.CallExpr) *types.Type {
	return c.checkCallLike(e.Callee, e.Args, e.Pos())
}

func (c *Checker) checkCallLike(callee ast.Expression, args []ast.Expression, pos token.Position) *types.Type {
	if v, ok := callee.(*ast.VariableExpr); ok {
		if builtins.IsLen(v.Name) {
			return c.checkLenCall(args, pos)
		}
		if sig, ok := builtins.GlobalFunctions[v.Name]; ok {
			return c.checkFixedSignatureCall(v.Name, sig, args, pos)
		}
	}
	if member, ok := callee.(*ast.MemberExpr); ok {
		return c.checkInstanceMethodCall(member, args, pos)
	}
	return c.checkRegularCall(callee, args, pos)
}

// checkLenCall special-cases len: its single argument may be an array of
// any element type or a str, a shape the builtins table's single-
// Signature representation cannot express (spec §4.G.2 path 1).
func (c *Checker) checkLenCall(args []ast.Expression, pos token.Position) *types.Type {
	if len(args) != 1 {
		c.addError(TypeError, pos, "len expects exactly 1 argument, got %d", len(args))
		return types.IntType
	}
	t := c.checkExpr(args[0])
	if t != nil && t.Kind != types.Array && t.Kind != types.Str {
		c.addError(TypeError, args[0].Pos(), "len expects an array or str, got %s", t)
	}
	return types.IntType
}

func (c *Checker) checkFixedSignatureCall(name string, sig builtins.Signature, args []ast.Expression, pos token.Position) *types.Type {
	if len(args) != len(sig.Params) {
		c.addError(TypeError, pos, "%s expects %d argument(s), got %d", name, len(sig.Params), len(args))
	}
	for i, arg := range args {
		t := c.checkExpr(arg)
		if i >= len(sig.Params) {
			continue
		}
		if t != nil && !c.typeAssignable(t, sig.Params[i]) {
			c.addError(TypeError, arg.Pos(), "%s argument %d: expected %s, got %s", name, i+1, sig.Params[i], t)
		}
	}
	return sig.Return
}

// checkRegularCall implements dispatch path 2: the callee's type must be
// function(R, P, [Q], variadic); arity and each argument type must
// match, with lambda arguments back-inferred from the matching
// parameter type.
func (c *Checker) checkRegularCall(callee ast.Expression, args []ast.Expression, pos token.Position) *types.Type {
	calleeType := c.checkExpr(callee)
	if calleeType == nil {
		return types.VoidType
	}
	if calleeType.Kind != types.Function {
		c.addError(TypeError, pos, "cannot call non-function type %s", calleeType)
		return types.VoidType
	}

	params := calleeType.Params
	if calleeType.IsVariadic {
		if len(args) < len(params)-1 {
			c.addError(TypeError, pos, "expected at least %d argument(s), got %d", len(params)-1, len(args))
		}
	} else if len(args) != len(params) {
		c.addError(TypeError, pos, "expected %d argument(s), got %d", len(params), len(args))
	}

	for i, arg := range args {
		want := paramTypeAt(params, calleeType.IsVariadic, i)
		var got *types.Type
		if lam, ok := arg.(*ast.LambdaExpr); ok && want != nil && want.Kind == types.Function {
			got = c.checkLambda(lam, want)
			lam.SetType(got)
		} else {
			got = c.checkExpr(arg)
		}
		if want == nil || got == nil {
			continue
		}
		if !c.typeAssignable(got, want) {
			c.addError(TypeError, arg.Pos(), "argument %d: expected %s, got %s", i+1, want, got)
		}
	}
	return calleeType.Return
}

// paramTypeAt returns the expected parameter type at call argument index
// i: the declared type if i is within the fixed parameter list, or the
// last (variadic) parameter's type for every trailing argument when the
// callee is variadic.
func paramTypeAt(params []*types.Type, variadic bool, i int) *types.Type {
	if i < len(params) {
		return params[i]
	}
	if variadic && len(params) > 0 {
		return params[len(params)-1]
	}
	return nil
}

// checkInstanceMethodCall implements dispatch path 3 for a `receiver.
// method(args)` call: the method is resolved from the receiver's
// left-hand type, via internal/builtins' table, except Random's four
// generic methods whose return type depends on an array argument's
// element type (spec §4.G.2's explicit carve-out).
func (c *Checker) checkInstanceMethodCall(member *ast.MemberExpr, args []ast.Expression, pos token.Position) *types.Type {
	recvType := c.checkExpr(member.Receiver)
	if recvType == nil {
		return types.VoidType
	}

	if recvType.Kind == types.Random && builtins.IsRandomGenericMethod(member.Name) {
		return c.checkRandomGenericMethod(member.Name, args, pos)
	}

	sig, ok := c.lookupInstanceMethod(recvType, member.Name)
	if !ok {
		c.addError(TypeError, pos, "type %s has no method %q", recvType, member.Name)
		for _, arg := range args {
			c.checkExpr(arg)
		}
		return types.VoidType
	}
	c.checkArgsAgainstSignature(recvType.String()+"."+member.Name, sig, args)
	return sig.Return
}

func (c *Checker) lookupInstanceMethod(recv *types.Type, method string) (builtins.Signature, bool) {
	if recv == nil {
		return builtins.Signature{}, false
	}
	return builtins.LookupInstanceMethod(recv.Kind, method)
}

// checkStaticCall implements dispatch path 3 for `TypeName.method(args)`
// (spec §4.G.2): the parser already recognized typeName as one of the
// closed static-method names via types.LookupStaticTypeName.
func (c *Checker) checkStaticCall(e *ast.StaticCallExpr) *types.Type {
	if e.TypeName == "Random" && builtins.IsRandomGenericMethod(e.Method) {
		return c.checkRandomGenericMethod(e.Method, e.Args, e.Pos())
	}
	sig, ok := builtins.LookupStaticMethod(e.TypeName, e.Method)
	if !ok {
		c.addError(TypeError, e.Pos(), "%s has no static method %q", e.TypeName, e.Method)
		for _, arg := range e.Args {
			c.checkExpr(arg)
		}
		return types.VoidType
	}
	c.checkArgsAgainstSignature(e.TypeName+"."+e.Method, sig, e.Args)
	return sig.Return
}

// checkRandomGenericMethod resolves choice/shuffle/weightedChoice/sample
// directly, since their return type depends on the element type of an
// array argument rather than a fixed table entry (spec §4.G.2).
func (c *Checker) checkRandomGenericMethod(method string, args []ast.Expression, pos token.Position) *types.Type {
	var argTypes []*types.Type
	for _, arg := range args {
		argTypes = append(argTypes, c.checkExpr(arg))
	}
	if len(argTypes) == 0 || argTypes[0] == nil {
		c.addError(TypeError, pos, "Random.%s expects an array argument", method)
		return types.VoidType
	}
	arrType := argTypes[0]
	if arrType.Kind != types.Array {
		c.addError(TypeError, pos, "Random.%s expects an array argument, got %s", method, arrType)
		return types.VoidType
	}
	elem := arrType.Elem

	switch method {
	case "choice":
		if len(argTypes) != 1 {
			c.addError(TypeError, pos, "Random.choice expects 1 argument, got %d", len(argTypes))
		}
		return elem
	case "shuffle":
		if len(argTypes) != 1 {
			c.addError(TypeError, pos, "Random.shuffle expects 1 argument, got %d", len(argTypes))
		}
		return types.VoidType
	case "weightedChoice":
		if len(argTypes) != 2 {
			c.addError(TypeError, pos, "Random.weightedChoice expects 2 arguments, got %d", len(argTypes))
		} else if argTypes[1] != nil && !argTypes[1].Equals(types.NewArray(types.DoubleType)) {
			c.addError(TypeError, args[1].Pos(), "Random.weightedChoice weights must be double[], got %s", argTypes[1])
		}
		return elem
	case "sample":
		if len(argTypes) != 2 {
			c.addError(TypeError, pos, "Random.sample expects 2 arguments, got %d", len(argTypes))
		} else if argTypes[1] != nil && argTypes[1].Kind != types.Int {
			c.addError(TypeError, args[1].Pos(), "Random.sample count must be int, got %s", argTypes[1])
		}
		return types.NewArray(elem)
	default:
		return types.VoidType
	}
}

// checkArgsAgainstSignature validates a builtins.Signature call's arity
// and per-argument assignability, shared by static- and instance-method
// dispatch.
func (c *Checker) checkArgsAgainstSignature(label string, sig builtins.Signature, args []ast.Expression) {
	if sig.Variadic {
		if len(args) < len(sig.Params)-1 {
			c.addError(TypeError, args0Pos(args), "%s expects at least %d argument(s), got %d", label, len(sig.Params)-1, len(args))
		}
	} else if len(args) != len(sig.Params) {
		c.addError(TypeError, args0Pos(args), "%s expects %d argument(s), got %d", label, len(sig.Params), len(args))
	}
	for i, arg := range args {
		want := paramTypeAt(sig.Params, sig.Variadic, i)
		got := c.checkExpr(arg)
		if want == nil || got == nil {
			continue
		}
		if !c.typeAssignable(got, want) {
			c.addError(TypeError, arg.Pos(), "%s argument %d: expected %s, got %s", label, i+1, want, got)
		}
	}
}

// args0Pos reports a position for an arity mismatch when there may be no
// arguments to anchor on.
func args0Pos(args []ast.Expression) token.Position {
	if len(args) > 0 {
		return args[0].Pos()
	}
	return token.Position{}
}
