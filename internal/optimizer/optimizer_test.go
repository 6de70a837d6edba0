package optimizer

import (
	"testing"

	"github.com/realorko/sindarin/internal/arena"
	"github.com/realorko/sindarin/internal/ast"
	"github.com/realorko/sindarin/internal/checker"
	"github.com/realorko/sindarin/internal/lexer"
	"github.com/realorko/sindarin/internal/parser"
)

func parseCheckAndOptimize(t *testing.T, src string) (*ast.Module, *Optimizer) {
	t.Helper()
	l := lexer.New(src, "test.sn")
	p := parser.New(l, arena.New())
	mod := p.ParseModule("test.sn")
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	c := checker.New()
	c.CheckModule(mod)
	if len(c.Errors()) > 0 {
		t.Fatalf("unexpected checker errors: %v", c.Errors())
	}
	o := New()
	o.Optimize(mod)
	return mod, o
}

func TestXPlusZeroFoldsToX(t *testing.T) {
	src := "fn f(x: int): int =>\n  var y = x + 0\n  return y\n"
	mod, o := parseCheckAndOptimize(t, src)
	fn := mod.Statements[0].(*ast.FunctionStmt)
	vd := fn.Body[0].(*ast.VarDeclStmt)
	v, ok := vd.Initializer.(*ast.VariableExpr)
	if !ok || v.Name != "x" {
		t.Fatalf("expected x + 0 to fold to bare x, got %s", vd.Initializer.String())
	}
	if o.Counters.NoopsRemoved != 1 {
		t.Fatalf("NoopsRemoved = %d, want 1", o.Counters.NoopsRemoved)
	}
}

func TestXTimesZeroIsNotFolded(t *testing.T) {
	src := "fn f(x: int): int =>\n  var y = x * 0\n  return y\n"
	mod, _ := parseCheckAndOptimize(t, src)
	fn := mod.Statements[0].(*ast.FunctionStmt)
	vd := fn.Body[0].(*ast.VarDeclStmt)
	if _, ok := vd.Initializer.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected x * 0 to survive unfolded, got %T", vd.Initializer)
	}
}

func TestDoubleNegationFolds(t *testing.T) {
	src := "fn f(x: bool): bool =>\n  return !!x\n"
	mod, _ := parseCheckAndOptimize(t, src)
	fn := mod.Statements[0].(*ast.FunctionStmt)
	ret := fn.Body[0].(*ast.ReturnStmt)
	v, ok := ret.Value.(*ast.VariableExpr)
	if !ok || v.Name != "x" {
		t.Fatalf("expected !!x to fold to bare x, got %s", ret.Value.String())
	}
}

func TestStringLiteralConcatenationFolds(t *testing.T) {
	src := "fn f(): str =>\n  return \"a\" + \"b\"\n"
	mod, o := parseCheckAndOptimize(t, src)
	fn := mod.Statements[0].(*ast.FunctionStmt)
	ret := fn.Body[0].(*ast.ReturnStmt)
	lit, ok := ret.Value.(*ast.LiteralExpr)
	if !ok || lit.Value.Str != "ab" {
		t.Fatalf("expected folded literal \"ab\", got %s", ret.Value.String())
	}
	if o.Counters.StringLiteralsMerged != 1 {
		t.Fatalf("StringLiteralsMerged = %d, want 1", o.Counters.StringLiteralsMerged)
	}
}

func TestUnusedPureVariableIsRemoved(t *testing.T) {
	src := "fn f(): void =>\n  var unused = 1\n  return\n"
	mod, o := parseCheckAndOptimize(t, src)
	fn := mod.Statements[0].(*ast.FunctionStmt)
	if len(fn.Body) != 1 {
		t.Fatalf("expected the dead var_decl to be removed, body has %d statements", len(fn.Body))
	}
	if o.Counters.VariablesRemoved != 1 {
		t.Fatalf("VariablesRemoved = %d, want 1", o.Counters.VariablesRemoved)
	}
}

func TestUnusedImpureVariableIsKept(t *testing.T) {
	src := "fn helper(): int =>\n  return 1\nfn f(): void =>\n  var unused = helper()\n  return\n"
	mod, o := parseCheckAndOptimize(t, src)
	fn := mod.Statements[1].(*ast.FunctionStmt)
	if len(fn.Body) != 2 {
		t.Fatalf("expected the impure var_decl to survive, body has %d statements", len(fn.Body))
	}
	if o.Counters.VariablesRemoved != 0 {
		t.Fatalf("VariablesRemoved = %d, want 0 since the call has a side effect", o.Counters.VariablesRemoved)
	}
}

func TestStatementsAfterReturnAreRemoved(t *testing.T) {
	src := "fn f(n: int): int =>\n  var a = n\n  return a\n  var b = 2\n"
	mod, o := parseCheckAndOptimize(t, src)
	fn := mod.Statements[0].(*ast.FunctionStmt)
	if len(fn.Body) != 2 {
		t.Fatalf("expected the statement after return to be removed, body has %d statements", len(fn.Body))
	}
	if o.Counters.StatementsRemoved != 1 {
		t.Fatalf("StatementsRemoved = %d, want 1", o.Counters.StatementsRemoved)
	}
}

func TestIfWithoutElseIsNeverATerminator(t *testing.T) {
	src := "fn f(n: int): int =>\n  if n == 0 =>\n    return 0\n  return n\n"
	mod, o := parseCheckAndOptimize(t, src)
	fn := mod.Statements[0].(*ast.FunctionStmt)
	if len(fn.Body) != 2 {
		t.Fatalf("expected both the if and the trailing return to survive, body has %d statements", len(fn.Body))
	}
	if o.Counters.StatementsRemoved != 0 {
		t.Fatalf("StatementsRemoved = %d, want 0: an if without else is never a terminator", o.Counters.StatementsRemoved)
	}
}

func TestSelfRecursiveReturnCallIsMarkedTailCall(t *testing.T) {
	src := "fn sum(n: int): int =>\n  if n == 0 =>\n    return 0\n  return sum(n - 1)\n"
	mod, o := parseCheckAndOptimize(t, src)
	fn := mod.Statements[0].(*ast.FunctionStmt)
	ret := fn.Body[1].(*ast.ReturnStmt)
	call, ok := ret.Value.(*ast.CallExpr)
	if !ok || !call.IsTailCall {
		t.Fatalf("expected the recursive return sum(n - 1) to be marked as a tail call")
	}
	if o.Counters.TailCallsOptimized != 1 {
		t.Fatalf("TailCallsOptimized = %d, want 1", o.Counters.TailCallsOptimized)
	}
}
