package checker

import (
	"testing"

	"github.com/realorko/sindarin/internal/arena"
	"github.com/realorko/sindarin/internal/ast"
	"github.com/realorko/sindarin/internal/lexer"
	"github.com/realorko/sindarin/internal/parser"
	"github.com/realorko/sindarin/internal/types"
)

func parseAndCheck(t *testing.T, src string) (*ast.Module, *Checker) {
	t.Helper()
	l := lexer.New(src, "test.sn")
	p := parser.New(l, arena.New())
	mod := p.ParseModule("test.sn")
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	c := New()
	c.CheckModule(mod)
	return mod, c
}

func TestRecursiveSumFunctionTypeChecksCleanly(t *testing.T) {
	src := "fn sum(n: int): int =>\n  if n == 0 =>\n    return 0\n  return n + sum(n-1)\n"
	_, c := parseAndCheck(t, src)
	if len(c.Errors()) > 0 {
		t.Fatalf("unexpected checker errors: %v", c.Errors())
	}
}

func TestAssignTypeMismatchIsAnError(t *testing.T) {
	src := "var x: int = \"hello\"\n"
	_, c := parseAndCheck(t, src)
	if len(c.Errors()) == 0 {
		t.Fatal("expected a type error assigning str to int")
	}
}

func TestUndefinedVariableIsAResolutionError(t *testing.T) {
	src := "var x = y + 1\n"
	_, c := parseAndCheck(t, src)
	if len(c.Errors()) == 0 {
		t.Fatal("expected an error for an undefined name")
	}
	if c.Errors()[0].Kind != ResolutionError {
		t.Fatalf("expected a ResolutionError, got %s", c.Errors()[0].Kind)
	}
}

func TestIntByteNarrowingIsAccepted(t *testing.T) {
	src := "var b: byte = 1\n"
	_, c := parseAndCheck(t, src)
	if len(c.Errors()) > 0 {
		t.Fatalf("expected int literal to narrow to byte without error, got %v", c.Errors())
	}
}

func TestForEachOverNonArrayIsAnError(t *testing.T) {
	src := "var n = 5\nfor x in n =>\n  break\n"
	_, c := parseAndCheck(t, src)
	if len(c.Errors()) == 0 {
		t.Fatal("expected an error iterating a non-array value")
	}
}

func TestForEachOverArrayBindsElementType(t *testing.T) {
	src := "var items: int[] = {1, 2, 3}\nfor x in items =>\n  var y = x + 1\n"
	_, c := parseAndCheck(t, src)
	if len(c.Errors()) > 0 {
		t.Fatalf("unexpected checker errors: %v", c.Errors())
	}
}

func TestDuplicateFunctionNameInSameScopeIsAnError(t *testing.T) {
	src := "fn f(): int =>\n  return 1\nfn f(): int =>\n  return 2\n"
	_, c := parseAndCheck(t, src)
	if len(c.Errors()) == 0 {
		t.Fatal("expected a duplicate-function error")
	}
}

func TestEmptyArrayLiteralCoercesToDeclaredElementType(t *testing.T) {
	src := "var items: str[] = {}\n"
	_, c := parseAndCheck(t, src)
	if len(c.Errors()) > 0 {
		t.Fatalf("expected an empty array literal to coerce cleanly, got %v", c.Errors())
	}
}

func TestLogicalOperatorsRequireBoolOperands(t *testing.T) {
	src := "var x = 1 && 2\n"
	_, c := parseAndCheck(t, src)
	if len(c.Errors()) == 0 {
		t.Fatal("expected && on non-bool operands to be an error")
	}
}

func TestStringConcatenationRequiresBothOperandsStr(t *testing.T) {
	src := "var x = \"a\" + 1\n"
	_, c := parseAndCheck(t, src)
	if len(c.Errors()) == 0 {
		t.Fatal("expected str + int to be an error")
	}
}

func TestRandomChoiceReturnsArrayElementType(t *testing.T) {
	src := "var items: int[] = {1, 2, 3}\nvar picked = Random.choice(items)\n"
	mod, c := parseAndCheck(t, src)
	if len(c.Errors()) > 0 {
		t.Fatalf("unexpected checker errors: %v", c.Errors())
	}
	decl := mod.Statements[1].(*ast.VarDeclStmt)
	if decl.Initializer.GetType().Kind != types.Int {
		t.Fatalf("expected Random.choice(int[]) to resolve to int, got %s", decl.Initializer.GetType())
	}
}

func TestUnknownStaticMethodIsAnError(t *testing.T) {
	src := "var x = Time.bogus()\n"
	_, c := parseAndCheck(t, src)
	if len(c.Errors()) == 0 {
		t.Fatal("expected an error calling an unknown static method")
	}
}

func TestArrayPushInstanceMethodResolves(t *testing.T) {
	src := "var items: int[] = {1}\nitems.push(2)\n"
	_, c := parseAndCheck(t, src)
	if len(c.Errors()) > 0 {
		t.Fatalf("unexpected checker errors: %v", c.Errors())
	}
}

func TestAsRefOnArrayParamIsAnError(t *testing.T) {
	src := "fn f(items: int[] as ref): void =>\n  return\n"
	_, c := parseAndCheck(t, src)
	if len(c.Errors()) == 0 {
		t.Fatal("expected 'as ref' on a non-primitive parameter to be an error")
	}
}

func TestAsValOnPrimitiveParamIsAcceptedSilently(t *testing.T) {
	src := "fn f(n: int as val): void =>\n  return\n"
	_, c := parseAndCheck(t, src)
	if len(c.Errors()) > 0 {
		t.Fatalf("expected 'as val' on a primitive to be accepted silently, got %v", c.Errors())
	}
}

func TestNamespacedImportCollisionWithExistingNameIsAnError(t *testing.T) {
	src := "var mathlib = 1\nimport \"mathlib\" as mathlib\n"
	mod, _ := parseAndCheck(t, src)
	imp := mod.Imports[0]
	imp.Module = &ast.Module{Filename: "mathlib.sn"}
	c2 := New()
	c2.CheckModule(&ast.Module{Filename: "test.sn", Statements: mod.Statements, Imports: mod.Imports})
	if len(c2.Errors()) == 0 {
		t.Fatal("expected a namespace collision error")
	}
}

func TestLambdaParamTypeIsBackInferredFromDeclaredVariableType(t *testing.T) {
	src := "var f: fn(int): int = fn(x) =>\n  return x + 1\n"
	_, c := parseAndCheck(t, src)
	if len(c.Errors()) > 0 {
		t.Fatalf("unexpected checker errors: %v", c.Errors())
	}
}

func TestLambdaCapturesFreeVariablesNotParamsOrLocals(t *testing.T) {
	src := "var total: int = 0\n" +
		"var f: fn(int): int = fn(x) =>\n" +
		"  var y = x\n" +
		"  return total + x + y\n"
	mod, c := parseAndCheck(t, src)
	if len(c.Errors()) > 0 {
		t.Fatalf("unexpected checker errors: %v", c.Errors())
	}
	decl, ok := mod.Statements[1].(*ast.VarDeclStmt)
	if !ok {
		t.Fatalf("expected statement 1 to be a VarDeclStmt, got %T", mod.Statements[1])
	}
	lam, ok := decl.Initializer.(*ast.LambdaExpr)
	if !ok {
		t.Fatalf("expected initializer to be a LambdaExpr, got %T", decl.Initializer)
	}
	if len(lam.Captures) != 1 || lam.Captures[0] != "total" {
		t.Fatalf("expected Captures = [total], got %v", lam.Captures)
	}
}

func TestSyncResolvesToHandleDeclaredType(t *testing.T) {
	src := "fn worker(n: int): int =>\n" +
		"  return n\n" +
		"fn main(): void =>\n" +
		"  var h: int = spawn worker(1)\n" +
		"  var r: int = sync h\n"
	_, c := parseAndCheck(t, src)
	if len(c.Errors()) > 0 {
		t.Fatalf("unexpected checker errors: %v", c.Errors())
	}
}
