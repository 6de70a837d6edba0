package escape

import (
	"testing"

	"github.com/realorko/sindarin/internal/arena"
	"github.com/realorko/sindarin/internal/ast"
	"github.com/realorko/sindarin/internal/checker"
	"github.com/realorko/sindarin/internal/lexer"
	"github.com/realorko/sindarin/internal/parser"
	"github.com/realorko/sindarin/internal/types"
)

// parseCheckAndAnalyze runs the full front-end pipeline up through this
// package: lex, parse, type-check (which stamps every TypeExpression's
// Resolved field and every Expression's GetType()), then escape-analyze.
func parseCheckAndAnalyze(t *testing.T, src string) (*ast.Module, *Analyzer) {
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
	a := New()
	a.AnalyzeModule(mod)
	return mod, a
}

func TestPrivateFunctionReturningArrayIsAnError(t *testing.T) {
	src := "fn f() private: int[] =>\n  return {1}\n"
	_, a := parseCheckAndAnalyze(t, src)
	if len(a.Errors()) == 0 {
		t.Fatal("expected an error: private function cannot return an array")
	}
}

func TestPrivateFunctionReturningIntIsAccepted(t *testing.T) {
	src := "fn f() private: int =>\n  return 1\n"
	_, a := parseCheckAndAnalyze(t, src)
	if len(a.Errors()) > 0 {
		t.Fatalf("unexpected escape errors: %v", a.Errors())
	}
}

func TestDefaultFunctionReturningArrayIsPromotedToShared(t *testing.T) {
	src := "fn f(): int[] =>\n  return {1}\n"
	mod, a := parseCheckAndAnalyze(t, src)
	if len(a.Errors()) > 0 {
		t.Fatalf("unexpected escape errors: %v", a.Errors())
	}
	fn := mod.Statements[0].(*ast.FunctionStmt)
	if fn.EffectiveModifier != types.ModShared {
		t.Fatalf("expected implicit promotion to shared, got %s", fn.EffectiveModifier)
	}
}

func TestDefaultFunctionReturningIntStaysDefault(t *testing.T) {
	src := "fn f(): int =>\n  return 1\n"
	mod, a := parseCheckAndAnalyze(t, src)
	if len(a.Errors()) > 0 {
		t.Fatalf("unexpected escape errors: %v", a.Errors())
	}
	fn := mod.Statements[0].(*ast.FunctionStmt)
	if fn.EffectiveModifier != types.ModDefault {
		t.Fatalf("expected no promotion, got %s", fn.EffectiveModifier)
	}
}

func TestPrivateBlockEscapeViolationIsAnError(t *testing.T) {
	src := "fn f(): void =>\n  var outer: int[] = {}\n  private =>\n    outer = {1, 2}\n  return\n"
	_, a := parseCheckAndAnalyze(t, src)
	if len(a.Errors()) == 0 {
		t.Fatal("expected an escape-violation error")
	}
}

func TestPrivateBlockAssigningItsOwnLocalIsNotAViolation(t *testing.T) {
	src := "fn f(): void =>\n  private =>\n    var inner: int[] = {}\n    inner = {1, 2}\n  return\n"
	_, a := parseCheckAndAnalyze(t, src)
	if len(a.Errors()) > 0 {
		t.Fatalf("unexpected escape errors assigning a private block's own local: %v", a.Errors())
	}
}

func TestFrozenArgWriteAfterSpawnIsAnError(t *testing.T) {
	src := "fn worker(n: int as ref): void =>\n  return\nfn f(): void =>\n  var n = 1\n  var h = spawn worker(n)\n  n = 2\n"
	_, a := parseCheckAndAnalyze(t, src)
	if len(a.Errors()) == 0 {
		t.Fatal("expected an error writing to an argument frozen by a pending spawn")
	}
}

func TestWriteAfterSyncIsNotAnError(t *testing.T) {
	src := "fn worker(n: int as ref): void =>\n  return\nfn f(): void =>\n  var n = 1\n  var h = spawn worker(n)\n  sync h\n  n = 2\n"
	_, a := parseCheckAndAnalyze(t, src)
	if len(a.Errors()) > 0 {
		t.Fatalf("unexpected escape errors after sync unfreezes the argument: %v", a.Errors())
	}
}

func TestPendingSpawnNotSyncedIsAWarning(t *testing.T) {
	src := "fn worker(): int =>\n  return 1\nfn f(): void =>\n  var h = spawn worker()\n  return\n"
	_, a := parseCheckAndAnalyze(t, src)
	if len(a.Errors()) == 0 {
		t.Fatal("expected a warning for an unconsumed pending spawn")
	}
	if a.Errors()[0].Severity != SeverityWarning {
		t.Fatalf("expected a warning severity, got %v", a.Errors()[0].Severity)
	}
}
