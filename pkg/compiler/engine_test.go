package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/realorko/sindarin/internal/ast"
)

func TestParseValidSource(t *testing.T) {
	e := New()
	src := "fn add(a: int, b: int): int =>\n  return a + b\n"
	mod, err := e.Parse(src, "test.sn")
	if err != nil {
		t.Fatalf("Parse returned unexpected error: %v", err)
	}
	if len(mod.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(mod.Statements))
	}
	if _, ok := mod.Statements[0].(*ast.FunctionStmt); !ok {
		t.Fatalf("expected a FunctionStmt, got %T", mod.Statements[0])
	}
}

func TestParseSyntaxErrorReportsParsingStage(t *testing.T) {
	e := New()
	_, err := e.Parse("fn f(: int =>\n  return 1\n", "test.sn")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	compileErr, ok := err.(*CompileError)
	if !ok {
		t.Fatalf("expected *CompileError, got %T", err)
	}
	if compileErr.Stage != "parsing" {
		t.Errorf("Stage = %q, want %q", compileErr.Stage, "parsing")
	}
	if len(compileErr.Errors) == 0 {
		t.Fatal("expected at least one structured error")
	}
}

func TestCompileTypeErrorReportsCheckingStage(t *testing.T) {
	e := New()
	src := "fn f(): int =>\n  return \"not an int\"\n"
	_, err := e.Compile(src, "test.sn")
	if err == nil {
		t.Fatal("expected a type error")
	}
	compileErr, ok := err.(*CompileError)
	if !ok {
		t.Fatalf("expected *CompileError, got %T", err)
	}
	if compileErr.Stage != "checking" {
		t.Errorf("Stage = %q, want %q", compileErr.Stage, "checking")
	}
	if !compileErr.HasErrors() {
		t.Error("expected CompileError.HasErrors() to be true")
	}
}

func TestCompileSuccessRunsOptimizer(t *testing.T) {
	e := New()
	src := "fn f(x: int): int =>\n  var unused = 1\n  return x + 0\n"
	program, err := e.Compile(src, "test.sn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if program.Optimized.VariablesRemoved != 1 {
		t.Errorf("VariablesRemoved = %d, want 1", program.Optimized.VariablesRemoved)
	}
	if program.Optimized.NoopsRemoved != 1 {
		t.Errorf("NoopsRemoved = %d, want 1", program.Optimized.NoopsRemoved)
	}
}

func TestCompileFileSplicesImportsBeforeChecking(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mathutils.sn"), []byte("fn square(x: int): int =>\n  return x * x\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	root := filepath.Join(dir, "root.sn")
	if err := os.WriteFile(root, []byte("import \"mathutils\"\nfn main(): int =>\n  return square(3)\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	e := New()
	program, err := e.CompileFile(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(program.Module.Statements) != 3 {
		t.Fatalf("expected the spliced function + import + main, got %d statements", len(program.Module.Statements))
	}
}

func TestCompileFileCyclicImportReportsLoadingStage(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.sn"), []byte("import \"b\"\nfn fromA(): void =>\n  return\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.sn"), []byte("import \"a\"\nfn fromB(): void =>\n  return\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	e := New()
	_, err := e.CompileFile(filepath.Join(dir, "a.sn"))
	if err == nil {
		t.Fatal("expected a cyclic-import error")
	}
	compileErr, ok := err.(*CompileError)
	if !ok {
		t.Fatalf("expected *CompileError, got %T", err)
	}
	if compileErr.Stage != "loading" {
		t.Errorf("Stage = %q, want %q", compileErr.Stage, "loading")
	}
}
