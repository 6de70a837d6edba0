package ast

import (
	"testing"

	"github.com/realorko/sindarin/internal/types"
	"github.com/realorko/sindarin/pkg/token"
)

func tok(kind token.Kind, lit string) token.Token {
	return token.New(kind, lit, token.Position{File: "t.sin", Line: 1, Column: 1})
}

func TestBinaryExprString(t *testing.T) {
	left := NewVariableExpr(nil, tok(token.IDENT, "x"), "x")
	right := NewLiteralExpr(tok(token.INT_LITERAL, "0"), types.Int, token.Literal{Int: 0})
	e := NewBinaryExpr(nil, tok(token.PLUS, "+"), left, "+", right)
	if got := e.String(); got != "(x + 0)" {
		t.Fatalf("String() = %q", got)
	}
}

func TestExpressionSatisfiesInterface(t *testing.T) {
	var exprs []Expression
	exprs = append(exprs,
		NewVariableExpr(nil, tok(token.IDENT, "x"), "x"),
		NewLiteralExpr(tok(token.INT_LITERAL, "1"), types.Int, token.Literal{Int: 1}),
		NewCallExpr(tok(token.IDENT, "f"), NewVariableExpr(nil, tok(token.IDENT, "f"), "f"), nil),
	)
	for _, e := range exprs {
		if e.GetType() != nil {
			t.Fatalf("expected nil ExprType before checking")
		}
		e.SetType(types.IntType)
		if e.GetType() != types.IntType {
			t.Fatalf("SetType/GetType round-trip failed")
		}
	}
}

func TestCallExprTailCallDefaultsFalse(t *testing.T) {
	c := NewCallExpr(tok(token.IDENT, "f"), NewVariableExpr(nil, tok(token.IDENT, "f"), "f"), nil)
	if c.IsTailCall {
		t.Fatal("IsTailCall should default to false")
	}
}

func TestFunctionStmtEffectiveModifierDefaultsToDeclared(t *testing.T) {
	fn := NewFunctionStmt(tok(token.FN, "fn"), "f", nil, NewTypeExpression(tok(token.VOID, "void"), types.Void), nil, types.ModShared)
	if fn.EffectiveModifier != types.ModShared {
		t.Fatalf("EffectiveModifier = %s, want shared", fn.EffectiveModifier)
	}
}

func TestIndexAssignDistinctFromAssign(t *testing.T) {
	arr := NewVariableExpr(nil, tok(token.IDENT, "b"), "b")
	idx := NewLiteralExpr(tok(token.INT_LITERAL, "0"), types.Int, token.Literal{Int: 0})
	val := NewLiteralExpr(tok(token.INT_LITERAL, "9"), types.Int, token.Literal{Int: 9})
	ia := NewIndexAssignExpr(tok(token.ASSIGN, "="), arr, idx, val)
	if ia.Container != arr {
		t.Fatal("Container should be the indexed expression")
	}
}

func TestImportStmtNamespaceFormatting(t *testing.T) {
	merged := NewImportStmt(tok(token.IMPORT, "import"), "utils.sin", "")
	ns := NewImportStmt(tok(token.IMPORT, "import"), "utils.sin", "u")
	if merged.String() != `import "utils.sin"` {
		t.Fatalf("merged import String() = %q", merged.String())
	}
	if ns.String() != `import "utils.sin" as u` {
		t.Fatalf("namespaced import String() = %q", ns.String())
	}
}
