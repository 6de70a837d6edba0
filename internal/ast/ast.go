// Package ast defines the typed Abstract Syntax Tree produced by the
// parser and walked by every later pass (symbol table, type checker,
// escape analyzer, optimizer). One struct per construct in spec §3.4
// (Expression) and §3.5 (Statement).
//
// Grounded on the teacher's internal/ast package: the Node/Expression/
// Statement marker-interface split, TokenLiteral()/Pos()/String() on
// every node, and one file per node family (expressions.go mirrors the
// teacher's ast.go + control_flow.go; statements.go mirrors
// declarations.go + control_flow.go; typeexpr.go mirrors
// type_expression.go). Nodes carry a types.Type via ExprType once the
// checker runs, matching the teacher's GetType/SetType convention but
// promoted through an embedded BaseExpr instead of hand-duplicated per
// node (the teacher repeats the same three accessor methods on every
// literal/expression struct; embedding collapses that repetition while
// keeping the same field shape).
package ast

import (
	"bytes"
	"strings"

	"github.com/realorko/sindarin/internal/arena"
	"github.com/realorko/sindarin/internal/types"
	"github.com/realorko/sindarin/pkg/token"
)

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	Pos() token.Position
	String() string
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
	GetType() *types.Type
	SetType(*types.Type)
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// BaseExpr is embedded by every Expression implementation; it carries
// the location token and the post-type-check ExprType (spec §3.4).
type BaseExpr struct {
	Tok      token.Token
	ExprType *types.Type
}

func (b *BaseExpr) expressionNode()         {}
func (b *BaseExpr) TokenLiteral() string    { return b.Tok.Literal }
func (b *BaseExpr) Pos() token.Position     { return b.Tok.Pos }
func (b *BaseExpr) GetType() *types.Type    { return b.ExprType }
func (b *BaseExpr) SetType(t *types.Type)   { b.ExprType = t }

// BaseStmt is embedded by every Statement implementation.
type BaseStmt struct {
	Tok token.Token
}

func (b *BaseStmt) statementNode()      {}
func (b *BaseStmt) TokenLiteral() string { return b.Tok.Literal }
func (b *BaseStmt) Pos() token.Position  { return b.Tok.Pos }

// Module is the root node: an ordered list of top-level statements plus
// the filename and, after resolution, the set of imported paths
// (spec §3.6). Modules form a directed graph through Imports; cycles
// are detected by the loader (internal/loader), not here.
type Module struct {
	Filename   string
	Statements []Statement
	Imports    []*ImportStmt
}

func (m *Module) TokenLiteral() string {
	if len(m.Statements) > 0 {
		return m.Statements[0].TokenLiteral()
	}
	return ""
}

func (m *Module) Pos() token.Position {
	if len(m.Statements) > 0 {
		return m.Statements[0].Pos()
	}
	return token.Position{File: m.Filename, Line: 1, Column: 1}
}

func (m *Module) String() string {
	var out bytes.Buffer
	for _, s := range m.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// internWith copies a string into the arena's byte storage when a, which
// is always non-nil for parser-constructed nodes, is provided. This is
// where AST construction honors spec §4.A's "nodes are arena-owned":
// the struct itself lives on the Go heap (Go has no manual-arena struct
// allocation without unsafe), but the string data it references is
// copied into the arena so its lifetime tracks the arena's, not the
// original source buffer's.
func internWith(a *arena.Arena, s string) string {
	if a == nil {
		return s
	}
	return a.Strdup(s)
}

// identList renders a comma-joined expression list, shared by call,
// array, and spread String() implementations.
func identList(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
