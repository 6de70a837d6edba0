package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/realorko/sindarin/internal/types"
	"github.com/realorko/sindarin/pkg/token"
)

// ExpressionStmt wraps an expression used in statement position (a bare
// call, an assignment, an increment, ...).
type ExpressionStmt struct {
	BaseStmt
	Expr Expression
}

func NewExpressionStmt(tok token.Token, expr Expression) *ExpressionStmt {
	return &ExpressionStmt{BaseStmt: BaseStmt{Tok: tok}, Expr: expr}
}

func (s *ExpressionStmt) String() string {
	if s.Expr == nil {
		return ""
	}
	return s.Expr.String()
}

// VarDeclStmt is `var name: Type = initializer` (type and initializer
// both optional, but at least one of them must be present so the
// checker has something to infer from — enforced in internal/checker,
// not here).
type VarDeclStmt struct {
	BaseStmt
	Name         string
	DeclaredType *TypeExpression
	Initializer  Expression
	Qual         types.MemQual
}

func NewVarDeclStmt(tok token.Token, name string, declared *TypeExpression, init Expression, qual types.MemQual) *VarDeclStmt {
	return &VarDeclStmt{BaseStmt: BaseStmt{Tok: tok}, Name: name, DeclaredType: declared, Initializer: init, Qual: qual}
}

func (s *VarDeclStmt) String() string {
	var sb bytes.Buffer
	sb.WriteString("var ")
	sb.WriteString(s.Name)
	if s.DeclaredType != nil {
		sb.WriteString(": ")
		sb.WriteString(s.DeclaredType.String())
	}
	if s.Initializer != nil {
		sb.WriteString(" = ")
		sb.WriteString(s.Initializer.String())
	}
	return sb.String()
}

// FunctionStmt is a named function declaration. Modifier is what the
// source wrote (default, shared, private); EffectiveModifier is what
// the escape analyzer concludes after implicit promotion (spec §4.H) —
// the output AST contract (§6.2) requires every function's effective
// modifier to be set by the time optimization finishes.
type FunctionStmt struct {
	BaseStmt
	Name              string
	Params            []*Param
	ReturnType        *TypeExpression
	Body              []Statement
	Modifier          types.FuncModifier
	EffectiveModifier types.FuncModifier
}

func NewFunctionStmt(tok token.Token, name string, params []*Param, ret *TypeExpression, body []Statement, mod types.FuncModifier) *FunctionStmt {
	return &FunctionStmt{
		BaseStmt: BaseStmt{Tok: tok}, Name: name, Params: params,
		ReturnType: ret, Body: body, Modifier: mod, EffectiveModifier: mod,
	}
}

func (s *FunctionStmt) String() string {
	var sb bytes.Buffer
	sb.WriteString("fn ")
	sb.WriteString(s.Name)
	sb.WriteString("(")
	sb.WriteString(paramsString(s.Params))
	sb.WriteString(")")
	if s.Modifier != types.ModDefault {
		sb.WriteString(" ")
		sb.WriteString(s.Modifier.String())
	}
	sb.WriteString(": ")
	sb.WriteString(s.ReturnType.String())
	sb.WriteString(fmt.Sprintf(" => <%d stmts>", len(s.Body)))
	return sb.String()
}

// ReturnStmt is `return value` or a bare `return` in a void function
// (Value is nil in that case).
type ReturnStmt struct {
	BaseStmt
	Value Expression
}

func NewReturnStmt(tok token.Token, value Expression) *ReturnStmt {
	return &ReturnStmt{BaseStmt: BaseStmt{Tok: tok}, Value: value}
}

func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "return"
	}
	return "return " + s.Value.String()
}

// BlockStmt is an indentation-delimited statement list. Modifier carries
// the block's own shared/private flag, independent of its enclosing
// function's modifier (spec §3.5).
type BlockStmt struct {
	BaseStmt
	Statements []Statement
	Modifier   types.FuncModifier
}

func NewBlockStmt(tok token.Token, stmts []Statement, mod types.FuncModifier) *BlockStmt {
	return &BlockStmt{BaseStmt: BaseStmt{Tok: tok}, Statements: stmts, Modifier: mod}
}

func (s *BlockStmt) String() string {
	var sb bytes.Buffer
	for _, st := range s.Statements {
		sb.WriteString("  ")
		sb.WriteString(strings.ReplaceAll(st.String(), "\n", "\n  "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// IfStmt is `if cond => then-block [else ...]`. Else may be nil, another
// *IfStmt (an else-if chain), or a *BlockStmt.
type IfStmt struct {
	BaseStmt
	Condition Expression
	Then      *BlockStmt
	Else      Statement
}

func NewIfStmt(tok token.Token, cond Expression, then *BlockStmt, els Statement) *IfStmt {
	return &IfStmt{BaseStmt: BaseStmt{Tok: tok}, Condition: cond, Then: then, Else: els}
}

func (s *IfStmt) String() string {
	var sb bytes.Buffer
	sb.WriteString("if ")
	sb.WriteString(s.Condition.String())
	sb.WriteString(" =>\n")
	sb.WriteString(s.Then.String())
	if s.Else != nil {
		sb.WriteString("else\n")
		sb.WriteString(s.Else.String())
	}
	return sb.String()
}

// WhileStmt is `while cond => body`.
type WhileStmt struct {
	BaseStmt
	Condition Expression
	Body      *BlockStmt
	Modifier  types.FuncModifier
}

func NewWhileStmt(tok token.Token, cond Expression, body *BlockStmt, mod types.FuncModifier) *WhileStmt {
	return &WhileStmt{BaseStmt: BaseStmt{Tok: tok}, Condition: cond, Body: body, Modifier: mod}
}

func (s *WhileStmt) String() string {
	return fmt.Sprintf("while %s =>\n%s", s.Condition.String(), s.Body.String())
}

// ForStmt is the classic three-clause counted loop: `for init; cond; post => body`.
// Init and Post may be nil.
type ForStmt struct {
	BaseStmt
	Init      Statement
	Condition Expression
	Post      Statement
	Body      *BlockStmt
	Modifier  types.FuncModifier
}

func NewForStmt(tok token.Token, init Statement, cond Expression, post Statement, body *BlockStmt, mod types.FuncModifier) *ForStmt {
	return &ForStmt{BaseStmt: BaseStmt{Tok: tok}, Init: init, Condition: cond, Post: post, Body: body, Modifier: mod}
}

func (s *ForStmt) String() string {
	return fmt.Sprintf("for ... =>\n%s", s.Body.String())
}

// ForEachStmt is `for x in iterable => body`. The iteration variable is
// a PARAM-kind symbol scoped to the loop body (spec §4.G.3).
type ForEachStmt struct {
	BaseStmt
	VarName  string
	Iterable Expression
	Body     *BlockStmt
	Modifier types.FuncModifier
}

func NewForEachStmt(tok token.Token, varName string, iterable Expression, body *BlockStmt, mod types.FuncModifier) *ForEachStmt {
	return &ForEachStmt{BaseStmt: BaseStmt{Tok: tok}, VarName: varName, Iterable: iterable, Body: body, Modifier: mod}
}

func (s *ForEachStmt) String() string {
	return fmt.Sprintf("for %s in %s =>\n%s", s.VarName, s.Iterable.String(), s.Body.String())
}

// BreakStmt is `break`.
type BreakStmt struct{ BaseStmt }

func NewBreakStmt(tok token.Token) *BreakStmt { return &BreakStmt{BaseStmt{Tok: tok}} }
func (s *BreakStmt) String() string           { return "break" }

// ContinueStmt is `continue`.
type ContinueStmt struct{ BaseStmt }

func NewContinueStmt(tok token.Token) *ContinueStmt { return &ContinueStmt{BaseStmt{Tok: tok}} }
func (s *ContinueStmt) String() string              { return "continue" }

// ImportStmt is `import "path"` (non-namespaced: Namespace == "") or
// `import "path" as ns` (namespaced). Module is populated by the loader
// once the target file has been resolved (spec §4.J).
type ImportStmt struct {
	BaseStmt
	Path      string
	Namespace string
	Module    *Module
}

func NewImportStmt(tok token.Token, path, namespace string) *ImportStmt {
	return &ImportStmt{BaseStmt: BaseStmt{Tok: tok}, Path: path, Namespace: namespace}
}

func (s *ImportStmt) String() string {
	if s.Namespace == "" {
		return fmt.Sprintf("import %q", s.Path)
	}
	return fmt.Sprintf("import %q as %s", s.Path, s.Namespace)
}
