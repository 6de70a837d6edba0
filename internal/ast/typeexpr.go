package ast

import (
	"fmt"
	"strings"

	"github.com/realorko/sindarin/internal/types"
	"github.com/realorko/sindarin/pkg/token"
)

// TypeExpression is the parsed-but-not-yet-resolved spelling of a type
// annotation (e.g. `int`, `str[]`, `byte[]`). The checker resolves it to
// a *types.Type; this node only records what the source text said.
//
// Grounded on the teacher's internal/ast/type_expression.go, which keeps
// the same split between "what the parser saw" and "what the checker
// resolved it to".
type TypeExpression struct {
	Tok      token.Token
	Kind     types.Kind
	ElemType *TypeExpression // set when Kind == types.Array

	// Set when Kind == types.Function.
	FuncParams []*TypeExpression
	FuncReturn *TypeExpression

	Resolved *types.Type // populated by the checker
}

func NewTypeExpression(tok token.Token, kind types.Kind) *TypeExpression {
	return &TypeExpression{Tok: tok, Kind: kind}
}

func NewArrayTypeExpression(tok token.Token, elem *TypeExpression) *TypeExpression {
	return &TypeExpression{Tok: tok, Kind: types.Array, ElemType: elem}
}

// NewFunctionTypeExpression builds the type-annotation spelling of a
// function type, e.g. `fn(int, str): bool`.
func NewFunctionTypeExpression(tok token.Token, params []*TypeExpression, ret *TypeExpression) *TypeExpression {
	return &TypeExpression{Tok: tok, Kind: types.Function, FuncParams: params, FuncReturn: ret}
}

func (t *TypeExpression) TokenLiteral() string { return t.Tok.Literal }
func (t *TypeExpression) Pos() token.Position  { return t.Tok.Pos }

func (t *TypeExpression) String() string {
	switch t.Kind {
	case types.Array:
		return t.ElemType.String() + "[]"
	case types.Function:
		parts := make([]string, len(t.FuncParams))
		for i, p := range t.FuncParams {
			parts[i] = p.String()
		}
		return fmt.Sprintf("fn(%s): %s", strings.Join(parts, ", "), t.FuncReturn.String())
	default:
		return t.Kind.String()
	}
}

// Param is a single function/lambda parameter: `name: Type [as val|ref]`.
type Param struct {
	Tok  token.Token
	Name string
	Type *TypeExpression
	Qual types.MemQual
}

func (p *Param) String() string {
	if p.Qual == types.MemDefault {
		return fmt.Sprintf("%s: %s", p.Name, p.Type.String())
	}
	return fmt.Sprintf("%s: %s as %s", p.Name, p.Type.String(), p.Qual)
}

func paramsString(params []*Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}
