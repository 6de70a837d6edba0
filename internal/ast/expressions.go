package ast

import (
	"bytes"
	"fmt"

	"github.com/realorko/sindarin/internal/arena"
	"github.com/realorko/sindarin/internal/types"
	"github.com/realorko/sindarin/pkg/token"
)

// BinaryExpr is a binary operation (e.g. a + b, x < y).
type BinaryExpr struct {
	BaseExpr
	Left     Expression
	Operator string
	Right    Expression
}

func NewBinaryExpr(a *arena.Arena, tok token.Token, left Expression, op string, right Expression) *BinaryExpr {
	return &BinaryExpr{BaseExpr: BaseExpr{Tok: tok}, Left: left, Operator: internWith(a, op), Right: right}
}

func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Operator, e.Right.String())
}

// UnaryExpr is a prefix unary operation (-x, !b).
type UnaryExpr struct {
	BaseExpr
	Operator string
	Operand  Expression
}

func NewUnaryExpr(a *arena.Arena, tok token.Token, op string, operand Expression) *UnaryExpr {
	return &UnaryExpr{BaseExpr: BaseExpr{Tok: tok}, Operator: internWith(a, op), Operand: operand}
}

func (e *UnaryExpr) String() string { return fmt.Sprintf("(%s%s)", e.Operator, e.Operand.String()) }

// LiteralExpr is a single literal value: int, long, double, char, str,
// bool, or nil (spec §3.4 "literal").
type LiteralExpr struct {
	BaseExpr
	Kind  types.Kind
	Value token.Literal
}

func NewLiteralExpr(tok token.Token, kind types.Kind, value token.Literal) *LiteralExpr {
	return &LiteralExpr{BaseExpr: BaseExpr{Tok: tok}, Kind: kind, Value: value}
}

func (e *LiteralExpr) String() string {
	switch e.Kind {
	case types.Str:
		return fmt.Sprintf("%q", e.Value.Str)
	case types.Char:
		return fmt.Sprintf("'%c'", e.Value.Char)
	case types.Nil:
		return "nil"
	default:
		return e.Tok.Literal
	}
}

// VariableExpr is a reference to a named local, parameter, function, or
// namespace member.
type VariableExpr struct {
	BaseExpr
	Name string
}

func NewVariableExpr(a *arena.Arena, tok token.Token, name string) *VariableExpr {
	return &VariableExpr{BaseExpr: BaseExpr{Tok: tok}, Name: internWith(a, name)}
}

func (e *VariableExpr) String() string { return e.Name }

// AssignExpr is `target = value`.
type AssignExpr struct {
	BaseExpr
	Target Expression
	Value  Expression
}

func NewAssignExpr(tok token.Token, target, value Expression) *AssignExpr {
	return &AssignExpr{BaseExpr: BaseExpr{Tok: tok}, Target: target, Value: value}
}

func (e *AssignExpr) String() string { return fmt.Sprintf("%s = %s", e.Target.String(), e.Value.String()) }

// IndexAssignExpr is `container[index] = value`. Modeled separately
// from AssignExpr because the optimizer's dead-variable pass treats an
// index-assign target as a read of the container (spec §4.I pass 3),
// unlike a plain assignment's target.
type IndexAssignExpr struct {
	BaseExpr
	Container Expression
	Index     Expression
	Value     Expression
}

func NewIndexAssignExpr(tok token.Token, container, index, value Expression) *IndexAssignExpr {
	return &IndexAssignExpr{BaseExpr: BaseExpr{Tok: tok}, Container: container, Index: index, Value: value}
}

func (e *IndexAssignExpr) String() string {
	return fmt.Sprintf("%s[%s] = %s", e.Container.String(), e.Index.String(), e.Value.String())
}

// CallExpr is a regular function or lambda call. IsTailCall is false
// until the optimizer's tail-call pass marks a `return f(...)` that
// references its own enclosing function (spec §4.I pass 4, §8 property 8).
type CallExpr struct {
	BaseExpr
	Callee     Expression
	Args       []Expression
	IsTailCall bool
}

func NewCallExpr(tok token.Token, callee Expression, args []Expression) *CallExpr {
	return &CallExpr{BaseExpr: BaseExpr{Tok: tok}, Callee: callee, Args: args}
}

func (e *CallExpr) String() string {
	return fmt.Sprintf("%s(%s)", e.Callee.String(), identList(e.Args))
}

// ArrayExpr is an array literal, e.g. `{1, 2, 3}`.
type ArrayExpr struct {
	BaseExpr
	Elements []Expression
}

func NewArrayExpr(tok token.Token, elements []Expression) *ArrayExpr {
	return &ArrayExpr{BaseExpr: BaseExpr{Tok: tok}, Elements: elements}
}

func (e *ArrayExpr) String() string { return "{" + identList(e.Elements) + "}" }

// ArrayAccessExpr is `array[index]`.
type ArrayAccessExpr struct {
	BaseExpr
	Array Expression
	Index Expression
}

func NewArrayAccessExpr(tok token.Token, array, index Expression) *ArrayAccessExpr {
	return &ArrayAccessExpr{BaseExpr: BaseExpr{Tok: tok}, Array: array, Index: index}
}

func (e *ArrayAccessExpr) String() string {
	return fmt.Sprintf("%s[%s]", e.Array.String(), e.Index.String())
}

// ArraySliceExpr is `array[start:end]`; Start and End are nil when omitted.
type ArraySliceExpr struct {
	BaseExpr
	Array      Expression
	Start, End Expression
}

func NewArraySliceExpr(tok token.Token, array, start, end Expression) *ArraySliceExpr {
	return &ArraySliceExpr{BaseExpr: BaseExpr{Tok: tok}, Array: array, Start: start, End: end}
}

func (e *ArraySliceExpr) String() string {
	var sb bytes.Buffer
	sb.WriteString(e.Array.String())
	sb.WriteString("[")
	if e.Start != nil {
		sb.WriteString(e.Start.String())
	}
	sb.WriteString(":")
	if e.End != nil {
		sb.WriteString(e.End.String())
	}
	sb.WriteString("]")
	return sb.String()
}

// RangeExpr is `start..end`, used both as an iterable in for-loops and
// as a standalone expression.
type RangeExpr struct {
	BaseExpr
	Start, End Expression
}

func NewRangeExpr(tok token.Token, start, end Expression) *RangeExpr {
	return &RangeExpr{BaseExpr: BaseExpr{Tok: tok}, Start: start, End: end}
}

func (e *RangeExpr) String() string { return e.Start.String() + ".." + e.End.String() }

// SpreadExpr is `...value`, expanding an array into a variadic call's
// tail arguments.
type SpreadExpr struct {
	BaseExpr
	Value Expression
}

func NewSpreadExpr(tok token.Token, value Expression) *SpreadExpr {
	return &SpreadExpr{BaseExpr: BaseExpr{Tok: tok}, Value: value}
}

func (e *SpreadExpr) String() string { return "..." + e.Value.String() }

// IncrementExpr is `x++` (postfix only; the grammar has no prefix form).
type IncrementExpr struct {
	BaseExpr
	Target Expression
}

func NewIncrementExpr(tok token.Token, target Expression) *IncrementExpr {
	return &IncrementExpr{BaseExpr: BaseExpr{Tok: tok}, Target: target}
}

func (e *IncrementExpr) String() string { return e.Target.String() + "++" }

// DecrementExpr is `x--`.
type DecrementExpr struct {
	BaseExpr
	Target Expression
}

func NewDecrementExpr(tok token.Token, target Expression) *DecrementExpr {
	return &DecrementExpr{BaseExpr: BaseExpr{Tok: tok}, Target: target}
}

func (e *DecrementExpr) String() string { return e.Target.String() + "--" }

// InterpolPart is one segment of an interpolated string: either literal
// text (Expr == nil) or an embedded expression (Text == "").
type InterpolPart struct {
	Text string
	Expr Expression
}

// InterpolatedExpr is a `$"..."` string with embedded `${expr}` segments,
// decomposed by the parser from the lexer's single INTERPOL_STRING token.
type InterpolatedExpr struct {
	BaseExpr
	Parts []InterpolPart
}

func NewInterpolatedExpr(tok token.Token, parts []InterpolPart) *InterpolatedExpr {
	return &InterpolatedExpr{BaseExpr: BaseExpr{Tok: tok}, Parts: parts}
}

func (e *InterpolatedExpr) String() string {
	var sb bytes.Buffer
	sb.WriteString(`$"`)
	for _, p := range e.Parts {
		if p.Expr != nil {
			sb.WriteString("${")
			sb.WriteString(p.Expr.String())
			sb.WriteString("}")
		} else {
			sb.WriteString(p.Text)
		}
	}
	sb.WriteString(`"`)
	return sb.String()
}

// MemberExpr is `receiver.name`, used for both field/property access
// and as the receiver half of an instance method call.
type MemberExpr struct {
	BaseExpr
	Receiver Expression
	Name     string
}

func NewMemberExpr(a *arena.Arena, tok token.Token, receiver Expression, name string) *MemberExpr {
	return &MemberExpr{BaseExpr: BaseExpr{Tok: tok}, Receiver: receiver, Name: internWith(a, name)}
}

func (e *MemberExpr) String() string { return e.Receiver.String() + "." + e.Name }

// LambdaExpr is an anonymous function value. Its param/return types are
// frequently back-inferred from the callee's expected parameter type
// (spec §4.G.2) rather than written explicitly.
type LambdaExpr struct {
	BaseExpr
	Params     []*Param
	ReturnType *TypeExpression
	Body       []Statement
	// Captures lists the free variable names referenced in Body that are
	// not bound by Params or by a var_decl within Body itself (spec
	// §4.G.1), filled in by internal/checker.checkLambda. Sorted for
	// deterministic output.
	Captures []string
}

func NewLambdaExpr(tok token.Token, params []*Param, ret *TypeExpression, body []Statement) *LambdaExpr {
	return &LambdaExpr{BaseExpr: BaseExpr{Tok: tok}, Params: params, ReturnType: ret, Body: body}
}

func (e *LambdaExpr) String() string {
	parts := make([]string, len(e.Params))
	for i, p := range e.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("fn(%s) => <%d stmts>", joinStrings(parts), len(e.Body))
}

// StaticCallExpr is `TypeName.method(args)` dispatch on one of the
// closed opaque-host-type names (spec §4.G.2 call-dispatch path 3).
type StaticCallExpr struct {
	BaseExpr
	TypeName string
	Method   string
	Args     []Expression
}

func NewStaticCallExpr(tok token.Token, typeName, method string, args []Expression) *StaticCallExpr {
	return &StaticCallExpr{BaseExpr: BaseExpr{Tok: tok}, TypeName: typeName, Method: method, Args: args}
}

func (e *StaticCallExpr) String() string {
	return fmt.Sprintf("%s.%s(%s)", e.TypeName, e.Method, identList(e.Args))
}

// SizedArrayAllocExpr allocates an array of Size elements of ElemType.
// Default is nil when the source omitted it, in which case each element
// is zero-valued.
type SizedArrayAllocExpr struct {
	BaseExpr
	ElemType *TypeExpression
	Size     Expression
	Default  Expression
}

func NewSizedArrayAllocExpr(tok token.Token, elemType *TypeExpression, size, dflt Expression) *SizedArrayAllocExpr {
	return &SizedArrayAllocExpr{BaseExpr: BaseExpr{Tok: tok}, ElemType: elemType, Size: size, Default: dflt}
}

func (e *SizedArrayAllocExpr) String() string {
	if e.Default != nil {
		return fmt.Sprintf("%s[%s, %s]", e.ElemType.String(), e.Size.String(), e.Default.String())
	}
	return fmt.Sprintf("%s[%s]", e.ElemType.String(), e.Size.String())
}

// ThreadSpawnExpr is `spawn callee(args)`. Its result is a pending
// handle; the escape analyzer records which arguments were frozen for
// the duration of the spawn (spec §4.H).
type ThreadSpawnExpr struct {
	BaseExpr
	Callee Expression
	Args   []Expression
}

func NewThreadSpawnExpr(tok token.Token, callee Expression, args []Expression) *ThreadSpawnExpr {
	return &ThreadSpawnExpr{BaseExpr: BaseExpr{Tok: tok}, Callee: callee, Args: args}
}

func (e *ThreadSpawnExpr) String() string {
	return fmt.Sprintf("spawn %s(%s)", e.Callee.String(), identList(e.Args))
}

// ThreadSyncExpr is `sync handle`; consuming a pending spawn handle
// unfreezes the arguments that were frozen for it.
type ThreadSyncExpr struct {
	BaseExpr
	Handle Expression
}

func NewThreadSyncExpr(tok token.Token, handle Expression) *ThreadSyncExpr {
	return &ThreadSyncExpr{BaseExpr: BaseExpr{Tok: tok}, Handle: handle}
}

func (e *ThreadSyncExpr) String() string { return "sync " + e.Handle.String() }

func joinStrings(parts []string) string {
	var sb bytes.Buffer
	for i, p := range parts {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p)
	}
	return sb.String()
}
