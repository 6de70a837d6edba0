package parser

import (
	"strings"

	"github.com/realorko/sindarin/internal/ast"
	"github.com/realorko/sindarin/internal/lexer"
	"github.com/realorko/sindarin/internal/types"
	"github.com/realorko/sindarin/pkg/token"
)

func (p *Parser) registerExpressionFns() {
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.INT_LITERAL, p.parseLiteral(types.Int))
	p.registerPrefix(token.LONG_LITERAL, p.parseLiteral(types.Long))
	p.registerPrefix(token.DOUBLE_LITERAL, p.parseLiteral(types.Double))
	p.registerPrefix(token.CHAR_LITERAL, p.parseLiteral(types.Char))
	p.registerPrefix(token.STRING_LITERAL, p.parseLiteral(types.Str))
	p.registerPrefix(token.TRUE, p.parseBoolLiteral)
	p.registerPrefix(token.FALSE, p.parseBoolLiteral)
	p.registerPrefix(token.NIL, p.parseNilLiteral)
	p.registerPrefix(token.INTERPOL_STRING, p.parseInterpolated)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpr)
	p.registerPrefix(token.LBRACE, p.parseArrayLiteral)
	p.registerPrefix(token.MINUS, p.parseUnaryExpr)
	p.registerPrefix(token.BANG, p.parseUnaryExpr)
	p.registerPrefix(token.SPREAD, p.parseSpreadExpr)
	p.registerPrefix(token.FN, p.parseLambdaExpr)
	p.registerPrefix(token.SPAWN, p.parseThreadSpawn)
	p.registerPrefix(token.SYNC, p.parseThreadSync)
	for _, k := range []token.Kind{token.INT, token.LONG, token.DOUBLE, token.CHAR, token.STR, token.BOOL, token.BYTE} {
		p.registerPrefix(k, p.parseSizedArrayAlloc)
	}

	p.registerInfix(token.PLUS, p.parseBinaryExpr)
	p.registerInfix(token.MINUS, p.parseBinaryExpr)
	p.registerInfix(token.STAR, p.parseBinaryExpr)
	p.registerInfix(token.SLASH, p.parseBinaryExpr)
	p.registerInfix(token.PERCENT, p.parseBinaryExpr)
	p.registerInfix(token.EQ, p.parseBinaryExpr)
	p.registerInfix(token.NOT_EQ, p.parseBinaryExpr)
	p.registerInfix(token.LESS, p.parseBinaryExpr)
	p.registerInfix(token.LESS_EQ, p.parseBinaryExpr)
	p.registerInfix(token.GREATER, p.parseBinaryExpr)
	p.registerInfix(token.GREATER_EQ, p.parseBinaryExpr)
	p.registerInfix(token.AND_AND, p.parseBinaryExpr)
	p.registerInfix(token.OR_OR, p.parseBinaryExpr)
	p.registerInfix(token.DOTDOT, p.parseRangeExpr)
	p.registerInfix(token.ASSIGN, p.parseAssignExpr)
	p.registerInfix(token.PLUS_EQ, p.parseCompoundAssignExpr)
	p.registerInfix(token.MINUS_EQ, p.parseCompoundAssignExpr)
	p.registerInfix(token.LPAREN, p.parseCallExpr)
	p.registerInfix(token.LBRACK, p.parseIndexOrSlice)
	p.registerInfix(token.DOT, p.parseMemberExpr)
	p.registerInfix(token.INC, p.parseIncrementExpr)
	p.registerInfix(token.DEC, p.parseDecrementExpr)
}

// parseExpression is the Pratt-climbing core (spec §4.E precedence table).
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixFns[p.cur.Kind]
	if !ok {
		p.addError("unexpected token %s in expression position", p.cur.Kind)
		return nil
	}
	left := prefix()

	for precedence < p.peekPrecedence() {
		infix, ok := p.infixFns[p.peek.Kind]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return ast.NewVariableExpr(p.arena, p.cur, p.cur.Literal)
}

func (p *Parser) parseLiteral(kind types.Kind) prefixParseFn {
	return func() ast.Expression {
		return ast.NewLiteralExpr(p.cur, kind, p.cur.Value)
	}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	return ast.NewLiteralExpr(p.cur, types.Bool, token.Literal{Bool: p.cur.Kind == token.TRUE})
}

func (p *Parser) parseNilLiteral() ast.Expression {
	return ast.NewLiteralExpr(p.cur, types.Nil, token.Literal{})
}

// parseInterpolated splits the lexer's single INTERPOL_STRING token
// (whose raw, unescaped text is in Value.Str) into literal-text and
// `${expr}` parts, each expression re-parsed with its own sub-parser.
func (p *Parser) parseInterpolated() ast.Expression {
	tok := p.cur
	raw := tok.Value.Str
	var parts []ast.InterpolPart

	i := 0
	for i < len(raw) {
		start := i
		for i < len(raw) && !(raw[i] == '$' && i+1 < len(raw) && raw[i+1] == '{') {
			if raw[i] == '\\' && i+1 < len(raw) {
				i++
			}
			i++
		}
		if i > start {
			parts = append(parts, ast.InterpolPart{Text: unescapeLiteralText(raw[start:i])})
		}
		if i >= len(raw) {
			break
		}
		i += 2 // skip "${"
		depth := 1
		exprStart := i
		for i < len(raw) && depth > 0 {
			switch raw[i] {
			case '{':
				depth++
			case '}':
				depth--
			}
			if depth > 0 {
				i++
			}
		}
		exprSrc := raw[exprStart:i]
		i++ // skip closing '}'
		parts = append(parts, ast.InterpolPart{Expr: p.parseEmbeddedExpression(exprSrc, tok.Pos)})
	}

	return ast.NewInterpolatedExpr(tok, parts)
}

func unescapeLiteralText(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			default:
				sb.WriteByte(s[i+1])
			}
			i++
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func (p *Parser) parseGroupedExpr() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return expr
	}
	return expr
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.cur
	var elements []ast.Expression
	if p.peekIs(token.RBRACE) {
		p.nextToken()
		return ast.NewArrayExpr(tok, elements)
	}
	p.nextToken()
	elements = append(elements, p.parseExpression(LOWEST))
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		elements = append(elements, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(token.RBRACE) {
		return ast.NewArrayExpr(tok, elements)
	}
	return ast.NewArrayExpr(tok, elements)
}

func (p *Parser) parseUnaryExpr() ast.Expression {
	tok := p.cur
	op := tok.Literal
	p.nextToken()
	operand := p.parseExpression(UNARY)
	return ast.NewUnaryExpr(p.arena, tok, op, operand)
}

func (p *Parser) parseSpreadExpr() ast.Expression {
	tok := p.cur
	p.nextToken()
	value := p.parseExpression(UNARY)
	return ast.NewSpreadExpr(tok, value)
}

func (p *Parser) parseBinaryExpr(left ast.Expression) ast.Expression {
	tok := p.cur
	op := tok.Literal
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return ast.NewBinaryExpr(p.arena, tok, left, op, right)
}

func (p *Parser) parseRangeExpr(left ast.Expression) ast.Expression {
	tok := p.cur
	p.nextToken()
	right := p.parseExpression(RANGE)
	return ast.NewRangeExpr(tok, left, right)
}

// parseAssignExpr is right-associative: the RHS is parsed one level
// below ASSIGNMENT so a further `=` is absorbed into it and chained
// `a = b = c` nests as `a = (b = c)`. An
// array-access target desugars to IndexAssignExpr, not AssignExpr,
// since the optimizer's dead-variable pass treats the two differently
// (spec §4.I pass 3).
func (p *Parser) parseAssignExpr(left ast.Expression) ast.Expression {
	tok := p.cur
	p.nextToken()
	value := p.parseExpression(ASSIGNMENT - 1)
	if idx, ok := left.(*ast.ArrayAccessExpr); ok {
		return ast.NewIndexAssignExpr(tok, idx.Array, idx.Index, value)
	}
	return ast.NewAssignExpr(tok, left, value)
}

// parseCompoundAssignExpr desugars `x += y` to `x = x + y` (and `-=`
// likewise); the grammar has no dedicated compound-assign AST node.
func (p *Parser) parseCompoundAssignExpr(left ast.Expression) ast.Expression {
	tok := p.cur
	op := "+"
	if tok.Kind == token.MINUS_EQ {
		op = "-"
	}
	p.nextToken()
	rhs := p.parseExpression(ASSIGNMENT)
	combined := ast.NewBinaryExpr(p.arena, tok, left, op, rhs)
	if idx, ok := left.(*ast.ArrayAccessExpr); ok {
		return ast.NewIndexAssignExpr(tok, idx.Array, idx.Index, combined)
	}
	return ast.NewAssignExpr(tok, left, combined)
}

// parseCallExpr recognizes the static-method dispatch shape
// `TypeName.method(args)` (spec §4.G.2 path 3) and builds a
// StaticCallExpr for it; every other callee becomes a regular CallExpr.
func (p *Parser) parseCallExpr(callee ast.Expression) ast.Expression {
	tok := p.cur
	args := p.parseExpressionList(token.RPAREN)

	if member, ok := callee.(*ast.MemberExpr); ok {
		if recv, ok := member.Receiver.(*ast.VariableExpr); ok {
			if _, isStatic := types.LookupStaticTypeName(recv.Name); isStatic {
				return ast.NewStaticCallExpr(tok, recv.Name, member.Name, args)
			}
		}
	}
	return ast.NewCallExpr(tok, callee, args)
}

func (p *Parser) parseExpressionList(end token.Kind) []ast.Expression {
	var list []ast.Expression
	if p.peekIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}
	p.expectPeek(end)
	return list
}

func (p *Parser) parseIndexOrSlice(left ast.Expression) ast.Expression {
	tok := p.cur
	p.nextToken()

	var start ast.Expression
	if !p.curIs(token.COLON) {
		start = p.parseExpression(LOWEST)
		p.nextToken()
	}
	if p.curIs(token.COLON) {
		p.nextToken()
		var end ast.Expression
		if !p.curIs(token.RBRACK) {
			end = p.parseExpression(LOWEST)
			p.nextToken()
		}
		if !p.curIs(token.RBRACK) {
			p.addError("expected ']' to close array slice, got %s", p.cur.Kind)
		}
		return ast.NewArraySliceExpr(tok, left, start, end)
	}
	if !p.curIs(token.RBRACK) {
		p.addError("expected ']' to close array index, got %s", p.cur.Kind)
	}
	return ast.NewArrayAccessExpr(tok, left, start)
}

func (p *Parser) parseMemberExpr(left ast.Expression) ast.Expression {
	tok := p.cur
	if !p.expectPeek(token.IDENT) {
		return left
	}
	return ast.NewMemberExpr(p.arena, tok, left, p.cur.Literal)
}

func (p *Parser) parseIncrementExpr(left ast.Expression) ast.Expression {
	return ast.NewIncrementExpr(p.cur, left)
}

func (p *Parser) parseDecrementExpr(left ast.Expression) ast.Expression {
	return ast.NewDecrementExpr(p.cur, left)
}

// parseLambdaExpr handles `fn(params): RetType => body` used in
// expression position (as opposed to a named `fn name(...)` statement,
// which is dispatched at parseStatement's top level instead).
func (p *Parser) parseLambdaExpr() ast.Expression {
	tok := p.cur
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params := p.parseParamList(false)

	var ret *ast.TypeExpression
	if p.peekIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		ret = p.parseTypeExpression()
	}

	if !p.expectPeek(token.FAT_ARROW) {
		return nil
	}
	block := p.parseIndentedBlock(types.ModDefault)
	return ast.NewLambdaExpr(tok, params, ret, block.Statements)
}

// parseSizedArrayAlloc handles `Type[size]` (optionally `Type[size, default]`)
// in expression position — a primitive type keyword followed directly by
// `[` is unambiguous since type keywords never start a normal expression
// otherwise (spec §4.G.1 "sized array allocation").
func (p *Parser) parseSizedArrayAlloc() ast.Expression {
	tok := p.cur
	elemType := ast.NewTypeExpression(tok, mustPrimitiveKind(tok.Kind))
	if !p.expectPeek(token.LBRACK) {
		return nil
	}
	p.nextToken()
	size := p.parseExpression(LOWEST)
	var dflt ast.Expression
	if p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		dflt = p.parseExpression(LOWEST)
	}
	if !p.expectPeek(token.RBRACK) {
		return nil
	}
	return ast.NewSizedArrayAllocExpr(tok, elemType, size, dflt)
}

func mustPrimitiveKind(k token.Kind) types.Kind {
	kind, _ := primitiveKind(k)
	return kind
}

func (p *Parser) parseThreadSpawn() ast.Expression {
	tok := p.cur
	p.nextToken()
	callee := p.parseExpression(POSTFIX - 1)
	call, ok := callee.(*ast.CallExpr)
	if !ok {
		p.addError("spawn requires a function call expression")
		return ast.NewThreadSpawnExpr(tok, callee, nil)
	}
	return ast.NewThreadSpawnExpr(tok, call.Callee, call.Args)
}

func (p *Parser) parseThreadSync() ast.Expression {
	tok := p.cur
	p.nextToken()
	handle := p.parseExpression(UNARY)
	return ast.NewThreadSyncExpr(tok, handle)
}

// parseEmbeddedExpression re-lexes and parses a `${...}` segment found
// inside an interpolated string literal, reusing this parser's arena.
func (p *Parser) parseEmbeddedExpression(src string, pos token.Position) ast.Expression {
	sub := lexer.New(src, pos.File)
	subParser := New(sub, p.arena)
	expr := subParser.parseExpression(LOWEST)
	for _, e := range subParser.Errors() {
		p.errors = append(p.errors, e)
	}
	return expr
}
