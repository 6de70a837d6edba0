// Package parser implements the recursive-descent, Pratt-precedence
// parser described in spec §4.E: operator precedence climbing for
// expressions, indentation-delimited (`=>` + INDENT/DEDENT) blocks for
// statements, and single-token error recovery at statement boundaries.
//
// Grounded on the teacher's internal/parser/parser.go: the
// prefixParseFn/infixParseFn registration tables, the precedences map
// driving parseExpression's climbing loop, and expectPeek/peekError for
// token-mismatch diagnostics. The teacher's heavier BlockContext stack
// and full backtracking ParserState are trimmed to what this grammar
// actually needs: indentation blocks replace begin/end, so there is no
// free-form block-context stack to track — the INDENT/DEDENT tokens
// already carry that structure.
package parser

import (
	"fmt"

	"github.com/realorko/sindarin/internal/arena"
	"github.com/realorko/sindarin/internal/ast"
	"github.com/realorko/sindarin/internal/lexer"
	"github.com/realorko/sindarin/internal/types"
	"github.com/realorko/sindarin/pkg/token"
)

// Precedence levels, lowest to highest (spec §4.E).
const (
	_ int = iota
	LOWEST
	ASSIGNMENT  // = (right-associative)
	LOGICAL_OR  // ||
	LOGICAL_AND // &&
	EQUALITY    // == !=
	COMPARISON  // < > <= >=
	RANGE       // ..
	ADDITIVE    // + -
	MULTIPLICATIVE
	UNARY
	POSTFIX // call, index, slice, member, ++, --
)

var precedences = map[token.Kind]int{
	token.ASSIGN:     ASSIGNMENT,
	token.PLUS_EQ:    ASSIGNMENT,
	token.MINUS_EQ:   ASSIGNMENT,
	token.OR_OR:      LOGICAL_OR,
	token.AND_AND:    LOGICAL_AND,
	token.EQ:         EQUALITY,
	token.NOT_EQ:     EQUALITY,
	token.LESS:       COMPARISON,
	token.LESS_EQ:    COMPARISON,
	token.GREATER:    COMPARISON,
	token.GREATER_EQ: COMPARISON,
	token.DOTDOT:     RANGE,
	token.PLUS:       ADDITIVE,
	token.MINUS:      ADDITIVE,
	token.STAR:       MULTIPLICATIVE,
	token.SLASH:      MULTIPLICATIVE,
	token.PERCENT:    MULTIPLICATIVE,
	token.LPAREN:     POSTFIX,
	token.LBRACK:     POSTFIX,
	token.DOT:        POSTFIX,
	token.INC:        POSTFIX,
	token.DEC:        POSTFIX,
}

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// Error is a single parse-time diagnostic (spec §7).
type Error struct {
	Message string
	Pos     token.Position
}

func (e Error) Error() string { return e.Message }

// Parser turns a token stream into a Module.
type Parser struct {
	l     *lexer.Lexer
	arena *arena.Arena

	cur, peek token.Token
	errors    []Error

	prefixFns map[token.Kind]prefixParseFn
	infixFns  map[token.Kind]infixParseFn
}

// New creates a Parser reading from l. a is the arena new AST nodes'
// interned strings are copied into (spec §4.D).
func New(l *lexer.Lexer, a *arena.Arena) *Parser {
	p := &Parser{l: l, arena: a}
	p.prefixFns = make(map[token.Kind]prefixParseFn)
	p.infixFns = make(map[token.Kind]infixParseFn)
	p.registerExpressionFns()

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns all parse-time diagnostics accumulated so far.
func (p *Parser) Errors() []Error { return p.errors }

func (p *Parser) addError(format string, args ...any) {
	p.errors = append(p.errors, Error{Message: fmt.Sprintf(format, args...), Pos: p.cur.Pos})
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(k token.Kind) bool  { return p.cur.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peek.Kind == k }

// expectPeek advances past peek if it matches k, otherwise records an
// error and leaves the cursor unmoved.
func (p *Parser) expectPeek(k token.Kind) bool {
	if p.peekIs(k) {
		p.nextToken()
		return true
	}
	p.addError("expected next token to be %s, got %s instead", k, p.peek.Kind)
	return false
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peek.Kind]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.cur.Kind]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) registerPrefix(k token.Kind, fn prefixParseFn) { p.prefixFns[k] = fn }
func (p *Parser) registerInfix(k token.Kind, fn infixParseFn)   { p.infixFns[k] = fn }

// ParseModule parses the whole token stream into a Module. The pipeline
// halts before type checking if Errors() is non-empty (spec §4.E).
func (p *Parser) ParseModule(filename string) *ast.Module {
	mod := &ast.Module{Filename: filename}
	for !p.curIs(token.EOF) {
		if p.curIs(token.NEWLINE) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			mod.Statements = append(mod.Statements, stmt)
			if imp, ok := stmt.(*ast.ImportStmt); ok {
				mod.Imports = append(mod.Imports, imp)
			}
		}
		p.nextToken()
	}
	return mod
}

// synchronize implements single-token error recovery: it advances past
// tokens until the next NEWLINE or DEDENT (a statement boundary), so one
// bad statement does not cascade into spurious downstream errors.
func (p *Parser) synchronize() {
	for !p.curIs(token.NEWLINE) && !p.curIs(token.DEDENT) && !p.curIs(token.EOF) {
		p.nextToken()
	}
}

// parseIndentedBlock parses the `=> NEWLINE INDENT stmt* DEDENT` body
// that follows a block-introducing header (spec §4.E). Assumes p.cur is
// the `=>` token on entry; leaves p.cur on the closing DEDENT on exit.
func (p *Parser) parseIndentedBlock(mod types.FuncModifier) *ast.BlockStmt {
	tok := p.cur
	if !p.expectPeek(token.NEWLINE) {
		return ast.NewBlockStmt(tok, nil, mod)
	}
	if !p.expectPeek(token.INDENT) {
		return ast.NewBlockStmt(tok, nil, mod)
	}
	p.nextToken()

	var stmts []ast.Statement
	for !p.curIs(token.DEDENT) && !p.curIs(token.EOF) {
		if p.curIs(token.NEWLINE) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		} else {
			p.synchronize()
		}
		p.nextToken()
	}
	return ast.NewBlockStmt(tok, stmts, mod)
}

// parseTypeExpression parses a type annotation: a primitive keyword or
// type name, or a function type `fn(T1, T2): Ret`, optionally followed
// by one or more `[]` array markers.
func (p *Parser) parseTypeExpression() *ast.TypeExpression {
	var te *ast.TypeExpression
	if p.curIs(token.FN) {
		te = p.parseFunctionTypeExpression()
	} else {
		kind, ok := primitiveKind(p.cur.Kind)
		if !ok {
			p.addError("expected a type name, got %s instead", p.cur.Kind)
			return ast.NewTypeExpression(p.cur, types.Void)
		}
		te = ast.NewTypeExpression(p.cur, kind)
	}
	for p.peekIs(token.LBRACK) {
		p.nextToken() // consume '['
		if !p.expectPeek(token.RBRACK) {
			break
		}
		te = ast.NewArrayTypeExpression(te.Tok, te)
	}
	return te
}

// parseFunctionTypeExpression parses `fn(T1, T2): Ret` as a type
// annotation, the declared-type counterpart to a lambda's concrete
// params/body (spec §3.3's function(return, params, ...) type).
func (p *Parser) parseFunctionTypeExpression() *ast.TypeExpression {
	tok := p.cur
	if !p.expectPeek(token.LPAREN) {
		return ast.NewTypeExpression(tok, types.Void)
	}
	var params []*ast.TypeExpression
	if !p.peekIs(token.RPAREN) {
		p.nextToken()
		params = append(params, p.parseTypeExpression())
		for p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			params = append(params, p.parseTypeExpression())
		}
	}
	if !p.expectPeek(token.RPAREN) {
		return ast.NewTypeExpression(tok, types.Void)
	}
	ret := ast.NewTypeExpression(tok, types.Void)
	if p.peekIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		ret = p.parseTypeExpression()
	}
	return ast.NewFunctionTypeExpression(tok, params, ret)
}

func primitiveKind(k token.Kind) (types.Kind, bool) {
	switch k {
	case token.INT:
		return types.Int, true
	case token.LONG:
		return types.Long, true
	case token.DOUBLE:
		return types.Double, true
	case token.CHAR:
		return types.Char, true
	case token.STR:
		return types.Str, true
	case token.BOOL:
		return types.Bool, true
	case token.BYTE:
		return types.Byte, true
	case token.VOID:
		return types.Void, true
	default:
		return 0, false
	}
}
