package parser

import (
	"github.com/realorko/sindarin/internal/ast"
	"github.com/realorko/sindarin/internal/types"
	"github.com/realorko/sindarin/pkg/token"
)

// parseStatement dispatches on the current token's kind (spec §3.5,
// eleven statement variants). Modifier-prefixed blocks (`shared`/
// `private` before while/for/a bare block) are handled by peeking past
// the modifier keyword before re-dispatching.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Kind {
	case token.FN:
		return p.parseFunctionStmt()
	case token.VAR:
		return p.parseVarDeclStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt(types.ModDefault)
	case token.FOR:
		return p.parseForOrForEachStmt(types.ModDefault)
	case token.BREAK:
		return ast.NewBreakStmt(p.cur)
	case token.CONTINUE:
		return ast.NewContinueStmt(p.cur)
	case token.IMPORT:
		return p.parseImportStmt()
	case token.SHARED:
		return p.parseModifiedStmt(types.ModShared)
	case token.PRIVATE:
		return p.parseModifiedStmt(types.ModPrivate)
	default:
		return p.parseExpressionStmt()
	}
}

// parseModifiedStmt handles `shared`/`private` appearing as a statement
// prefix before a while/for loop or a bare indented block.
func (p *Parser) parseModifiedStmt(mod types.FuncModifier) ast.Statement {
	p.nextToken()
	switch p.cur.Kind {
	case token.WHILE:
		return p.parseWhileStmt(mod)
	case token.FOR:
		return p.parseForOrForEachStmt(mod)
	case token.FAT_ARROW:
		return p.parseIndentedBlock(mod)
	default:
		p.addError("expected 'while', 'for', or '=>' after modifier, got %s", p.cur.Kind)
		return nil
	}
}

func (p *Parser) parseExpressionStmt() ast.Statement {
	tok := p.cur
	expr := p.parseExpression(LOWEST)
	return ast.NewExpressionStmt(tok, expr)
}

// parseVarDeclStmt parses `var name[: Type][ = initializer]`. At least
// one of the type annotation or initializer must be present, which the
// checker enforces (spec §4.G core rule).
func (p *Parser) parseVarDeclStmt() ast.Statement {
	tok := p.cur
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.cur.Literal

	var declared *ast.TypeExpression
	qual := types.MemDefault
	if p.peekIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		declared = p.parseTypeExpression()
		if p.peekIs(token.AS) {
			p.nextToken()
			p.nextToken()
			qual = parseMemQual(p.cur.Kind)
		}
	}

	var init ast.Expression
	if p.peekIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		init = p.parseExpression(LOWEST)
	}
	return ast.NewVarDeclStmt(tok, name, declared, init, qual)
}

func parseMemQual(k token.Kind) types.MemQual {
	switch k {
	case token.VAL:
		return types.MemVal
	case token.REF:
		return types.MemRef
	default:
		return types.MemDefault
	}
}

// parseFunctionStmt parses `fn name(params)[ modifier][: RetType] => body`.
func (p *Parser) parseFunctionStmt() ast.Statement {
	tok := p.cur
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.cur.Literal

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params := p.parseParamList(true)

	mod := types.ModDefault
	if p.peekIs(token.SHARED) {
		p.nextToken()
		mod = types.ModShared
	} else if p.peekIs(token.PRIVATE) {
		p.nextToken()
		mod = types.ModPrivate
	}

	var ret *ast.TypeExpression
	if p.peekIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		ret = p.parseTypeExpression()
	} else {
		ret = ast.NewTypeExpression(p.cur, types.Void)
	}

	if !p.expectPeek(token.FAT_ARROW) {
		return nil
	}
	block := p.parseIndentedBlock(types.ModDefault)
	return ast.NewFunctionStmt(tok, name, params, ret, block.Statements, mod)
}

// parseParamList parses `(name: Type [as val|ref], ...)`. Assumes p.cur
// is the opening '(' on entry; leaves p.cur on the closing ')'.
// requireTypes is true for a named `fn` declaration's parameters, which
// must always carry an explicit type; a lambda expression passes false,
// since its parameter types may be back-inferred from context (spec
// §4.G.1 "lambda").
func (p *Parser) parseParamList(requireTypes bool) []*ast.Param {
	var params []*ast.Param
	if p.peekIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	params = append(params, p.parseOneParam(requireTypes))
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		params = append(params, p.parseOneParam(requireTypes))
	}
	p.expectPeek(token.RPAREN)
	return params
}

func (p *Parser) parseOneParam(requireTypes bool) *ast.Param {
	tok := p.cur
	name := p.cur.Literal
	if !p.peekIs(token.COLON) {
		if requireTypes {
			p.addError("expected ':' after parameter %q, got %s", name, p.peek.Kind)
		}
		return &ast.Param{Tok: tok, Name: name}
	}
	p.nextToken()
	p.nextToken()
	typ := p.parseTypeExpression()

	qual := types.MemDefault
	if p.peekIs(token.AS) {
		p.nextToken()
		p.nextToken()
		qual = parseMemQual(p.cur.Kind)
	}
	return &ast.Param{Tok: tok, Name: name, Type: typ, Qual: qual}
}

func (p *Parser) parseReturnStmt() ast.Statement {
	tok := p.cur
	if p.peekIs(token.NEWLINE) || p.peekIs(token.DEDENT) || p.peekIs(token.EOF) {
		return ast.NewReturnStmt(tok, nil)
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	return ast.NewReturnStmt(tok, value)
}

// parseIfStmt parses `if cond => then [else (if ... | => block)]`.
func (p *Parser) parseIfStmt() ast.Statement {
	tok := p.cur
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(token.FAT_ARROW) {
		return nil
	}
	then := p.parseIndentedBlock(types.ModDefault)

	var els ast.Statement
	if p.peekIs(token.ELSE) {
		p.nextToken()
		if p.peekIs(token.IF) {
			p.nextToken()
			els = p.parseIfStmt()
		} else if p.peekIs(token.FAT_ARROW) {
			p.nextToken()
			els = p.parseIndentedBlock(types.ModDefault)
		} else {
			p.addError("expected 'if' or '=>' after else, got %s", p.peek.Kind)
		}
	}
	return ast.NewIfStmt(tok, cond, then, els)
}

func (p *Parser) parseWhileStmt(mod types.FuncModifier) ast.Statement {
	tok := p.cur
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(token.FAT_ARROW) {
		return nil
	}
	body := p.parseIndentedBlock(mod)
	return ast.NewWhileStmt(tok, cond, body, mod)
}

// parseForOrForEachStmt disambiguates `for init; cond; post => body`
// from `for x in iterable => body` by looking for IN after the first
// identifier (spec §3.5 lists both "for" and "for_each" as distinct
// statement kinds with no single shared grammar).
func (p *Parser) parseForOrForEachStmt(mod types.FuncModifier) ast.Statement {
	tok := p.cur
	if p.peekIs(token.IDENT) {
		save := p.l.SaveState()
		savedCur, savedPeek := p.cur, p.peek
		p.nextToken()
		varName := p.cur.Literal
		if p.peekIs(token.IN) {
			p.nextToken()
			p.nextToken()
			iterable := p.parseExpression(LOWEST)
			if !p.expectPeek(token.FAT_ARROW) {
				return nil
			}
			body := p.parseIndentedBlock(mod)
			return ast.NewForEachStmt(tok, varName, iterable, body, mod)
		}
		p.l.RestoreState(save)
		p.cur, p.peek = savedCur, savedPeek
	}
	return p.parseClassicForStmt(tok, mod)
}

func (p *Parser) parseClassicForStmt(tok token.Token, mod types.FuncModifier) ast.Statement {
	p.nextToken()
	var init ast.Statement
	if !p.curIs(token.NEWLINE) {
		init = p.parseStatement()
	}
	if !p.expectPeek(token.NEWLINE) {
		return nil
	}
	p.nextToken()
	var cond ast.Expression
	if !p.curIs(token.NEWLINE) {
		cond = p.parseExpression(LOWEST)
	}
	if !p.expectPeek(token.NEWLINE) {
		return nil
	}
	p.nextToken()
	var post ast.Statement
	if !p.curIs(token.FAT_ARROW) {
		post = p.parseStatement()
		if p.peekIs(token.NEWLINE) {
			p.nextToken()
		}
		p.nextToken()
	}
	if !p.curIs(token.FAT_ARROW) {
		p.addError("expected '=>' to begin for-loop body, got %s", p.cur.Kind)
		return nil
	}
	body := p.parseIndentedBlock(mod)
	return ast.NewForStmt(tok, init, cond, post, body, mod)
}

// parseImportStmt parses both import forms (spec §3.6): a bare
// `import "path"` merges the target module's top-level symbols into
// the importing scope; `import "path" as ns` keeps them namespaced.
func (p *Parser) parseImportStmt() ast.Statement {
	tok := p.cur
	if !p.expectPeek(token.STRING_LITERAL) {
		return nil
	}
	path := p.cur.Value.Str

	namespace := ""
	if p.peekIs(token.AS) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		namespace = p.cur.Literal
	}
	return ast.NewImportStmt(tok, path, namespace)
}
