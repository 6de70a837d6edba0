package lexer

import (
	"testing"

	"github.com/realorko/sindarin/pkg/token"
)

func kinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	l := New(src, "test.sin")
	var out []token.Kind
	for {
		tok := l.NextToken()
		out = append(out, tok.Kind)
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

func TestKeywordLexesAsKeywordNotIdentifier(t *testing.T) {
	l := New("return", "test.sin")
	tok := l.NextToken()
	if tok.Kind != token.RETURN {
		t.Fatalf("Kind = %s, want RETURN", tok.Kind)
	}
}

func TestIdentifierWithKeywordPrefixIsIdent(t *testing.T) {
	l := New("returnValue", "test.sin")
	tok := l.NextToken()
	if tok.Kind != token.IDENT {
		t.Fatalf("Kind = %s, want IDENT", tok.Kind)
	}
}

func TestIntLongDoubleLiterals(t *testing.T) {
	cases := []struct {
		src  string
		kind token.Kind
	}{
		{"42", token.INT_LITERAL},
		{"42l", token.LONG_LITERAL},
		{"3.14", token.DOUBLE_LITERAL},
		{"3d", token.DOUBLE_LITERAL},
	}
	for _, c := range cases {
		l := New(c.src, "t.sin")
		tok := l.NextToken()
		if tok.Kind != c.kind {
			t.Errorf("lex(%q).Kind = %s, want %s", c.src, tok.Kind, c.kind)
		}
	}
}

func TestStringLiteralEscapes(t *testing.T) {
	l := New(`"hi\nthere"`, "t.sin")
	tok := l.NextToken()
	if tok.Kind != token.STRING_LITERAL {
		t.Fatalf("Kind = %s, want STRING_LITERAL", tok.Kind)
	}
	if tok.Value.Str != "hi\nthere" {
		t.Fatalf("Value.Str = %q, want %q", tok.Value.Str, "hi\nthere")
	}
}

func TestCharLiteral(t *testing.T) {
	l := New(`'x'`, "t.sin")
	tok := l.NextToken()
	if tok.Kind != token.CHAR_LITERAL || tok.Value.Char != 'x' {
		t.Fatalf("got Kind=%s Char=%q", tok.Kind, tok.Value.Char)
	}
}

func TestInterpolatedStringSingleToken(t *testing.T) {
	l := New(`$"hello ${name}!"`, "t.sin")
	tok := l.NextToken()
	if tok.Kind != token.INTERPOL_STRING {
		t.Fatalf("Kind = %s, want INTERPOL_STRING", tok.Kind)
	}
	if tok.Value.Str != `hello ${name}!` {
		t.Fatalf("Value.Str = %q", tok.Value.Str)
	}
}

func TestUnterminatedStringProducesError(t *testing.T) {
	l := New(`"no closing quote`, "t.sin")
	l.NextToken()
	if len(l.Errors()) == 0 {
		t.Fatal("expected an error for unterminated string")
	}
}

func TestLongestMatchOperators(t *testing.T) {
	cases := []struct {
		src  string
		kind token.Kind
	}{
		{"==", token.EQ}, {"=", token.ASSIGN},
		{"!=", token.NOT_EQ},
		{"<=", token.LESS_EQ}, {"<", token.LESS},
		{">=", token.GREATER_EQ}, {">", token.GREATER},
		{"+=", token.PLUS_EQ}, {"+", token.PLUS},
		{"-=", token.MINUS_EQ}, {"-", token.MINUS},
		{"=>", token.FAT_ARROW},
		{"...", token.SPREAD}, {"..", token.DOTDOT}, {".", token.DOT},
		{"++", token.INC}, {"--", token.DEC},
		{"&&", token.AND_AND}, {"||", token.OR_OR},
	}
	for _, c := range cases {
		l := New(c.src, "t.sin")
		tok := l.NextToken()
		if tok.Kind != c.kind {
			t.Errorf("lex(%q).Kind = %s, want %s", c.src, tok.Kind, c.kind)
		}
	}
}

func TestIndentDedentBalance(t *testing.T) {
	src := "fn f(): int =>\n" +
		"    var x: int = 1\n" +
		"    return x\n"
	ks := kinds(t, src)
	indents, dedents := 0, 0
	for _, k := range ks {
		if k == token.INDENT {
			indents++
		}
		if k == token.DEDENT {
			dedents++
		}
	}
	if indents != dedents {
		t.Fatalf("INDENT count %d != DEDENT count %d", indents, dedents)
	}
	if indents == 0 {
		t.Fatal("expected at least one INDENT")
	}
}

func TestNestedIndentProducesDedentPerClosedBlock(t *testing.T) {
	src := "fn f(): int =>\n" +
		"    if true =>\n" +
		"        return 1\n" +
		"    return 0\n"
	ks := kinds(t, src)
	// The step from 8 back to 4 columns before "return 0" closes only the
	// if-block (one DEDENT); the fn-block is closed by another at EOF.
	// Verify at least two DEDENTs total (if-block, fn-block).
	dedents := 0
	for _, k := range ks {
		if k == token.DEDENT {
			dedents++
		}
	}
	if dedents < 2 {
		t.Fatalf("expected >=2 DEDENTs for nested blocks, got %d", dedents)
	}
}

func TestBlankLinesDoNotAffectIndentStack(t *testing.T) {
	src := "fn f(): int =>\n" +
		"    var x: int = 1\n" +
		"\n" +
		"    return x\n"
	ks := kinds(t, src)
	indents, dedents := 0, 0
	for _, k := range ks {
		if k == token.INDENT {
			indents++
		}
		if k == token.DEDENT {
			dedents++
		}
	}
	if indents != 1 || dedents != 1 {
		t.Fatalf("indents=%d dedents=%d, want 1 and 1", indents, dedents)
	}
}

func TestCommentLinesAreSkipped(t *testing.T) {
	src := "// a comment\nvar x: int = 1 // trailing\n# also a comment\n"
	ks := kinds(t, src)
	for _, k := range ks {
		if k == token.ILLEGAL {
			t.Fatalf("unexpected ILLEGAL token in %v", ks)
		}
	}
}

func TestParseDeterminismSameTokensTwice(t *testing.T) {
	src := "fn sum(n: int): int =>\n    if n <= 0 =>\n        return 0\n    return n + sum(n - 1)\n"
	a := kinds(t, src)
	b := kinds(t, src)
	if len(a) != len(b) {
		t.Fatalf("len mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("token %d differs: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestSaveRestoreState(t *testing.T) {
	l := New("var x: int = 1", "t.sin")
	first := l.NextToken()
	state := l.SaveState()
	second := l.NextToken()
	l.RestoreState(state)
	replay := l.NextToken()
	if second.Kind != replay.Kind || second.Literal != replay.Literal {
		t.Fatalf("replay mismatch: got %v, want %v", replay, second)
	}
	_ = first
}
