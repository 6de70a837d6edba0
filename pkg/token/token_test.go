package token

import "testing"

func TestLookupIdentKeywords(t *testing.T) {
	for word, want := range keywords {
		t.Run(word, func(t *testing.T) {
			if got := LookupIdent(word); got != want {
				t.Errorf("LookupIdent(%q) = %v, want %v", word, got, want)
			}
		})
	}
}

func TestLookupIdentIsCaseSensitive(t *testing.T) {
	// Sindarin keywords are case-sensitive, unlike the Pascal-derived
	// teacher language — "If" is a plain identifier here.
	if got := LookupIdent("If"); got != IDENT {
		t.Errorf("LookupIdent(%q) = %v, want IDENT", "If", got)
	}
	if got := LookupIdent("FN"); got != IDENT {
		t.Errorf("LookupIdent(%q) = %v, want IDENT", "FN", got)
	}
}

func TestKeywordIdentifierBoundary(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"fn", FN},
		{"fnx", IDENT},
		{"forward", IDENT}, // contains "for" as a prefix only
		{"import", IMPORT},
		{"importer", IDENT},
	}
	for _, tt := range tests {
		if got := LookupIdent(tt.input); got != tt.want {
			t.Errorf("LookupIdent(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestPositionString(t *testing.T) {
	p := Position{Line: 3, Column: 7}
	if got, want := p.String(), "3:7"; got != want {
		t.Errorf("Position.String() = %q, want %q", got, want)
	}
	p.File = "main.sin"
	if got, want := p.String(), "main.sin:3:7"; got != want {
		t.Errorf("Position.String() = %q, want %q", got, want)
	}
}

func TestIsLiteral(t *testing.T) {
	for _, k := range []Kind{INT_LITERAL, LONG_LITERAL, DOUBLE_LITERAL, CHAR_LITERAL, STRING_LITERAL, INTERPOL_STRING, BOOL_LITERAL} {
		if !k.IsLiteral() {
			t.Errorf("%v.IsLiteral() = false, want true", k)
		}
	}
	for _, k := range []Kind{IDENT, NEWLINE, INDENT, DEDENT, EOF, FN} {
		if k.IsLiteral() {
			t.Errorf("%v.IsLiteral() = true, want false", k)
		}
	}
}

func TestTokenLength(t *testing.T) {
	tok := New(IDENT, "héllo", Position{})
	if got, want := tok.Length(), 5; got != want {
		t.Errorf("Length() = %d, want %d (rune count, not byte count)", got, want)
	}
}
