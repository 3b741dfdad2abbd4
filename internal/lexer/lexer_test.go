package lexer

import "testing"

func collect(t *testing.T, pattern string) []Token {
	t.Helper()
	l := New(pattern)
	var toks []Token
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("Next() error for %q: %v", pattern, err)
		}
		toks = append(toks, tok)
		if tok.Kind == EndOfPattern {
			return toks
		}
	}
}

func TestLexLiteralsAndWildcard(t *testing.T) {
	toks := collect(t, "a.b")
	wantKinds := []Kind{Literal, Wildcard, Literal, EndOfPattern}
	if len(toks) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(wantKinds))
	}
	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Errorf("token %d kind = %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestLexAnchors(t *testing.T) {
	toks := collect(t, "^abc$")
	if toks[0].Kind != StartAnchor {
		t.Errorf("expected StartAnchor, got %v", toks[0].Kind)
	}
	if toks[len(toks)-2].Kind != EndAnchor {
		t.Errorf("expected EndAnchor before EOF, got %v", toks[len(toks)-2].Kind)
	}
}

func TestLexEscapedClasses(t *testing.T) {
	toks := collect(t, `\d\w\s\D\W\S`)
	want := []EscapeKind{Digit, Word, Space, NotDigit, NotWord, NotSpace}
	for i, ek := range want {
		if toks[i].Kind != EscapedClass || toks[i].EscapeKind != ek {
			t.Errorf("token %d = %v, want EscapedClass(%d)", i, toks[i], ek)
		}
	}
}

func TestLexEscapedLiterals(t *testing.T) {
	toks := collect(t, `\.\+\*\?`)
	want := []byte{'.', '+', '*', '?'}
	for i, b := range want {
		if toks[i].Kind != Literal || toks[i].Byte != b {
			t.Errorf("token %d = %v, want Literal(%q)", i, toks[i], b)
		}
	}
}

func TestLexInvalidEscape(t *testing.T) {
	l := New(`\q`)
	if _, err := l.Next(); err == nil {
		t.Error("expected error for invalid escape \\q")
	}
}

func TestLexCharClass(t *testing.T) {
	toks := collect(t, "[a-z0-9_]")
	if toks[0].Kind != ClassOpen {
		t.Fatalf("expected ClassOpen, got %v", toks[0])
	}
	if toks[1].Kind != ClassRange || toks[1].Lo != 'a' || toks[1].Hi != 'z' {
		t.Errorf("expected ClassRange(a-z), got %v", toks[1])
	}
	if toks[2].Kind != ClassRange || toks[2].Lo != '0' || toks[2].Hi != '9' {
		t.Errorf("expected ClassRange(0-9), got %v", toks[2])
	}
	if toks[3].Kind != Literal || toks[3].Byte != '_' {
		t.Errorf("expected Literal(_), got %v", toks[3])
	}
	if toks[4].Kind != ClassClose {
		t.Errorf("expected ClassClose, got %v", toks[4])
	}
}

func TestLexNegatedClass(t *testing.T) {
	l := New("[^abc]")
	tok, err := l.Next()
	if err != nil || tok.Kind != ClassOpen {
		t.Fatalf("expected ClassOpen, got %v, %v", tok, err)
	}
	// '^' negation is consumed as part of ClassOpen; next token is 'a'.
	tok, err = l.Next()
	if err != nil || tok.Kind != Literal || tok.Byte != 'a' {
		t.Fatalf("expected Literal(a), got %v, %v", tok, err)
	}
}

func TestLexTrailingHyphenIsLiteral(t *testing.T) {
	toks := collect(t, "[a-]")
	if toks[1].Kind != Literal || toks[1].Byte != 'a' {
		t.Errorf("expected Literal(a), got %v", toks[1])
	}
	if toks[2].Kind != Literal || toks[2].Byte != '-' {
		t.Errorf("expected Literal(-), got %v", toks[2])
	}
}

func TestLexUnterminatedClass(t *testing.T) {
	l := New("[abc")
	var err error
	for {
		var tok Token
		tok, err = l.Next()
		if err != nil {
			break
		}
		if tok.Kind == EndOfPattern {
			break
		}
	}
	if err == nil {
		t.Error("expected unterminated class error")
	}
}

func TestLexInvalidRange(t *testing.T) {
	l := New("[z-a]")
	l.Next() // ClassOpen
	if _, err := l.Next(); err == nil {
		t.Error("expected invalid range error for [z-a]")
	}
}

func TestLexBoundedQuantifiers(t *testing.T) {
	cases := []struct {
		pattern string
		min     int
		max     int
	}{
		{"a{3}", 3, 3},
		{"a{2,}", 2, -1},
		{"a{2,5}", 2, 5},
	}
	for _, tc := range cases {
		l := New(tc.pattern)
		l.Next() // literal 'a'
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.pattern, err)
		}
		if tok.Kind != QuantBounded || tok.Min != tc.min || tok.Max != tc.max {
			t.Errorf("%s: got %v, want QuantBounded(%d,%d)", tc.pattern, tok, tc.min, tc.max)
		}
	}
}

func TestLexBoundedQuantifierMinExceedsMax(t *testing.T) {
	l := New("a{5,2}")
	l.Next()
	if _, err := l.Next(); err == nil {
		t.Error("expected error when min > max")
	}
}

func TestLexUnbalancedBrace(t *testing.T) {
	l := New("a{2,")
	l.Next()
	if _, err := l.Next(); err == nil {
		t.Error("expected unbalanced brace error")
	}
}

func TestLexGroups(t *testing.T) {
	toks := collect(t, "(a)(?:b)")
	if toks[0].Kind != GroupOpen {
		t.Errorf("expected GroupOpen, got %v", toks[0])
	}
	if toks[2].Kind != GroupClose {
		t.Errorf("expected GroupClose, got %v", toks[2])
	}
	if toks[3].Kind != NonCapturingOpen {
		t.Errorf("expected NonCapturingOpen, got %v", toks[3])
	}
}

func TestLexAlternationAndQuantifiers(t *testing.T) {
	toks := collect(t, "a*b+c?|d")
	wantKinds := []Kind{Literal, QuantStar, Literal, QuantPlus, Literal, QuantQMark, Alt, Literal, EndOfPattern}
	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Errorf("token %d kind = %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestLexUnmatchedBracket(t *testing.T) {
	l := New("a]")
	l.Next()
	if _, err := l.Next(); err == nil {
		t.Error("expected error for unmatched ']'")
	}
}
