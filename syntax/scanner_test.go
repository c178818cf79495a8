package syntax

import (
	"strings"
	"testing"
)

func TestScannerTokens(t *testing.T) {
	input := "(type person) # a comment\n(person schüler?)"
	sc := NewScanner(strings.NewReader(input))

	want := []Token{
		{Kind: LPAREN},
		{Kind: WORD, Value: "type"},
		{Kind: WORD, Value: "person"},
		{Kind: RPAREN},
		{Kind: LPAREN},
		{Kind: WORD, Value: "person"},
		{Kind: WORD, Value: "schüler?"},
		{Kind: RPAREN},
		{Kind: EOF},
	}

	for n, w := range want {
		tok := sc.Next()
		if tok.Kind != w.Kind {
			t.Fatalf("token %d: kind %s, want %s",
				n, tokenKindStrings[tok.Kind], tokenKindStrings[w.Kind])
		}
		if w.Kind == WORD && tok.Value != w.Value {
			t.Errorf("token %d: value %q, want %q", n, tok.Value, w.Value)
		}
	}
}

func TestScannerPositions(t *testing.T) {
	sc := NewScanner(strings.NewReader("(a\n  b)"))

	if tok := sc.Next(); tok.Line != 1 {
		t.Errorf("'(' on line %d, want 1", tok.Line)
	}
	if tok := sc.Next(); tok.Line != 1 {
		t.Errorf("'a' on line %d, want 1", tok.Line)
	}
	if tok := sc.Next(); tok.Line != 2 || tok.Col != 3 {
		t.Errorf("'b' at %d:%d, want 2:3", tok.Line, tok.Col)
	}
}

func TestScannerCommentOnly(t *testing.T) {
	sc := NewScanner(strings.NewReader("# nothing here\n# nor here"))
	if tok := sc.Next(); tok.Kind != EOF {
		t.Errorf("expected end of file, got %s", tokenKindStrings[tok.Kind])
	}
}
