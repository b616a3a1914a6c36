package lexer

import (
	"testing"

	"runefmt/internal/diag"
	"runefmt/internal/source"
	"runefmt/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("lex.rn", []byte(src))
	bag := diag.NewBag(64)
	lx := New(fs.Get(id), Options{Reporter: &diag.BagReporter{Bag: bag}})

	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, bag
		}
	}
}

func kindsOf(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tk := range toks {
		out = append(out, tk.Kind)
	}
	return out
}

func TestLexImplHeader(t *testing.T) {
	toks, bag := lexAll(t, "impl Display for Point {}")
	if bag.HasErrors() {
		t.Fatalf("unexpected lex errors: %v", bag.Items())
	}
	want := []token.Kind{
		token.KwImpl, token.Ident, token.KwFor, token.Ident,
		token.LBrace, token.RBrace, token.EOF,
	}
	got := kindsOf(toks)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexOperators(t *testing.T) {
	toks, _ := lexAll(t, ":: -> => ..= .. ? != <= >>")
	want := []token.Kind{
		token.ColonColon, token.Arrow, token.FatArrow, token.DotDotEq,
		token.DotDot, token.Question, token.BangEq, token.LtEq, token.Shr, token.EOF,
	}
	got := kindsOf(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds[%d] = %v, want %v (all: %v)", i, got[i], want[i], got)
		}
	}
}

func TestLexLeadingComments(t *testing.T) {
	src := "// plain\n/// doc\n/* block */\nfn main() {}"
	toks, bag := lexAll(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	fnTok := toks[0]
	if fnTok.Kind != token.KwFn {
		t.Fatalf("first token = %v, want fn", fnTok.Kind)
	}

	var comments []token.Trivia
	for _, tv := range fnTok.Leading {
		if tv.IsComment() {
			comments = append(comments, tv)
		}
	}
	if len(comments) != 3 {
		t.Fatalf("leading comments = %d, want 3", len(comments))
	}
	if comments[0].Kind != token.TriviaLineComment ||
		comments[1].Kind != token.TriviaDocLine ||
		comments[2].Kind != token.TriviaBlockComment {
		t.Fatalf("comment kinds wrong: %v %v %v", comments[0].Kind, comments[1].Kind, comments[2].Kind)
	}
	if comments[2].Text != "/* block */" {
		t.Errorf("block text = %q", comments[2].Text)
	}
}

func TestLexNestedBlockComment(t *testing.T) {
	toks, bag := lexAll(t, "/* outer /* inner */ tail */ let")
	if bag.HasErrors() {
		t.Fatalf("nested comment must lex cleanly: %v", bag.Items())
	}
	if toks[0].Kind != token.KwLet {
		t.Fatalf("token after nested comment = %v", toks[0].Kind)
	}
	if len(toks[0].Leading) == 0 || toks[0].Leading[0].Text != "/* outer /* inner */ tail */" {
		t.Errorf("nested comment text lost: %+v", toks[0].Leading)
	}
}

func TestLexUnterminatedBlockComment(t *testing.T) {
	_, bag := lexAll(t, "/* never closed")
	if !bag.HasErrors() {
		t.Fatal("expected unterminated block comment error")
	}
	if bag.Items()[0].Code != diag.LexUnterminatedBlockComment {
		t.Errorf("code = %v", bag.Items()[0].Code)
	}
}

func TestLexTrailingCommentsOnEOF(t *testing.T) {
	toks, _ := lexAll(t, "let x = 1;\n// trailing\n")
	eof := toks[len(toks)-1]
	found := false
	for _, tv := range eof.Leading {
		if tv.Kind == token.TriviaLineComment {
			found = true
		}
	}
	if !found {
		t.Error("trailing comment must attach to EOF")
	}
}

func TestLexNumbers(t *testing.T) {
	cases := []struct {
		src  string
		kind token.Kind
	}{
		{"42", token.IntLit},
		{"0xFF_A0", token.IntLit},
		{"3.14", token.FloatLit},
		{"1e9", token.FloatLit},
		{"2.5e-3", token.FloatLit},
		{"10u32", token.IntLit},
		{"1f64", token.FloatLit},
	}
	for _, tc := range cases {
		toks, bag := lexAll(t, tc.src)
		if bag.HasErrors() {
			t.Errorf("%q: unexpected errors %v", tc.src, bag.Items())
			continue
		}
		if toks[0].Kind != tc.kind {
			t.Errorf("%q: kind = %v, want %v", tc.src, toks[0].Kind, tc.kind)
		}
		if toks[0].Text != tc.src {
			t.Errorf("%q: text = %q", tc.src, toks[0].Text)
		}
	}
}

func TestLexStringsAndChars(t *testing.T) {
	toks, bag := lexAll(t, `"hi \" there" 'x' '\n'`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if toks[0].Kind != token.StringLit || toks[1].Kind != token.CharLit || toks[2].Kind != token.CharLit {
		t.Fatalf("kinds = %v", kindsOf(toks))
	}

	_, bag = lexAll(t, "\"oops\n")
	if !bag.HasErrors() {
		t.Error("expected unterminated string error")
	}
}

func TestLexRangeVsFloat(t *testing.T) {
	toks, _ := lexAll(t, "0..10")
	want := []token.Kind{token.IntLit, token.DotDot, token.IntLit, token.EOF}
	got := kindsOf(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
}

func TestLexPeekIsStable(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("peek.rn", []byte("fn x"))
	lx := New(fs.Get(id), Options{})
	p1 := lx.Peek()
	p2 := lx.Peek()
	if p1.Kind != p2.Kind || p1.Span != p2.Span {
		t.Fatal("Peek must not consume")
	}
	n := lx.Next()
	if n.Kind != p1.Kind {
		t.Fatal("Next after Peek must return the peeked token")
	}
}
