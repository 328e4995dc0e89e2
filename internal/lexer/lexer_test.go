package lexer_test

import (
	"strings"
	"testing"

	"casemerge/internal/diag"
	"casemerge/internal/lexer"
	"casemerge/internal/source"
	"casemerge/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.swift", []byte(src))
	bag := diag.NewBag(100)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx.All(), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func kindsEqual(got, want []token.Kind) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestKindSequences(t *testing.T) {
	cases := []struct {
		src  string
		want []token.Kind
	}{
		{
			"switch x { case 1: fallthrough }",
			[]token.Kind{
				token.KwSwitch, token.Ident, token.LBrace,
				token.KwCase, token.IntLit, token.Colon,
				token.KwFallthrough, token.RBrace, token.EOF,
			},
		},
		{
			"case 1...3, 7:",
			[]token.Kind{
				token.KwCase, token.IntLit, token.Ellipsis, token.IntLit,
				token.Comma, token.IntLit, token.Colon, token.EOF,
			},
		},
		{
			"case .some(let v) where v > 0:",
			[]token.Kind{
				token.KwCase, token.Operator, token.Ident, token.LParen,
				token.Ident, token.Ident, token.RParen, token.KwWhere,
				token.Ident, token.Operator, token.IntLit, token.Colon,
				token.EOF,
			},
		},
		{
			"#if DEBUG\n#elseif os(Linux)\n#else\n#endif\n#warning",
			[]token.Kind{
				token.PoundIf, token.Ident,
				token.PoundElseif, token.Ident, token.LParen, token.Ident, token.RParen,
				token.PoundElse, token.PoundEndif, token.PoundOther, token.EOF,
			},
		},
		{
			"`switch` = 1",
			[]token.Kind{token.Ident, token.Operator, token.IntLit, token.EOF},
		},
		{
			"x = a.b + c",
			[]token.Kind{
				token.Ident, token.Operator, token.Ident, token.Operator,
				token.Ident, token.Operator, token.Ident, token.EOF,
			},
		},
		{
			"v?:",
			[]token.Kind{token.Ident, token.Question, token.Colon, token.EOF},
		},
	}
	for _, tc := range cases {
		toks, _ := lexAll(t, tc.src)
		if got := kinds(toks); !kindsEqual(got, tc.want) {
			t.Errorf("%q:\n got %v\nwant %v", tc.src, got, tc.want)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	cases := []struct {
		src  string
		kind token.Kind
	}{
		{"42", token.IntLit},
		{"1_000_000", token.IntLit},
		{"0xFF", token.IntLit},
		{"0o17", token.IntLit},
		{"0b1010", token.IntLit},
		{"3.14", token.FloatLit},
		{"1e9", token.FloatLit},
		{"2e-3", token.FloatLit},
	}
	for _, tc := range cases {
		toks, _ := lexAll(t, tc.src)
		if len(toks) != 2 || toks[0].Kind != tc.kind || toks[0].Text != tc.src {
			t.Errorf("%q: got %v (%q), want one %v token", tc.src, kinds(toks), toks[0].Text, tc.kind)
		}
	}
}

// `1...3` must lex as IntLit Ellipsis IntLit, never as a float followed by
// garbage.
func TestRangeAfterIntIsNotAFloat(t *testing.T) {
	toks, _ := lexAll(t, "1...3")
	want := []token.Kind{token.IntLit, token.Ellipsis, token.IntLit, token.EOF}
	if got := kinds(toks); !kindsEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if toks[0].Text != "1" || toks[2].Text != "3" {
		t.Errorf("texts = %q %q, want \"1\" \"3\"", toks[0].Text, toks[2].Text)
	}
}

func TestStringLiterals(t *testing.T) {
	cases := []string{
		`"plain"`,
		`"esc \" still inside"`,
		`"interp \(f(a, (b)))"`,
		"\"\"\"\nmulti \"line\"\ncase 1:\n\"\"\"",
	}
	for _, src := range cases {
		toks, bag := lexAll(t, src)
		if len(toks) != 2 || toks[0].Kind != token.StringLit {
			t.Errorf("%q: got %v, want one StringLit", src, kinds(toks))
		}
		if toks[0].Text != src {
			t.Errorf("%q: text %q does not cover the literal", src, toks[0].Text)
		}
		if bag.HasErrors() {
			t.Errorf("%q: unexpected diagnostics %v", src, bag.Items())
		}
	}
}

func TestUnterminatedStringReported(t *testing.T) {
	_, bag := lexAll(t, "\"never closed\n")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.LexUnterminatedString {
			found = true
		}
	}
	if !found {
		t.Fatal("expected LexUnterminatedString diagnostic")
	}
}

func TestLeadingTriviaAttachment(t *testing.T) {
	src := "f()  // trailing\n\n    case"
	toks, _ := lexAll(t, src)

	last := toks[len(toks)-2]
	if last.Kind != token.KwCase {
		t.Fatalf("last significant token = %v, want KwCase", last.Kind)
	}
	var kindsSeen []token.TriviaKind
	var text strings.Builder
	for _, tv := range last.Leading {
		kindsSeen = append(kindsSeen, tv.Kind)
		text.WriteString(tv.Text)
	}
	wantKinds := []token.TriviaKind{
		token.TriviaSpace, token.TriviaLineComment, token.TriviaNewline, token.TriviaSpace,
	}
	if len(kindsSeen) != len(wantKinds) {
		t.Fatalf("trivia kinds = %v, want %v", kindsSeen, wantKinds)
	}
	for i := range wantKinds {
		if kindsSeen[i] != wantKinds[i] {
			t.Fatalf("trivia kinds = %v, want %v", kindsSeen, wantKinds)
		}
	}
	if text.String() != "  // trailing\n\n    " {
		t.Errorf("trivia text = %q", text.String())
	}
}

func TestBlockCommentsNest(t *testing.T) {
	src := "/* outer /* inner */ tail */ x"
	toks, bag := lexAll(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(toks) != 2 || toks[0].Kind != token.Ident {
		t.Fatalf("got %v, want single Ident", kinds(toks))
	}
	if len(toks[0].Leading) != 2 {
		t.Fatalf("leading = %v, want block comment plus space", toks[0].Leading)
	}
	if toks[0].Leading[0].Kind != token.TriviaBlockComment {
		t.Errorf("leading[0] = %v, want block comment", toks[0].Leading[0].Kind)
	}
}

func TestUnterminatedBlockCommentReported(t *testing.T) {
	_, bag := lexAll(t, "/* open /* deeper */ still open")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.LexUnterminatedBlockComment {
			found = true
		}
	}
	if !found {
		t.Fatal("expected LexUnterminatedBlockComment diagnostic")
	}
}

func TestEOFCarriesTrailingTrivia(t *testing.T) {
	toks, _ := lexAll(t, "x\n// last words\n")
	eof := toks[len(toks)-1]
	if eof.Kind != token.EOF {
		t.Fatalf("last token = %v, want EOF", eof.Kind)
	}
	var text strings.Builder
	for _, tv := range eof.Leading {
		text.WriteString(tv.Text)
	}
	if text.String() != "\n// last words\n" {
		t.Errorf("EOF trivia = %q", text.String())
	}
}

// Token texts plus leading trivia must reassemble the exact input bytes.
func TestLosslessReassembly(t *testing.T) {
	sources := []string{
		"switch x {\ncase 1: fallthrough\ncase 2: f()\n}\n",
		"let s = \"q \\(a)\" /* c */ + `case`\n",
		"weird $$ @@ bytes \x01 here\n",
		"#if DEBUG\ncase 1: f()\n#endif\n",
	}
	for _, src := range sources {
		toks, _ := lexAll(t, src)
		var b strings.Builder
		for _, tok := range toks {
			for _, tv := range tok.Leading {
				b.WriteString(tv.Text)
			}
			b.WriteString(tok.Text)
		}
		if b.String() != src {
			t.Errorf("reassembly mismatch:\n got %q\nwant %q", b.String(), src)
		}
	}
}
