package lexer_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"tongue/internal/diag"
	"tongue/internal/grapheme"
	"tongue/internal/lexer"
	"tongue/internal/source"
	"tongue/internal/trace"
)

// Небольшой лексер S-выражений: скобки, ASCII-символы, комментарии `;`.

type sexpKind uint8

const (
	sexpSymbol sexpKind = iota
	sexpOpen
	sexpClose
	sexpEOF
)

func (k sexpKind) IsEOF() bool { return k == sexpEOF }

func (k sexpKind) String() string {
	return [...]string{"symbol", "(", ")", "eof"}[k]
}

type invalidGrapheme struct{ span source.Span }

func (d invalidGrapheme) Level() diag.Level                { return diag.Error }
func (d invalidGrapheme) PrimarySpan() (source.Span, bool) { return d.span, true }
func (d invalidGrapheme) String() string {
	return fmt.Sprintf("invalid grapheme cluster %q", d.span.Text())
}

func isNewline(c grapheme.Cluster) bool { return c == "\n" }

func lexSexp(r *source.Reader, bag *diag.Bag) (lexer.Token[sexpKind], error) {
	for {
		for r.Test(grapheme.Cluster.IsWhitespace) {
			r.Next()
		}
		if !r.Expect(";") {
			break
		}
		for !r.TestOrEOF(isNewline) {
			r.Next()
		}
	}

	r.Mark()
	c, ok := r.Current()
	switch {
	case !ok:
		return lexer.Token[sexpKind]{Kind: sexpEOF, Span: r.Span()}, nil
	case c == "(":
		r.Next()
		return lexer.Token[sexpKind]{Kind: sexpOpen, Span: r.Span()}, nil
	case c == ")":
		r.Next()
		return lexer.Token[sexpKind]{Kind: sexpClose, Span: r.Span()}, nil
	case c.IsASCIIAlphanumeric():
		for r.Test(grapheme.Cluster.IsASCIIAlphanumeric) {
			r.Next()
		}
		return lexer.Token[sexpKind]{Kind: sexpSymbol, Span: r.Span()}, nil
	}
	r.Next()
	bag.Raise(invalidGrapheme{span: r.Span()})
	return lexer.Token[sexpKind]{}, lexer.ErrLexing
}

// countingLexer считает вызовы, чтобы проверить, что слоты не перелексируются.
type countingLexer struct {
	calls int
}

func (l *countingLexer) GenerateToken(r *source.Reader, bag *diag.Bag) (lexer.Token[sexpKind], error) {
	l.calls++
	return lexSexp(r, bag)
}

type expectedSlot struct {
	kind      sexpKind
	text      string
	line, col int
	err       bool
}

func TestTokenStreamSexp(t *testing.T) {
	src := source.New("doc.lisp", "; addition\n(add รง (x y))")
	bag := diag.NewBag()
	lx := &countingLexer{}
	ts := lexer.NewTokenStream[sexpKind](src, lx, bag)

	want := []expectedSlot{
		{kind: sexpOpen, text: "(", line: 1, col: 0},
		{kind: sexpSymbol, text: "add", line: 1, col: 1},
		{err: true},
		{err: true},
		{kind: sexpOpen, text: "(", line: 1, col: 8},
		{kind: sexpSymbol, text: "x", line: 1, col: 9},
		{kind: sexpSymbol, text: "y", line: 1, col: 11},
		{kind: sexpClose, text: ")", line: 1, col: 12},
		{kind: sexpClose, text: ")", line: 1, col: 13},
		{kind: sexpEOF, text: "", line: 1, col: 14},
	}

	for i, w := range want {
		tok, err := ts.Current()
		if w.err {
			if !errors.Is(err, lexer.ErrLexing) {
				t.Fatalf("slot %d: expected lexing error, got %v %v", i, tok, err)
			}
		} else {
			if err != nil {
				t.Fatalf("slot %d: unexpected error %v", i, err)
			}
			line, col := tok.Span.Start().LineColumn()
			if tok.Kind != w.kind || tok.Text() != w.text || line != w.line || col != w.col {
				t.Fatalf("slot %d: got %v at (%d, %d), want %v %q at (%d, %d)",
					i, tok, line, col, w.kind, w.text, w.line, w.col)
			}
		}
		if i < len(want)-1 && !ts.Next(bag) {
			t.Fatalf("slot %d: Next returned false before EOF", i)
		}
	}

	if !ts.IsEOF() || ts.Next(bag) || ts.Next(bag) {
		t.Fatal("EOF must be terminal")
	}
	if ts.Generated() != len(want) || lx.calls != len(want) {
		t.Fatalf("generated %d slots with %d lexer calls, want %d", ts.Generated(), lx.calls, len(want))
	}

	errs := diag.FindAll[invalidGrapheme](bag)
	if len(errs) != 2 || errs[0].span.Text() != "ร" || errs[1].span.Text() != "ง" {
		t.Fatalf("diagnostics = %v", bag.Items())
	}
	if !bag.IsErr() {
		t.Fatal("bag must report errors")
	}
}

func TestTokenStreamSpans(t *testing.T) {
	type span struct{ start, end int }
	tests := []struct {
		input string
		want  []span
	}{
		{"(add x y)", []span{{0, 1}, {1, 4}, {5, 6}, {7, 8}, {8, 9}, {9, 9}}},
		{"  x ", []span{{2, 3}, {4, 4}}},
		{"", []span{{0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			src := source.New("spans.lisp", tt.input)
			bag := diag.NewBag()
			ts := lexer.NewTokenStream[sexpKind](src, &countingLexer{}, bag)

			for i, w := range tt.want {
				tok, err := ts.Current()
				if err != nil {
					t.Fatalf("slot %d: %v", i, err)
				}
				if got := (span{tok.Span.Start().Position(), tok.Span.End().Position()}); got != w {
					t.Fatalf("slot %d: span %v, want %v", i, got, w)
				}
				if !bag.IsOK() {
					t.Fatalf("slot %d: bag has errors", i)
				}
				ts.Next(bag)
			}
			if tok, _ := ts.Current(); tok.Kind != sexpEOF {
				t.Fatalf("past the end: %v", tok)
			}
		})
	}
}

func TestTokenStreamReplayDoesNotRelex(t *testing.T) {
	src := source.New("t", "(a (b c) d)")
	bag := diag.NewBag()
	lx := &countingLexer{}
	ts := lexer.NewTokenStream[sexpKind](src, lx, bag)

	var first []string
	for tok, err := range ts.Rest(bag) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		first = append(first, tok.Text())
	}
	calls := lx.calls

	if got := ts.Rollback(100); got != len(first)-1 || ts.Position() != 0 {
		t.Fatalf("Rollback(100) = %d, position %d", got, ts.Position())
	}
	var second []string
	for tok := range ts.Rest(bag) {
		second = append(second, tok.Text())
	}
	if strings.Join(first, "|") != strings.Join(second, "|") {
		t.Fatalf("replay differs:\n%v\n%v", first, second)
	}

	ts.Rollback(5)
	ts.Prev()
	if got := ts.Advance(100, bag); got != 6 || !ts.IsEOF() {
		t.Fatalf("Advance(100) = %d, eof %v", got, ts.IsEOF())
	}
	if lx.calls != calls || bag.Len() != 0 {
		t.Fatalf("replay called the lexer: %d calls, was %d", lx.calls, calls)
	}
}

func TestTokenStreamLazy(t *testing.T) {
	src := source.New("t", "a b c d e")
	bag := diag.NewBag()
	lx := &countingLexer{}
	ts := lexer.NewTokenStream[sexpKind](src, lx, bag)
	if lx.calls != 1 || ts.Generated() != 1 {
		t.Fatalf("constructor must lex exactly one token, got %d", lx.calls)
	}
	if got := ts.Advance(2, bag); got != 2 || lx.calls != 3 {
		t.Fatalf("Advance(2) = %d with %d calls", got, lx.calls)
	}
	if !ts.Prev() || !ts.Prev() || ts.Prev() {
		t.Fatal("Prev must stop at slot 0")
	}
	if got := ts.Advance(1, bag); got != 1 || lx.calls != 3 {
		t.Fatalf("Advance over cached slot lexed again: %d calls", lx.calls)
	}
	if tok, _ := ts.Current(); tok.Text() != "b" {
		t.Fatalf("Current = %v", tok)
	}
}

func TestTokenStreamInvalidOnly(t *testing.T) {
	src := source.New("t", "&")
	bag := diag.NewBag()
	ts := lexer.NewTokenStream[sexpKind](src, lexer.LexerFunc[sexpKind](lexSexp), bag)

	if _, err := ts.Current(); !errors.Is(err, lexer.ErrLexing) {
		t.Fatalf("first slot = %v", err)
	}
	if ts.IsEOF() {
		t.Fatal("error slot is not EOF")
	}
	if !ts.Next(bag) || !ts.IsEOF() {
		t.Fatal("second slot must be EOF")
	}
	if ts.Next(bag) || ts.Generated() != 2 {
		t.Fatalf("stream grew past EOF: %d slots", ts.Generated())
	}
	d, ok := diag.Find[invalidGrapheme](bag)
	if !ok || d.span.Text() != "&" || bag.Len() != 1 {
		t.Fatalf("diagnostics = %v", bag.Items())
	}
}

func TestTokenStreamEmptySource(t *testing.T) {
	bag := diag.NewBag()
	ts := lexer.NewTokenStream[sexpKind](source.New("t", ""), lexer.LexerFunc[sexpKind](lexSexp), bag)
	tok, err := ts.Current()
	if err != nil || !tok.IsEOF() || !tok.Span.IsEmpty() {
		t.Fatalf("Current = %v, %v", tok, err)
	}
	if ts.Next(bag) || ts.Prev() || ts.Rollback(1) != 0 || ts.Advance(3, bag) != 0 {
		t.Fatal("cursor moved on an empty stream")
	}
}

func TestTokenStreamTracer(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText)
	bag := diag.NewBag()
	ts := lexer.NewTokenStream[sexpKind](source.New("t", "(x)"), lexer.LexerFunc[sexpKind](lexSexp), bag,
		lexer.WithTracer(tr, 0))
	ts.Advance(10, bag)
	ts.Rollback(10)
	ts.Advance(10, bag)

	if n := strings.Count(buf.String(), "token"); n != 4 {
		t.Fatalf("expected one event per slot (4), got %d:\n%s", n, buf.String())
	}
}
