package lambda

import (
	"tongue/internal/diag"
	"tongue/internal/grapheme"
	"tongue/internal/lexer"
	"tongue/internal/source"
)

// Lexer tokenizes lambda calculus. It is stateless.
type Lexer struct{}

var _ lexer.Lexer[TokenKind] = Lexer{}

// NewStream creates a token stream over src using Lexer.
func NewStream(src *source.Source, bag *diag.Bag, opts ...lexer.Option) *Stream {
	return lexer.NewTokenStream[TokenKind](src, Lexer{}, bag, opts...)
}

func (Lexer) GenerateToken(r *source.Reader, bag *diag.Bag) (Token, error) {
	skipDiscardable(r)
	r.Mark()

	c, ok := r.Current()
	if !ok {
		return Token{Kind: EOF, Span: r.Span()}, nil
	}

	kind := Ident
	switch {
	case isIdent(c):
		for r.Test(isIdent) {
			r.Next()
		}
		return Token{Kind: Ident, Span: r.Span()}, nil
	case c == "\\":
		kind = Backslash
	case c == ".":
		kind = Dot
	case c == "(":
		kind = OpenParen
	case c == ")":
		kind = CloseParen
	default:
		r.Next()
		bag.Raise(&InvalidGrapheme{Span: r.Span()})
		return Token{}, lexer.ErrLexing
	}
	r.Next()
	return Token{Kind: kind, Span: r.Span()}, nil
}

func isIdent(c grapheme.Cluster) bool {
	return c.IsASCIIAlphanumeric() || c == "_"
}

func isNewline(c grapheme.Cluster) bool { return c == "\n" || c == "\r\n" }

// skipDiscardable skips whitespace and `;` comments up to the newline.
func skipDiscardable(r *source.Reader) {
	for {
		skipped := false
		for r.Test(grapheme.Cluster.IsWhitespace) {
			r.Next()
			skipped = true
		}
		if r.Expect(";") {
			for !r.TestOrEOF(isNewline) {
				r.Next()
			}
			skipped = true
		}
		if !skipped {
			return
		}
	}
}
