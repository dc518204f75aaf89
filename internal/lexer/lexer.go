// Package lexer defines the contract between a hand-written lexer and the
// parser that consumes it, and the TokenStream that buffers tokens so the
// parser can look back and retry.
//
// A lexer only has to produce the next token from a source.Reader. The
// stream calls it lazily, at most once per buffer slot, so backtracking never
// re-lexes and never raises the same diagnostic twice.
package lexer

import (
	"errors"
	"fmt"

	"tongue/internal/diag"
	"tongue/internal/source"
)

// ErrLexing reports that the lexer could not produce a token. It carries no
// payload: the lexer has already raised a diagnostic describing the problem.
var ErrLexing = errors.New("lexing error")

// Kind is the constraint on token kinds. Exactly one kind value must report
// IsEOF, and the lexer must keep returning it once the input is exhausted.
type Kind interface {
	comparable
	IsEOF() bool
}

// Token is a kind together with the span of source it covers.
type Token[K Kind] struct {
	Kind K
	Span source.Span
}

// Text returns the source text of the token.
func (t Token[K]) Text() string { return t.Span.Text() }

func (t Token[K]) IsEOF() bool { return t.Kind.IsEOF() }

func (t Token[K]) String() string {
	return fmt.Sprintf("%v %q", t.Kind, t.Span.Text())
}

// Lexer produces tokens one at a time.
//
// GenerateToken reads from r starting at its current position. On success
// the reader is left right after the token. On failure it must still have
// advanced past the offending input (so the stream makes progress), raise a
// diagnostic into bag and return ErrLexing. At end of input it returns the
// EOF kind, with an empty span, on every call.
type Lexer[K Kind] interface {
	GenerateToken(r *source.Reader, bag *diag.Bag) (Token[K], error)
}

// LexerFunc adapts a function to the Lexer interface.
type LexerFunc[K Kind] func(r *source.Reader, bag *diag.Bag) (Token[K], error)

func (f LexerFunc[K]) GenerateToken(r *source.Reader, bag *diag.Bag) (Token[K], error) {
	return f(r, bag)
}
