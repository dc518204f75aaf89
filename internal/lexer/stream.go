package lexer

import (
	"iter"
	"strconv"

	"tongue/internal/diag"
	"tongue/internal/source"
	"tongue/internal/trace"
)

type slot[K Kind] struct {
	tok Token[K]
	err error
}

type config struct {
	tracer trace.Tracer
	parent uint64
}

// Option configures a TokenStream.
type Option func(*config)

// WithTracer emits one ScopeNode point event per generated token under the
// span parent.
func WithTracer(t trace.Tracer, parent uint64) Option {
	return func(c *config) {
		c.tracer = t
		c.parent = parent
	}
}

// TokenStream is a growable buffer of lexer results with a cursor.
//
// Slots [0, Generated()) hold exactly what the lexer returned, in order; the
// cursor is always on a generated slot. The lexer is only called to fill the
// slot right after the last one, and never again once EOF was produced.
type TokenStream[K Kind] struct {
	src      *source.Source
	reader   *source.Reader
	lexer    Lexer[K]
	tokens   []slot[K]
	position int
	cfg      config
}

// NewTokenStream creates a stream over src and eagerly lexes the first token.
func NewTokenStream[K Kind](src *source.Source, lexer Lexer[K], bag *diag.Bag, opts ...Option) *TokenStream[K] {
	ts := &TokenStream[K]{
		src:    src,
		reader: src.Reader(),
		lexer:  lexer,
		cfg:    config{tracer: trace.Nop},
	}
	for _, opt := range opts {
		opt(&ts.cfg)
	}
	ts.generate(bag)
	return ts
}

func (ts *TokenStream[K]) generate(bag *diag.Bag) {
	tok, err := ts.lexer.GenerateToken(ts.reader, bag)
	ts.tokens = append(ts.tokens, slot[K]{tok: tok, err: err})

	if ts.cfg.tracer.Enabled() {
		detail := "error"
		if err == nil {
			detail = tok.String()
		}
		trace.Point(ts.cfg.tracer, trace.ScopeNode, "token", detail, ts.cfg.parent, map[string]string{
			"slot": strconv.Itoa(len(ts.tokens) - 1),
		})
	}
}

// Current returns the slot under the cursor: a token, or the lexer's error.
func (ts *TokenStream[K]) Current() (Token[K], error) {
	s := ts.tokens[ts.position]
	return s.tok, s.err
}

// IsEOF reports whether the cursor is on the EOF token.
func (ts *TokenStream[K]) IsEOF() bool {
	s := ts.tokens[ts.position]
	return s.err == nil && s.tok.Kind.IsEOF()
}

func (ts *TokenStream[K]) Position() int          { return ts.position }
func (ts *TokenStream[K]) Generated() int         { return len(ts.tokens) }
func (ts *TokenStream[K]) Source() *source.Source { return ts.src }

// Next moves to the following slot, lexing it if needed. It returns false
// only when the cursor is on EOF.
func (ts *TokenStream[K]) Next(bag *diag.Bag) bool {
	if ts.IsEOF() {
		return false
	}
	ts.position++
	if ts.position >= len(ts.tokens) {
		ts.generate(bag)
	}
	return true
}

// Prev moves back one slot without lexing; false at slot 0.
func (ts *TokenStream[K]) Prev() bool {
	if ts.position == 0 {
		return false
	}
	ts.position--
	return true
}

// Advance moves forward up to n slots, stopping on EOF, and returns how many
// it moved. Already generated slots are replayed, not re-lexed.
func (ts *TokenStream[K]) Advance(n int, bag *diag.Bag) int {
	moved := 0
	for moved < n && ts.Next(bag) {
		moved++
	}
	return moved
}

// Rollback moves back up to n slots without lexing and returns how many it
// moved.
func (ts *TokenStream[K]) Rollback(n int) int {
	n = max(0, min(n, ts.position))
	ts.position -= n
	return n
}

// Rest yields the current slot and every following one up to and including
// EOF, moving the cursor along.
func (ts *TokenStream[K]) Rest(bag *diag.Bag) iter.Seq2[Token[K], error] {
	return func(yield func(Token[K], error) bool) {
		for {
			if !yield(ts.Current()) {
				return
			}
			if !ts.Next(bag) {
				return
			}
		}
	}
}
