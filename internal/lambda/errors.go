package lambda

import (
	"errors"
	"fmt"
	"strings"

	"tongue/internal/diag"
	"tongue/internal/source"
)

// ErrParse means no expression could be built. Diagnostics explaining why are
// in the bag, though not every ErrParse is accompanied by a new one.
var ErrParse = errors.New("parse error")

// InvalidGrapheme is raised by the lexer for a cluster no token starts with.
type InvalidGrapheme struct {
	Span source.Span
}

func (d *InvalidGrapheme) Level() diag.Level                { return diag.Error }
func (d *InvalidGrapheme) Code() diag.Code                  { return diag.LexInvalidGrapheme }
func (d *InvalidGrapheme) PrimarySpan() (source.Span, bool) { return d.Span, true }

func (d *InvalidGrapheme) String() string {
	return fmt.Sprintf("invalid grapheme cluster %q", d.Span.Text())
}

// MismatchedToken is raised when the current token is not one of Expected.
type MismatchedToken struct {
	Expected []TokenKind
	Found    Token
}

func (d *MismatchedToken) Level() diag.Level                { return diag.Error }
func (d *MismatchedToken) Code() diag.Code                  { return diag.SynMismatchedToken }
func (d *MismatchedToken) PrimarySpan() (source.Span, bool) { return d.Found.Span, true }

// String renders "expected A, B or C, found D".
func (d *MismatchedToken) String() string {
	var b strings.Builder
	b.WriteString("expected ")
	switch n := len(d.Expected); n {
	case 0:
		b.WriteString("nothing")
	default:
		for i, k := range d.Expected {
			switch {
			case i == 0:
			case i == n-1:
				b.WriteString(" or ")
			default:
				b.WriteString(", ")
			}
			b.WriteString(k.String())
		}
	}
	b.WriteString(", found ")
	b.WriteString(d.Found.Kind.String())
	return b.String()
}

// UnmatchedOpenParen points at a `(` whose group ended without `)`.
type UnmatchedOpenParen struct {
	Span source.Span
}

func (d *UnmatchedOpenParen) Level() diag.Level                { return diag.Error }
func (d *UnmatchedOpenParen) Code() diag.Code                  { return diag.SynUnmatchedOpenParen }
func (d *UnmatchedOpenParen) PrimarySpan() (source.Span, bool) { return d.Span, true }

func (d *UnmatchedOpenParen) String() string {
	return fmt.Sprintf("unmatched opening parenthesis `%s`", d.Span.Text())
}

// UnmatchedCloseParen points at a `)` with no group to close.
type UnmatchedCloseParen struct {
	Span source.Span
}

func (d *UnmatchedCloseParen) Level() diag.Level                { return diag.Error }
func (d *UnmatchedCloseParen) Code() diag.Code                  { return diag.SynUnmatchedCloseParen }
func (d *UnmatchedCloseParen) PrimarySpan() (source.Span, bool) { return d.Span, true }

func (d *UnmatchedCloseParen) String() string {
	return fmt.Sprintf("unmatched closing parenthesis `%s`", d.Span.Text())
}
