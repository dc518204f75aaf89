// Package lambda parses untyped lambda calculus: variables, application by
// juxtaposition, `\x. body` abstractions and parentheses, with `;` line
// comments. It is the reference consumer of internal/lexer.
package lambda

import "tongue/internal/lexer"

// TokenKind is the kind of a lambda calculus token.
type TokenKind uint8

const (
	// Ident is `abc_def_0123`; digits are allowed first.
	Ident TokenKind = iota
	// Backslash introduces an abstraction.
	Backslash
	Dot
	OpenParen
	CloseParen
	// EOF is the end of input, with an empty span.
	EOF
)

var tokenKindNames = [...]string{
	Ident:      "<identifier>",
	Backslash:  "`\\`",
	Dot:        "`.`",
	OpenParen:  "`(`",
	CloseParen: "`)`",
	EOF:        "end of input",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "<unknown>"
}

// Name is the identifier-like name used in token dumps.
func (k TokenKind) Name() string {
	switch k {
	case Ident:
		return "Ident"
	case Backslash:
		return "Backslash"
	case Dot:
		return "Dot"
	case OpenParen:
		return "OpenParen"
	case CloseParen:
		return "CloseParen"
	case EOF:
		return "EOF"
	}
	return "Unknown"
}

func (k TokenKind) IsEOF() bool { return k == EOF }

// Token is a lambda calculus token.
type Token = lexer.Token[TokenKind]

// Stream is a token stream over the lambda lexer.
type Stream = lexer.TokenStream[TokenKind]
