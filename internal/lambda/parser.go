package lambda

import (
	"slices"

	"tongue/internal/diag"
	"tongue/internal/source"
)

type parser struct {
	ts       *Stream
	bag      *diag.Bag
	interner *source.Interner
}

// ParseExpr parses a whole expression, up to the end of input.
//
// Errors are recovered from where possible: an expression is returned even
// when the bag holds errors, as long as something could be built. ErrParse
// is returned only when nothing could. interner may be nil.
func ParseExpr(ts *Stream, bag *diag.Bag, interner *source.Interner) (*Expr, error) {
	if interner == nil {
		interner = source.NewInterner()
	}
	p := &parser{ts: ts, bag: bag, interner: interner}
	return p.parseWithEnd(EOF)
}

func (p *parser) next() { p.ts.Next(p.bag) }

// expectToken consumes the current token if its kind is in expected.
// A mismatch is reported and not consumed; a lexing error is skipped silently.
func (p *parser) expectToken(expected ...TokenKind) (Token, error) {
	tok, err := p.ts.Current()
	if err != nil {
		p.next()
		return Token{}, ErrParse
	}
	if !slices.Contains(expected, tok.Kind) {
		p.bag.Raise(&MismatchedToken{Expected: expected, Found: tok})
		return Token{}, ErrParse
	}
	p.next()
	return tok, nil
}

// parseLambda parses `\x. body` starting on the backslash; the body extends
// up to end.
func (p *parser) parseLambda(backslash Token, end TokenKind) (*Expr, error) {
	p.next()
	param, paramErr := p.expectToken(Ident)
	_, _ = p.expectToken(Dot)

	body, err := p.parseWithEnd(end)
	if err != nil {
		return nil, err
	}
	if paramErr != nil {
		return nil, paramErr
	}

	return &Expr{
		Span: backslash.Span.Join(body.Span),
		Kind: &Lambda{
			Parameter: param.Span,
			ParamID:   p.interner.InternSpan(param.Span),
			Body:      body,
		},
	}, nil
}

// parseParenthesized parses `( expr )` starting on the opening parenthesis.
// A missing `)` is reported but the inner expression is still returned.
func (p *parser) parseParenthesized(open Token) (*Expr, error) {
	p.next()
	expr, err := p.parseWithEnd(CloseParen)
	if err != nil {
		return nil, err
	}
	expr.Span = expr.Span.Join(open.Span)

	if tok, err := p.ts.Current(); err == nil && tok.Kind == CloseParen {
		expr.Span = expr.Span.Join(tok.Span)
		p.next()
	} else {
		p.bag.Raise(&UnmatchedOpenParen{Span: open.Span})
	}
	return expr, nil
}

// parseWithEnd parses a sequence of operands, folding them into left-nested
// applications, until end or EOF.
func (p *parser) parseWithEnd(end TokenKind) (*Expr, error) {
	var current *Expr
	hadChild := false

loop:
	for {
		tok, err := p.ts.Current()
		switch {
		case err != nil:
			// лексер уже сообщил об ошибке
			p.next()

		case tok.Kind == end:
			break loop

		case tok.Kind == Backslash:
			if lambda, err := p.parseLambda(tok, end); err == nil {
				current = stack(current, lambda)
			}

		case tok.Kind == Ident:
			current = stack(current, &Expr{
				Span: tok.Span,
				Kind: &Variable{Name: tok.Span, ID: p.interner.InternSpan(tok.Span)},
			})
			p.next()

		case tok.Kind == OpenParen:
			if inner, err := p.parseParenthesized(tok); err == nil {
				current = stack(current, inner)
			}

		case tok.Kind == EOF:
			break loop

		case tok.Kind == CloseParen:
			p.bag.Raise(&UnmatchedCloseParen{Span: tok.Span})
			p.next()

		default:
			p.bag.Raise(&MismatchedToken{
				Expected: []TokenKind{Backslash, Ident, OpenParen, end},
				Found:    tok,
			})
			p.next()
		}
		hadChild = true
	}

	if current != nil {
		return current, nil
	}
	// ошибку выдаём, только если сразу упёрлись в конец
	if !hadChild {
		found, _ := p.ts.Current()
		p.bag.Raise(&MismatchedToken{
			Expected: []TokenKind{Backslash, Ident, OpenParen},
			Found:    found,
		})
	}
	return nil, ErrParse
}

// stack applies left to right, or returns right when there is no left.
func stack(left, right *Expr) *Expr {
	if left == nil {
		return right
	}
	return &Expr{
		Span: left.Span.Join(right.Span),
		Kind: &Application{Function: left, Argument: right},
	}
}
