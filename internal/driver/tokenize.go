package driver

import (
	"context"
	"fmt"

	"tongue/internal/diag"
	"tongue/internal/diagfmt"
	"tongue/internal/lambda"
	"tongue/internal/lexer"
	"tongue/internal/source"
	"tongue/internal/trace"
)

// Slot is one generated token stream slot.
type Slot = diagfmt.TokenSlot[lambda.TokenKind]

type TokenizeResult struct {
	Set    *source.Set
	Source *source.Source
	Tokens []Slot
	Bag    *diag.Bag
}

// Tokenize loads path, or stdin for StdinTarget, and lexes it up to EOF.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	set := source.NewSet(opts.loadOptions())
	done := opts.track("load")
	src, err := opts.load(set, path)
	done("")
	if err != nil {
		return nil, err
	}

	bag := opts.newBag()
	return &TokenizeResult{
		Set:    set,
		Source: src,
		Tokens: TokenizeSource(ctx, src, bag, opts),
		Bag:    bag,
	}, nil
}

// TokenizeSource lexes src up to EOF. Lexing errors become error slots, their
// diagnostics go to bag.
func TokenizeSource(ctx context.Context, src *source.Source, bag *diag.Bag, opts Options) []Slot {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "tokenize", trace.CurrentSpan(ctx)).
		WithExtra("file", src.Name())
	done := opts.track("tokenize")

	ts := lambda.NewStream(src, bag, lexer.WithTracer(tracer, span.ID()))
	var slots []Slot
	for tok, err := range ts.Rest(bag) {
		slots = append(slots, Slot{Token: tok, Err: err})
	}

	detail := fmt.Sprintf("%d slots", len(slots))
	done(detail)
	span.End(detail)
	return slots
}
