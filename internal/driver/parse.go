package driver

import (
	"context"
	"errors"

	"tongue/internal/diag"
	"tongue/internal/lambda"
	"tongue/internal/lexer"
	"tongue/internal/source"
	"tongue/internal/trace"
)

type ParseResult struct {
	Set      *source.Set
	Source   *source.Source
	Interner *source.Interner
	// Expr is nil when nothing could be parsed; Bag says why.
	Expr *lambda.Expr
	Bag  *diag.Bag
}

// Parse loads path, or stdin for StdinTarget, and parses it as one lambda
// expression. Syntax errors are reported in the bag, the returned error is
// for I/O only.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	set := source.NewSet(opts.loadOptions())
	done := opts.track("load")
	src, err := opts.load(set, path)
	done("")
	if err != nil {
		return nil, err
	}

	bag := opts.newBag()
	interner := source.NewInterner()
	return &ParseResult{
		Set:      set,
		Source:   src,
		Interner: interner,
		Expr:     ParseSource(ctx, src, bag, interner, opts),
		Bag:      bag,
	}, nil
}

// ParseSource parses src, returning nil when no expression could be built.
func ParseSource(ctx context.Context, src *source.Source, bag *diag.Bag, interner *source.Interner, opts Options) *lambda.Expr {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "parse", trace.CurrentSpan(ctx)).
		WithExtra("file", src.Name())
	done := opts.track("parse")

	ts := lambda.NewStream(src, bag, lexer.WithTracer(tracer, span.ID()))
	expr, err := lambda.ParseExpr(ts, bag, interner)

	detail := "ok"
	switch {
	case errors.Is(err, lambda.ErrParse):
		detail = "no expression"
	case bag.IsErr():
		detail = "recovered"
	}
	done(detail)
	span.End(detail)
	return expr
}
