package fuzztests

import (
	"testing"

	"tongue/internal/diag"
	"tongue/internal/lambda"
	"tongue/internal/source"
)

// FuzzTokenStream drives the stream to EOF, then rolls all the way back and
// replays it: the replay must not call the lexer and must see the same slots.
func FuzzTokenStream(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		text, ok := prepare(input)
		if !ok {
			return
		}
		src := source.New("fuzz.lc", text)
		bag := diag.NewBag()
		ts := lambda.NewStream(src, bag)

		var kinds []lambda.TokenKind
		var errs []bool
		prevEnd := 0
		for tok, err := range ts.Rest(bag) {
			errs = append(errs, err != nil)
			if err != nil {
				kinds = append(kinds, 0)
				continue
			}
			kinds = append(kinds, tok.Kind)
			if tok.Span.Source() != src {
				t.Fatalf("token %v from another source", tok.Span)
			}
			if tok.Span.Start().Position() < prevEnd || tok.Span.End().Position() > src.Len() {
				t.Fatalf("token span %v out of order (prev end %d, len %d)", tok.Span, prevEnd, src.Len())
			}
			prevEnd = tok.Span.End().Position()
		}
		if len(kinds) == 0 || errs[len(errs)-1] || kinds[len(kinds)-1] != lambda.EOF {
			t.Fatalf("stream did not end with EOF: %v", kinds)
		}
		if !ts.IsEOF() {
			t.Fatalf("IsEOF false after draining")
		}

		generated := ts.Generated()
		diagnostics := bag.Len()
		if back := ts.Rollback(len(kinds)); back != len(kinds)-1 {
			t.Fatalf("rolled back %d, want %d", back, len(kinds)-1)
		}
		for i := range kinds {
			tok, err := ts.Current()
			if (err != nil) != errs[i] || (err == nil && tok.Kind != kinds[i]) {
				t.Fatalf("replay slot %d = %v, %v", i, tok.Kind, err)
			}
			ts.Next(bag)
		}
		if ts.Generated() != generated || bag.Len() != diagnostics {
			t.Fatalf("replay called the lexer: generated %d -> %d", generated, ts.Generated())
		}
	})
}
