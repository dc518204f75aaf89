package source

import (
	"fmt"
)

// Span is a contiguous run of clusters inside one source.
type Span struct {
	start  Location
	length int
}

func (s Span) Start() Location { return s.start }
func (s Span) End() Location   { return Location{src: s.start.src, pos: s.start.pos + s.length} }
func (s Span) Len() int        { return s.length }
func (s Span) IsEmpty() bool   { return s.length == 0 }
func (s Span) IsValid() bool   { return s.start.src != nil }
func (s Span) Source() *Source { return s.start.src }

// Equal reports whether both spans cover the same clusters of the same source.
func (s Span) Equal(o Span) bool { return s == o }

// Text returns the spanned text without copying.
func (s Span) Text() string {
	src := s.start.src
	return src.text[src.segments[s.start.pos]:src.segments[s.start.pos+s.length]]
}

// Bytes returns the byte range [start, end) of the span in the source text.
func (s Span) Bytes() (start, end int) {
	src := s.start.src
	return src.segments[s.start.pos], src.segments[s.start.pos+s.length]
}

// Content wraps the span so that it prints as its text.
func (s Span) Content() Content { return Content{span: s} }

// TrySlice narrows the span to r, with r's bounds relative to the span start.
func (s Span) TrySlice(r Range) (Span, bool) {
	var start, end int
	switch r.Start.Kind {
	case Included:
		start = r.Start.Value
	case Excluded:
		start = r.Start.Value + 1
	}
	switch r.End.Kind {
	case Included:
		end = r.End.Value + 1
	case Excluded:
		end = r.End.Value
	default:
		end = s.length
	}
	if start < 0 || start > s.length || end > s.length || start > end {
		return Span{}, false
	}
	return Span{start: Location{src: s.start.src, pos: s.start.pos + start}, length: end - start}, true
}

// Slice is TrySlice that panics on an out-of-range or inverted range.
func (s Span) Slice(r Range) Span {
	out, ok := s.TrySlice(r)
	if !ok {
		panic(fmt.Sprintf("source: slice %v out of range for span of length %d", r, s.length))
	}
	return out
}

// Join returns the smallest span covering both s and other, gap included.
// Joining spans of different sources panics.
func (s Span) Join(other Span) Span {
	if s.start.src != other.start.src {
		panic(fmt.Sprintf("source: cannot join spans of %q and %q", s.start.src.name, other.start.src.name))
	}
	start := min(s.start.pos, other.start.pos)
	end := max(s.start.pos+s.length, other.start.pos+other.length)
	return Span{start: Location{src: s.start.src, pos: start}, length: end - start}
}

// ExpandLines grows the span to whole lines, trailing newline included.
func (s Span) ExpandLines() Span {
	src := s.start.src
	start := src.lineStart(s.start.Line())
	end := src.lineEnd(s.End().Line())
	return Span{start: Location{src: src, pos: start}, length: end - start}
}

func (s Span) String() string {
	sl, sc := s.start.LineColumn()
	el, ec := s.End().LineColumn()
	return fmt.Sprintf("in %s from (%d, %d) to (%d, %d)", s.start.src.name, sl+1, sc+1, el+1, ec+1)
}

// CompareSpans orders by start location, then by length.
func CompareSpans(a, b Span) int {
	if c := CompareLocations(a.start, b.start); c != 0 {
		return c
	}
	switch {
	case a.length < b.length:
		return -1
	case a.length > b.length:
		return 1
	default:
		return 0
	}
}

// Content displays a span as its text.
type Content struct {
	span Span
}

func (c Content) Span() Span     { return c.span }
func (c Content) String() string { return c.span.Text() }
