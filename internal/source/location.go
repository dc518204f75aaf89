package source

import (
	"fmt"

	"fortio.org/safecast"
)

// LineCol represents a human-readable position in a source.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in grapheme clusters
}

// Location is a grapheme position inside a particular source.
// The zero Location has no source and must not be used.
type Location struct {
	src *Source
	pos int
}

func (l Location) Position() int   { return l.pos }
func (l Location) Source() *Source { return l.src }
func (l Location) IsValid() bool   { return l.src != nil }
func (l Location) ByteOffset() int { return l.src.segments[l.pos] }
func (l Location) IsEOF() bool     { return l.pos == l.src.Len() }
func (l Location) Line() int       { return l.src.line(l.pos) }
func (l Location) Column() int     { return l.pos - l.src.lineStart(l.Line()) }

// Equal reports whether both locations point at the same position of the same source.
func (l Location) Equal(o Location) bool { return l == o }

// LineColumn returns the 0-based line and column.
func (l Location) LineColumn() (line, column int) {
	line = l.Line()
	return line, l.pos - l.src.lineStart(line)
}

// LineCol returns the 1-based line and column.
func (l Location) LineCol() LineCol {
	line, col := l.LineColumn()
	ln, err := safecast.Conv[uint32](line + 1)
	if err != nil {
		panic(fmt.Errorf("line overflow: %w", err))
	}
	cl, err := safecast.Conv[uint32](col + 1)
	if err != nil {
		panic(fmt.Errorf("column overflow: %w", err))
	}
	return LineCol{Line: ln, Col: cl}
}

// LineSpan returns the whole line containing l, trailing newline included.
func (l Location) LineSpan() Span {
	line := l.Line()
	start := l.src.lineStart(line)
	return Span{start: Location{src: l.src, pos: start}, length: l.src.lineEnd(line) - start}
}

func (l Location) String() string {
	line, col := l.LineColumn()
	return fmt.Sprintf("in %s (%d, %d)", l.src.name, line+1, col+1)
}

// CompareLocations orders by source, then by position.
func CompareLocations(a, b Location) int {
	if c := Compare(a.src, b.src); c != 0 {
		return c
	}
	switch {
	case a.pos < b.pos:
		return -1
	case a.pos > b.pos:
		return 1
	default:
		return 0
	}
}
