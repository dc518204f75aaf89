package source

import "fmt"

// BoundKind says how a Range bound is interpreted.
type BoundKind uint8

const (
	Unbounded BoundKind = iota
	Included
	Excluded
)

// Bound is one end of a Range.
type Bound struct {
	Kind  BoundKind
	Value int
}

// Range selects a sub-span, in clusters relative to the span start.
type Range struct {
	Start Bound
	End   Bound
}

// Between is a..b.
func Between(a, b int) Range {
	return Range{Start: Bound{Included, a}, End: Bound{Excluded, b}}
}

// Through is a..=b.
func Through(a, b int) Range {
	return Range{Start: Bound{Included, a}, End: Bound{Included, b}}
}

// From is a.. (to the end of the span).
func From(a int) Range {
	return Range{Start: Bound{Included, a}}
}

// To is ..b.
func To(b int) Range {
	return Range{End: Bound{Excluded, b}}
}

// ToInclusive is ..=b.
func ToInclusive(b int) Range {
	return Range{End: Bound{Included, b}}
}

// Full is the whole span.
func Full() Range {
	return Range{}
}

func (r Range) String() string {
	var start, end string
	switch r.Start.Kind {
	case Included:
		start = fmt.Sprint(r.Start.Value)
	case Excluded:
		start = fmt.Sprintf("(%d", r.Start.Value)
	}
	switch r.End.Kind {
	case Included:
		end = fmt.Sprintf("=%d", r.End.Value)
	case Excluded:
		end = fmt.Sprint(r.End.Value)
	}
	return start + ".." + end
}
