package source

import (
	"strings"

	"tongue/internal/grapheme"
)

// Reader walks a source one grapheme cluster at a time.
//
// It keeps a cursor and a mark, both in [0, Len]. Span() always covers the
// clusters between them, whichever comes first.
type Reader struct {
	src      *Source
	position int
	marked   int
}

func (r *Reader) Source() *Source { return r.src }
func (r *Reader) Position() int   { return r.position }
func (r *Reader) Marked() int     { return r.marked }
func (r *Reader) IsEOF() bool     { return r.position == r.src.Len() }

// Current returns the cluster under the cursor; false at EOF.
func (r *Reader) Current() (grapheme.Cluster, bool) {
	return r.src.Cluster(r.position)
}

// CurrentTo returns the next n clusters as one string; false if fewer remain.
func (r *Reader) CurrentTo(n int) (string, bool) {
	return r.src.GetRange(r.position, r.position+n)
}

// Location returns the location of the cursor.
func (r *Reader) Location() Location {
	return Location{src: r.src, pos: r.position}
}

// MarkedLocation returns the location of the mark.
func (r *Reader) MarkedLocation() Location {
	return Location{src: r.src, pos: r.marked}
}

// Span returns the clusters between the mark and the cursor.
func (r *Reader) Span() Span {
	start := min(r.marked, r.position)
	return Span{
		start:  Location{src: r.src, pos: start},
		length: max(r.marked, r.position) - start,
	}
}

// Mark sets the mark to the cursor.
func (r *Reader) Mark() { r.marked = r.position }

// Next moves forward one cluster; false at EOF.
func (r *Reader) Next() bool {
	if r.IsEOF() {
		return false
	}
	r.position++
	return true
}

// Prev moves back one cluster; false at the start.
func (r *Reader) Prev() bool {
	if r.position == 0 {
		return false
	}
	r.position--
	return true
}

// Advance moves forward up to n clusters and returns how many it moved.
func (r *Reader) Advance(n int) int {
	n = max(0, min(n, r.src.Len()-r.position))
	r.position += n
	return n
}

// Rollback moves back up to n clusters and returns how many it moved.
func (r *Reader) Rollback(n int) int {
	n = max(0, min(n, r.position))
	r.position -= n
	return n
}

// Expect consumes literal if the input continues with it, cluster by cluster.
// On mismatch the cursor is left where it was. literal must be split on
// cluster boundaries the same way the source is.
func (r *Reader) Expect(literal string) bool {
	count := 0
	for rest := literal; rest != ""; count++ {
		c, ok := r.Current()
		if !ok || !strings.HasPrefix(rest, string(c)) {
			r.Rollback(count)
			return false
		}
		rest = rest[len(c):]
		r.position++
	}
	return true
}

// Test applies pred to the current cluster; false at EOF.
func (r *Reader) Test(pred func(grapheme.Cluster) bool) bool {
	c, ok := r.Current()
	return ok && pred(c)
}

// TestOrEOF is Test, but true at EOF.
func (r *Reader) TestOrEOF(pred func(grapheme.Cluster) bool) bool {
	c, ok := r.Current()
	return !ok || pred(c)
}
