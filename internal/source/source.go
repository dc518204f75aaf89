// Package source holds immutable source texts indexed by grapheme cluster,
// and the Location, Span and Reader values built on top of them.
//
// All positions are grapheme indices: position i is the i-th extended
// grapheme cluster of the text, and Len() is one past the last cluster.
package source

import (
	"crypto/sha256"
	"sort"
	"sync/atomic"

	"tongue/internal/grapheme"
)

type (
	// ID orders sources by allocation; two sources never share one.
	ID uint64
	// Flags records what was done to the text before it was indexed.
	Flags uint8
)

const (
	// FileVirtual marks a source that did not come from disk (test, stdin).
	FileVirtual Flags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
)

var lastID atomic.Uint64

// Source is a named text with precomputed grapheme and line indices.
// A *Source is the shared handle: Locations and Spans point at it and two
// sources compare equal only when they are the same object.
type Source struct {
	id    ID
	name  string
	text  string
	flags Flags
	hash  [32]byte

	// segments[i] is the byte offset of cluster i; the last entry is len(text).
	segments []int
	// newlines holds the cluster indices of "\n" clusters, ascending.
	newlines []int
}

// New indexes text in a single pass.
func New(name, text string) *Source {
	return newSource(name, text, 0)
}

func newSource(name, text string, flags Flags) *Source {
	src := &Source{
		id:       ID(lastID.Add(1)),
		name:     name,
		text:     text,
		flags:    flags,
		hash:     sha256.Sum256([]byte(text)),
		segments: make([]int, 0, len(text)+1),
	}
	for off, c := range grapheme.Segments(text) {
		// "\r\n" is a single cluster and is not a line break here.
		if c == "\n" {
			src.newlines = append(src.newlines, len(src.segments))
		}
		src.segments = append(src.segments, off)
	}
	src.segments = append(src.segments, len(text))
	return src
}

func (s *Source) ID() ID          { return s.id }
func (s *Source) Name() string    { return s.name }
func (s *Source) Text() string    { return s.text }
func (s *Source) Flags() Flags    { return s.flags }
func (s *Source) Hash() [32]byte  { return s.hash }
func (s *Source) String() string  { return s.name }
func (s *Source) Len() int        { return len(s.segments) - 1 }
func (s *Source) LineCount() int  { return len(s.newlines) + 1 }
func (s *Source) Segments() []int { return append([]int(nil), s.segments...) }
func (s *Source) Newlines() []int { return append([]int(nil), s.newlines...) }

// Get returns the text of the cluster at index i.
func (s *Source) Get(i int) (string, bool) {
	return s.GetRange(i, i+1)
}

// GetRange returns the text of clusters [start, end).
func (s *Source) GetRange(start, end int) (string, bool) {
	if start < 0 || end < start || end > s.Len() {
		return "", false
	}
	return s.text[s.segments[start]:s.segments[end]], true
}

// Cluster returns the cluster at index i.
func (s *Source) Cluster(i int) (grapheme.Cluster, bool) {
	str, ok := s.Get(i)
	return grapheme.Cluster(str), ok
}

// ByteOffset returns the byte offset of cluster position pos (pos may be Len()).
func (s *Source) ByteOffset(pos int) int {
	return s.segments[pos]
}

// Reader returns a reader positioned at the start of the source.
func (s *Source) Reader() *Reader {
	return &Reader{src: s}
}

// Location returns the location of pos; pos == Len() is the end of input.
func (s *Source) Location(pos int) (Location, bool) {
	if pos < 0 || pos > s.Len() {
		return Location{}, false
	}
	return Location{src: s, pos: pos}, true
}

// Span returns the span of length clusters starting at start.
func (s *Source) Span(start, length int) (Span, bool) {
	if start < 0 || length < 0 || start+length > s.Len() {
		return Span{}, false
	}
	return Span{start: Location{src: s, pos: start}, length: length}, true
}

// Full returns the span covering the whole source.
func (s *Source) Full() Span {
	return Span{start: Location{src: s}, length: s.Len()}
}

// LineSpan returns the 0-based line, newline included.
func (s *Source) LineSpan(line int) (Span, bool) {
	start, ok := s.tryLineStart(line)
	if !ok {
		return Span{}, false
	}
	return Span{start: Location{src: s, pos: start}, length: s.lineEnd(line) - start}, true
}

// line returns the 0-based line of pos: the index of the first newline at or
// after pos. A newline belongs to the line it terminates.
func (s *Source) line(pos int) int {
	return sort.SearchInts(s.newlines, pos)
}

func (s *Source) lineStart(line int) int {
	start, ok := s.tryLineStart(line)
	if !ok {
		panic("source: line out of range")
	}
	return start
}

func (s *Source) tryLineStart(line int) (int, bool) {
	switch {
	case line == 0:
		return 0, true
	case line > 0 && line <= len(s.newlines):
		return s.newlines[line-1] + 1, true
	default:
		return 0, false
	}
}

// lineEnd returns one past the last cluster of line, newline included.
func (s *Source) lineEnd(line int) int {
	if end, ok := s.tryLineStart(line + 1); ok {
		return end
	}
	return s.Len()
}

// Compare orders sources by allocation.
func Compare(a, b *Source) int {
	switch {
	case a.id < b.id:
		return -1
	case a.id > b.id:
		return 1
	default:
		return 0
	}
}
