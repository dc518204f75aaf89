package source

import (
	"fmt"
	"testing"
)

func TestTrySlice(t *testing.T) {
	full := New("t", "hello world").Full()
	tests := []struct {
		r    Range
		want string
		ok   bool
	}{
		{Full(), "hello world", true},
		{Between(0, 5), "hello", true},
		{Through(6, 10), "world", true},
		{From(6), "world", true},
		{From(11), "", true},
		{To(5), "hello", true},
		{ToInclusive(4), "hello", true},
		{Range{Start: Bound{Excluded, 4}}, " world", true},
		{Range{Start: Bound{Excluded, 4}, End: Bound{Included, 5}}, " ", true},
		{Between(3, 2), "", false},
		{Between(0, 12), "", false},
		{From(12), "", false},
		{Through(0, 11), "", false},
		{Range{Start: Bound{Excluded, 11}}, "", false},
		{Between(-1, 2), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.r.String(), func(t *testing.T) {
			got, ok := full.TrySlice(tt.r)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got.Text() != tt.want {
				t.Fatalf("text = %q, want %q", got.Text(), tt.want)
			}
		})
	}
}

func TestSliceIsRelativeToSpan(t *testing.T) {
	src := New("t", "xxabcxx")
	sp, _ := src.Span(2, 3)
	inner := sp.Slice(Between(1, 2))
	if inner.Text() != "b" || inner.Start().Position() != 3 {
		t.Fatalf("inner = %q at %d", inner.Text(), inner.Start().Position())
	}
}

func TestSlicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	New("t", "ab").Full().Slice(Between(0, 3))
}

func TestSliceRoundTrip(t *testing.T) {
	for _, text := range sampleTexts {
		src := New("t", text)
		full := src.Full()
		for a := 0; a <= src.Len(); a++ {
			for b := a; b <= src.Len(); b++ {
				sp := full.Slice(Between(a, b))
				want, _ := src.GetRange(a, b)
				if sp.Text() != want || sp.Len() != b-a {
					t.Fatalf("%q[%d..%d] = %q, want %q", text, a, b, sp.Text(), want)
				}
			}
		}
	}
}

func TestJoin(t *testing.T) {
	src := New("t", "abcdefgh")
	span := func(start, length int) Span {
		s, ok := src.Span(start, length)
		if !ok {
			t.Fatalf("Span(%d, %d) failed", start, length)
		}
		return s
	}
	a, b := span(0, 1), span(4, 2)
	joined := a.Join(b)
	if joined.Text() != "abcdef" {
		t.Fatalf("join = %q, want gap included", joined.Text())
	}
	if !joined.Equal(b.Join(a)) {
		t.Fatal("join is not commutative")
	}
	if !a.Join(a).Equal(a) {
		t.Fatal("join is not idempotent")
	}
	if got := span(1, 5).Join(span(2, 1)); !got.Equal(span(1, 5)) {
		t.Fatalf("join with contained span = %q", got.Text())
	}
	empty := span(7, 0)
	if got := a.Join(empty); got.Text() != "abcdefg" {
		t.Fatalf("join with empty span = %q", got.Text())
	}
}

func TestJoinAcrossSourcesPanics(t *testing.T) {
	a := New("a", "x").Full()
	b := New("b", "x").Full()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	a.Join(b)
}

func TestExpandLines(t *testing.T) {
	src := New("t", "ab\ncd\nef")
	tests := []struct {
		start, length int
		want          string
	}{
		{4, 1, "cd\n"},
		{7, 1, "ef"},
		{1, 3, "ab\ncd\n"},
		{3, 0, "cd\n"},
		{0, 8, "ab\ncd\nef"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d+%d", tt.start, tt.length), func(t *testing.T) {
			sp, _ := src.Span(tt.start, tt.length)
			if got := sp.ExpandLines().Text(); got != tt.want {
				t.Fatalf("ExpandLines = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpanString(t *testing.T) {
	src := New("main.lc", "ab\ncd")
	sp, _ := src.Span(1, 3)
	if got, want := sp.String(), "in main.lc from (1, 2) to (2, 2)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if got := fmt.Sprint(sp.Content()); got != "b\nc" {
		t.Fatalf("Content() = %q", got)
	}
}

func TestCompareSpans(t *testing.T) {
	src := New("t", "abcdef")
	a, _ := src.Span(1, 2)
	b, _ := src.Span(1, 3)
	c, _ := src.Span(2, 1)
	if CompareSpans(a, b) >= 0 || CompareSpans(b, c) >= 0 || CompareSpans(a, a) != 0 {
		t.Fatal("spans must order by start, then length")
	}
}
