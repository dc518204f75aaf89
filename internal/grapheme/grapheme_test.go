package grapheme

import (
	"slices"
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Cluster
	}{
		{"empty", "", nil},
		{"ascii", "abc", []Cluster{"a", "b", "c"}},
		{"combining accent", "e\u0301x", []Cluster{"e\u0301", "x"}},
		{"crlf", "a\r\nb", []Cluster{"a", "\r\n", "b"}},
		{"flag", "🇺🇸!", []Cluster{"🇺🇸", "!"}},
		{"thai", "รง", []Cluster{"ร", "ง"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.in)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("Split(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if n := Count(tt.in); n != len(tt.want) {
				t.Fatalf("Count(%q) = %d, want %d", tt.in, n, len(tt.want))
			}
		})
	}
}

func TestSegmentsOffsets(t *testing.T) {
	text := "ae\u0301\u0302z"
	var (
		offsets []int
		rebuilt strings.Builder
	)
	for off, c := range Segments(text) {
		offsets = append(offsets, off)
		rebuilt.WriteString(string(c))
	}
	if rebuilt.String() != text {
		t.Fatalf("clusters do not cover the text: %q", rebuilt.String())
	}
	want := []int{0, 1, 6}
	if !slices.Equal(offsets, want) {
		t.Fatalf("offsets = %v, want %v", offsets, want)
	}
}

func TestSegmentsStopsEarly(t *testing.T) {
	n := 0
	for range Segments("abcdef") {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("expected iteration to stop after 2 clusters, got %d", n)
	}
}

func TestNew(t *testing.T) {
	if _, ok := New(""); ok {
		t.Error("empty string is not a cluster")
	}
	if _, ok := New("ab"); ok {
		t.Error("two clusters accepted as one")
	}
	if c, ok := New("e\u0301"); !ok || c.CountRunes() != 2 {
		t.Errorf("New(e+accent) = %q, %v", c, ok)
	}
}

func TestClassification(t *testing.T) {
	accented := Cluster("e\u0301")
	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"accented alphabetic", accented.IsAlphabetic(), true},
		{"accented alphabetic rune", accented.IsAlphabeticRune(), false},
		{"accented ascii alphabetic", accented.IsASCIIAlphabetic(), false},
		{"thai alphabetic", Cluster("ร").IsAlphabeticRune(), true},
		{"thai ascii", Cluster("ร").IsASCIIAlphanumeric(), false},
		{"digit numeric", Cluster("7").IsASCIINumeric(), true},
		{"roman numeral numeric", Cluster("Ⅻ").IsNumericRune(), true},
		{"underscore alnum", Cluster("_").IsAlphanumeric(), false},
		{"space", Cluster(" ").IsWhitespaceRune(), true},
		{"crlf whitespace", Cluster("\r\n").IsWhitespace(), true},
		{"crlf whitespace rune", Cluster("\r\n").IsWhitespaceRune(), false},
		{"letter not whitespace", Cluster("x").IsWhitespace(), false},
		{"has diacritics", accented.HasDiacritics(), true},
		{"plain rune", Cluster("x").IsRune(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestToDigit(t *testing.T) {
	tests := []struct {
		c    Cluster
		base int
		want int
		ok   bool
	}{
		{"7", 10, 7, true},
		{"7", 8, 7, true},
		{"8", 8, 0, false},
		{"f", 16, 15, true},
		{"F", 16, 15, true},
		{"g", 16, 0, false},
		{"z", 36, 35, true},
		{"a\u0301", 16, 10, true},
	}
	for _, tt := range tests {
		got, ok := tt.c.ToDigit(tt.base)
		if got != tt.want || ok != tt.ok {
			t.Errorf("%q.ToDigit(%d) = %d, %v; want %d, %v", tt.c, tt.base, got, ok, tt.want, tt.ok)
		}
	}
	if _, ok := Cluster("a\u0301").RuneToDigit(16); ok {
		t.Error("RuneToDigit accepted a cluster with diacritics")
	}
}

func TestToDigitInvalidBasePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for base 37")
		}
	}()
	Cluster("1").ToDigit(37)
}
