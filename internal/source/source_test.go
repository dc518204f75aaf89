package source

import (
	"slices"
	"testing"

	"tongue/internal/grapheme"
)

var sampleTexts = []string{
	"",
	"a",
	"\n",
	"hello\nworld",
	"a\n\nb\n",
	"e\u0301x\r\ny\nz",
	"; addition\n(add รง (x y))",
	"🇺🇸\n🇩🇪🇫🇷\n\n",
}

func TestNewIndexes(t *testing.T) {
	src := New("t", "a\nbé\n")
	if got, want := src.Segments(), []int{0, 1, 2, 3, 5, 6}; !slices.Equal(got, want) {
		t.Fatalf("segments = %v, want %v", got, want)
	}
	if got, want := src.Newlines(), []int{1, 4}; !slices.Equal(got, want) {
		t.Fatalf("newlines = %v, want %v", got, want)
	}
	if src.Len() != 5 {
		t.Fatalf("Len = %d, want 5", src.Len())
	}
	if src.LineCount() != 3 {
		t.Fatalf("LineCount = %d, want 3", src.LineCount())
	}
}

func TestCRLFIsNotANewline(t *testing.T) {
	src := New("t", "a\r\nb")
	if len(src.Newlines()) != 0 {
		t.Fatalf("\\r\\n cluster counted as newline: %v", src.Newlines())
	}
	if src.Len() != 3 {
		t.Fatalf("Len = %d, want 3", src.Len())
	}
}

func TestGetMatchesSegmentation(t *testing.T) {
	for _, text := range sampleTexts {
		src := New("t", text)
		clusters := grapheme.Split(text)
		if src.Len() != len(clusters) {
			t.Fatalf("%q: Len = %d, want %d", text, src.Len(), len(clusters))
		}
		for i, c := range clusters {
			got, ok := src.Get(i)
			if !ok || got != string(c) {
				t.Fatalf("%q: Get(%d) = %q, %v; want %q", text, i, got, ok, c)
			}
		}
		if _, ok := src.Get(src.Len()); ok {
			t.Fatalf("%q: Get(Len) must fail", text)
		}
		if _, ok := src.Get(-1); ok {
			t.Fatalf("%q: Get(-1) must fail", text)
		}
	}
}

func TestGetRange(t *testing.T) {
	src := New("t", "abcd")
	if s, ok := src.GetRange(1, 3); !ok || s != "bc" {
		t.Fatalf("GetRange(1, 3) = %q, %v", s, ok)
	}
	if s, ok := src.GetRange(4, 4); !ok || s != "" {
		t.Fatalf("GetRange(4, 4) = %q, %v", s, ok)
	}
	if _, ok := src.GetRange(3, 2); ok {
		t.Fatal("inverted range accepted")
	}
	if _, ok := src.GetRange(2, 5); ok {
		t.Fatal("range past the end accepted")
	}
}

// линейный подсчёт строк против бинарного поиска
func TestLineMatchesLinearScan(t *testing.T) {
	for _, text := range sampleTexts {
		src := New("t", text)
		line, col := 0, 0
		for pos := 0; pos <= src.Len(); pos++ {
			loc, ok := src.Location(pos)
			if !ok {
				t.Fatalf("%q: Location(%d) failed", text, pos)
			}
			gotLine, gotCol := loc.LineColumn()
			if gotLine != line || gotCol != col {
				t.Fatalf("%q: pos %d = (%d, %d), want (%d, %d)", text, pos, gotLine, gotCol, line, col)
			}
			if c, ok := src.Get(pos); ok && c == "\n" {
				line, col = line+1, 0
			} else {
				col++
			}
		}
	}
}

func TestLocationOutOfRange(t *testing.T) {
	src := New("t", "ab")
	if _, ok := src.Location(3); ok {
		t.Fatal("Location past EOF accepted")
	}
	if loc, ok := src.Location(2); !ok || !loc.IsEOF() {
		t.Fatal("EOF location must be valid")
	}
}

func TestLocationString(t *testing.T) {
	src := New("main.lc", "a\nbc")
	loc, _ := src.Location(3)
	if got, want := loc.String(), "in main.lc (2, 2)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if got := loc.LineCol(); got != (LineCol{Line: 2, Col: 2}) {
		t.Fatalf("LineCol() = %+v", got)
	}
}

func TestLocationLineSpan(t *testing.T) {
	src := New("t", "ab\ncd\nef")
	tests := []struct {
		pos  int
		want string
	}{
		{0, "ab\n"},
		{2, "ab\n"},
		{4, "cd\n"},
		{7, "ef"},
		{8, "ef"},
	}
	for _, tt := range tests {
		loc, _ := src.Location(tt.pos)
		if got := loc.LineSpan().Text(); got != tt.want {
			t.Errorf("LineSpan(%d) = %q, want %q", tt.pos, got, tt.want)
		}
	}
}

func TestSourceIdentity(t *testing.T) {
	a := New("same", "x")
	b := New("same", "x")
	la, _ := a.Location(0)
	lb, _ := b.Location(0)
	if la.Equal(lb) {
		t.Fatal("locations of distinct sources with equal text compare equal")
	}
	if Compare(a, b) >= 0 || Compare(b, a) <= 0 || Compare(a, a) != 0 {
		t.Fatal("sources must be ordered by allocation")
	}
	if CompareLocations(la, lb) >= 0 {
		t.Fatal("locations must be ordered by source first")
	}
}

func TestEmptySource(t *testing.T) {
	src := New("empty", "")
	if src.Len() != 0 {
		t.Fatalf("Len = %d", src.Len())
	}
	full := src.Full()
	if !full.IsEmpty() || full.Text() != "" {
		t.Fatalf("Full() = %v", full)
	}
	if got := full.ExpandLines(); !got.IsEmpty() {
		t.Fatalf("ExpandLines() = %d clusters", got.Len())
	}
	if got := full.String(); got != "in empty from (1, 1) to (1, 1)" {
		t.Fatalf("String() = %q", got)
	}
}
